package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/sitecms/pkg/ordering"
)

func TestOrderingObserver(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	o := NewOrderingObserver(reg)
	jobs := ordering.RootScope("jobs")

	o.ObserveReorder(jobs, 3, 10*time.Millisecond, nil)
	o.ObserveReorder(jobs, 3, time.Millisecond, &ordering.StoreFailureError{Op: "bulk", Err: errors.New("down")})
	o.ObserveWrite(jobs, "create", nil)
	o.ObserveWrite(jobs, "delete", ordering.ErrNotFound)
	o.ObserveWrite(jobs, "update", errors.New("weird"))

	assert.InDelta(t, 1, testutil.ToFloat64(o.reorders.WithLabelValues("jobs", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(o.reorders.WithLabelValues("jobs", "STORE_FAILURE")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(o.writes.WithLabelValues("jobs", "delete", "NOT_FOUND")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(o.writes.WithLabelValues("jobs", "update", "error")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(o.duration))
}

func TestPrometheusController(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	NewOrderingObserver(reg).ObserveWrite(ordering.RootScope("partners"), "create", nil)

	c := &PrometheusController{path: "/debug/prometheus", gatherer: reg}
	r := mux.NewRouter()
	c.Register(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/prometheus", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sitecms_collection_writes_total{collection="partners",op="create",outcome="ok"} 1`)
}
