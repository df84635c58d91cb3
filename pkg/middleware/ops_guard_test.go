package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/iota-uz/sitecms/pkg/auth"
	"github.com/iota-uz/sitecms/pkg/composables"
	"github.com/iota-uz/sitecms/pkg/configuration"
	"github.com/iota-uz/sitecms/pkg/routing"
)

func guardedHandler(conf *configuration.Configuration, rules []routing.AllowlistRule) http.Handler {
	return newOpsGuard(conf, routing.NewClassifier(rules)).middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func serveGuarded(h http.Handler, path string, mutate func(r *http.Request) *http.Request) int {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	r.RemoteAddr = "203.0.113.7:5555"
	if mutate != nil {
		r = mutate(r)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec.Code
}

func header(key, value string) func(r *http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		r.Header.Set(key, value)
		return r
	}
}

func TestOpsGuard(t *testing.T) {
	t.Parallel()
	conf := &configuration.Configuration{
		GoAppEnvironment: configuration.Production,
		OpsGuardEnabled:  true,
		OpsGuardCIDRs:    "10.0.0.0/8",
		OpsGuardToken:    "s3cret",
		RealIPHeader:     "X-Real-IP",
	}
	h := guardedHandler(conf, []routing.AllowlistRule{
		{Prefix: "/health", Class: routing.RouteClassOps},
		{Prefix: "/api/public", Class: routing.RouteClassPublicAPI},
	})

	assert.Equal(t, http.StatusOK, serveGuarded(h, "/api/public/jobs", nil))
	assert.Equal(t, http.StatusNotFound, serveGuarded(h, "/health", nil))
	assert.Equal(t, http.StatusOK, serveGuarded(h, "/health", header("X-Ops-Token", "s3cret")))
	assert.Equal(t, http.StatusNotFound, serveGuarded(h, "/health", header("X-Ops-Token", "wrong")))
	assert.Equal(t, http.StatusOK, serveGuarded(h, "/health", header("X-Real-IP", "10.1.2.3")))
	assert.Equal(t, http.StatusNotFound, serveGuarded(h, "/health", header("Authorization", "Bearer s3cret")),
		"bearer tokens are editor sessions, not the ops token")
}

func TestOpsGuard_MetricsPathWithoutAllowlist(t *testing.T) {
	t.Parallel()
	conf := &configuration.Configuration{
		GoAppEnvironment: configuration.Production,
		OpsGuardEnabled:  true,
		Prometheus:       configuration.PrometheusOptions{Path: "/internal/metrics"},
	}
	h := guardedHandler(conf, nil)

	assert.Equal(t, http.StatusNotFound, serveGuarded(h, "/internal/metrics", nil))
	assert.Equal(t, http.StatusNotFound, serveGuarded(h, "/health", nil))
	assert.Equal(t, http.StatusOK, serveGuarded(h, "/internal/metricsx", nil))
	assert.Equal(t, http.StatusOK, serveGuarded(h, "/api/public/jobs", nil))
}

func TestOpsGuard_EditorSessionAndBasicAuth(t *testing.T) {
	t.Parallel()
	conf := &configuration.Configuration{
		GoAppEnvironment:      configuration.Production,
		OpsGuardEnabled:       true,
		OpsGuardBasicAuthUser: "ops",
		OpsGuardBasicAuthPass: "pa55",
	}
	h := guardedHandler(conf, []routing.AllowlistRule{{Prefix: "/debug/prometheus", Class: routing.RouteClassOps}})

	editor := func(expires time.Time) func(r *http.Request) *http.Request {
		return func(r *http.Request) *http.Request {
			a := auth.Context{UserID: uuid.New(), SessionToken: "session", ExpiresAt: expires}
			return r.WithContext(composables.WithAuth(r.Context(), a))
		}
	}
	basic := func(user, pass string) func(r *http.Request) *http.Request {
		return func(r *http.Request) *http.Request {
			r.SetBasicAuth(user, pass)
			return r
		}
	}

	assert.Equal(t, http.StatusOK, serveGuarded(h, "/debug/prometheus", editor(time.Now().Add(time.Hour))))
	assert.Equal(t, http.StatusNotFound, serveGuarded(h, "/debug/prometheus", editor(time.Now().Add(-time.Hour))))
	assert.Equal(t, http.StatusOK, serveGuarded(h, "/debug/prometheus", basic("ops", "pa55")))
	assert.Equal(t, http.StatusNotFound, serveGuarded(h, "/debug/prometheus", basic("ops", "nope")))
}

func TestOpsGuard_OffOutsideProduction(t *testing.T) {
	t.Parallel()
	h := guardedHandler(&configuration.Configuration{GoAppEnvironment: "development", OpsGuardEnabled: true}, nil)
	assert.Equal(t, http.StatusOK, serveGuarded(h, "/health", nil))

	h = guardedHandler(&configuration.Configuration{GoAppEnvironment: configuration.Production}, nil)
	assert.Equal(t, http.StatusOK, serveGuarded(h, "/health", nil))
}

func TestParseCIDRs(t *testing.T) {
	t.Parallel()
	assert.Len(t, parseCIDRs("10.0.0.0/8, 192.168.0.0/16;bogus"), 2)
	assert.Nil(t, parseCIDRs("  "))
	assert.Equal(t, []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8"), netip.MustParsePrefix("127.0.0.1/32")},
		parseCIDRs("10.1.2.3/8 127.0.0.1"))
}
