package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iota-uz/sitecms/pkg/ordering"
	"github.com/iota-uz/sitecms/pkg/serrors"
)

// OrderingObserver records ordered-collection writes. Labels use the
// collection name only, so child scopes do not explode cardinality.
type OrderingObserver struct {
	reorders *prometheus.CounterVec
	duration *prometheus.HistogramVec
	writes   *prometheus.CounterVec
}

func NewOrderingObserver(reg prometheus.Registerer) *OrderingObserver {
	o := &OrderingObserver{
		reorders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitecms_reorder_total",
			Help: "Reorder operations by collection and outcome.",
		}, []string{"collection", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sitecms_reorder_duration_seconds",
			Help:    "Time spent validating and writing a reorder.",
			Buckets: prometheus.DefBuckets,
		}, []string{"collection"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sitecms_collection_writes_total",
			Help: "Create, update and delete operations by collection and outcome.",
		}, []string{"collection", "op", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(o.reorders, o.duration, o.writes)
	}
	return o
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	for _, sentinel := range []*serrors.BaseError{
		ordering.ErrInvalidInput, ordering.ErrNotFound, ordering.ErrConflict, ordering.ErrStoreFailure,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.ErrorCode()
		}
	}
	return "error"
}

func (o *OrderingObserver) ObserveReorder(scope ordering.Scope, _ int, took time.Duration, err error) {
	o.reorders.WithLabelValues(scope.Collection, outcome(err)).Inc()
	o.duration.WithLabelValues(scope.Collection).Observe(took.Seconds())
}

func (o *OrderingObserver) ObserveWrite(scope ordering.Scope, op string, err error) {
	o.writes.WithLabelValues(scope.Collection, op, outcome(err)).Inc()
}
