package authz

import (
	"errors"

	"github.com/covercore/covercore/internal"
	"github.com/covercore/covercore/internal/rbac"
	"github.com/covercore/covercore/internal/resource"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	decisionAllowed  = "allowed"
	decisionDenied   = "denied"
	decisionNotFound = "not_found"
	decisionError    = "error"
)

type metrics struct {
	decisions *prometheus.CounterVec
}

// newMetrics constructs the authorizer's metrics, registering them with reg.
// A nil reg leaves them unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		decisions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "covercore",
			Subsystem: "authorization",
			Name:      "decisions_total",
			Help:      "Total number of authorization decisions by resource kind, action and outcome.",
		}, []string{"kind", "action", "decision"}),
	}
}

func (m *metrics) observe(kind resource.Kind, action rbac.Action, err error) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(kind.String(), action.String(), decisionOf(err)).Inc()
}

func decisionOf(err error) string {
	switch {
	case err == nil:
		return decisionAllowed
	case errors.Is(err, internal.ErrResourceNotFound):
		return decisionNotFound
	case errors.Is(err, internal.ErrAccessNotPermitted):
		return decisionDenied
	default:
		return decisionError
	}
}
