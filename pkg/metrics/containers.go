// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/beggy/beggy-backend/pkg/enums"
)

const namespace = "beggy"

// ContainerMetrics counts capacity evaluations and the limit violations they surface.
type ContainerMetrics struct {
	evaluations *prometheus.CounterVec
	violations  *prometheus.CounterVec
}

// NewContainerMetrics registers the container metrics on reg.
func NewContainerMetrics(reg prometheus.Registerer) *ContainerMetrics {
	if reg == nil {
		return &ContainerMetrics{}
	}
	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "container_status_evaluations_total",
		Help:      "Container capacity evaluations by container kind and resulting status.",
	}, []string{"kind", "status"})
	violations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "container_limit_violations_total",
		Help:      "Item assignments that left a container over a hard limit.",
	}, []string{"kind", "status"})
	reg.MustRegister(evaluations, violations)
	return &ContainerMetrics{evaluations: evaluations, violations: violations}
}

// ObserveStatus records one evaluation.
func (m *ContainerMetrics) ObserveStatus(kind string, status enums.ContainerStatus) {
	if m == nil || m.evaluations == nil {
		return
	}
	m.evaluations.WithLabelValues(normalizeLabel(kind), normalizeLabel(status.String())).Inc()
}

// ObserveViolation records an assignment that produced OVERWEIGHT or OVER_CAPACITY.
func (m *ContainerMetrics) ObserveViolation(kind string, status enums.ContainerStatus) {
	if m == nil || m.violations == nil || !status.IsViolation() {
		return
	}
	m.violations.WithLabelValues(normalizeLabel(kind), status.String()).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
