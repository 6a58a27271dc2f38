// Package metrics expone métricas Prometheus del motor de alertas.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/stockalert-api/internal/application/inventory"
)

var _ inventory.Observer = (*AlertMetrics)(nil)

// AlertMetrics registra cada cálculo de alertas: resultado, duración y alertas emitidas.
type AlertMetrics struct {
	computations *prometheus.CounterVec
	duration     prometheus.Histogram
	alerts       prometheus.Counter
}

// NewAlertMetrics crea y registra los colectores en reg.
func NewAlertMetrics(reg prometheus.Registerer) (*AlertMetrics, error) {
	m := &AlertMetrics{
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockalert",
			Name:      "low_stock_computations_total",
			Help:      "Cálculos de alertas de bajo stock por resultado.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stockalert",
			Name:      "low_stock_computation_seconds",
			Help:      "Duración de cada cálculo de alertas.",
			Buckets:   prometheus.DefBuckets,
		}),
		alerts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "stockalert",
			Name:      "low_stock_alerts_total",
			Help:      "Alertas emitidas por cálculos exitosos.",
		}),
	}
	for _, c := range []prometheus.Collector{m.computations, m.duration, m.alerts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ComputationFinished implementa inventory.Observer.
func (m *AlertMetrics) ComputationFinished(outcome string, alerts int, elapsed time.Duration) {
	m.computations.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
	if outcome == "ok" {
		m.alerts.Add(float64(alerts))
	}
}
