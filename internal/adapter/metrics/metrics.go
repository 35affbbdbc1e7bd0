// Package metrics exposes Prometheus collectors for repository operations
// and domain event delivery.
package metrics

import (
	"time"

	"github.com/example/commerce-service/internal/domain/event"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	repoDuration  *prometheus.HistogramVec
	notifications *prometheus.CounterVec
	handlerCalls  *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		repoDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "commerce",
			Name:      "repository_operation_seconds",
			Help:      "Duration of repository operations by operation and outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "commerce",
			Name:      "event_notifications_total",
			Help:      "Domain event notifications by event name and outcome.",
		}, []string{"event", "status"}),
		handlerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "commerce",
			Name:      "event_handler_invocations_total",
			Help:      "Handler invocations by event name.",
		}, []string{"event"}),
	}
	reg.MustRegister(m.repoDuration, m.notifications, m.handlerCalls)
	return m
}

// ObserveOperation implements repo.Hooks.
func (m *Metrics) ObserveOperation(op, status string, dur time.Duration) {
	m.repoDuration.WithLabelValues(op, status).Observe(dur.Seconds())
}

// ObserveNotify implements event.Observer.
func (m *Metrics) ObserveNotify(name event.Name, handlers int, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.notifications.WithLabelValues(string(name), status).Inc()
	m.handlerCalls.WithLabelValues(string(name)).Add(float64(handlers))
}

// Totals sums every counter series in g by metric family name. Short-lived
// commands log it instead of serving /metrics.
func Totals(g prometheus.Gatherer) (map[string]float64, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				out[mf.GetName()] += c.GetValue()
			}
		}
	}
	return out, nil
}
