// internal/metrics/metrics.go

// Package metrics exports the board as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tamzrod/statusboard/internal/dashboard"
	"github.com/tamzrod/statusboard/internal/status"
)

const namespace = "statusboard"

// Metrics holds every collector fed by view updates.
type Metrics struct {
	registry *prometheus.Registry

	FetchTotal    *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	APIUp         prometheus.Gauge
	SubsystemUp   *prometheus.GaugeVec
	QueuedJobs    *prometheus.GaugeVec
	LivePoll      prometheus.Gauge
}

// New registers collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		FetchTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Health fetch attempts by outcome (up, down)",
		}, []string{"result"}),

		FetchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time to complete one health fetch",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		APIUp: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_up",
			Help:      "1 if the last fetch succeeded, 0 otherwise",
		}),

		SubsystemUp: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "subsystem_up",
			Help:      "Reported subsystem status: 1 up, 0 down, -1 anything else",
		}, []string{"subsystem"}),

		QueuedJobs: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "queued_jobs",
			Help:      "Queued jobs reported by the service",
		}, []string{"queue"}),

		LivePoll: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_poll",
			Help:      "1 while live polling is on",
		}),
	}
}

// Observe is a dashboard.Listener.
func (m *Metrics) Observe(u dashboard.Update) {
	m.LivePoll.Set(boolGauge(u.Live))

	if u.Kind != dashboard.UpdateFetch {
		return
	}

	m.FetchTotal.WithLabelValues(string(u.State.API)).Inc()
	m.FetchDuration.Observe(u.Latency.Seconds())
	m.APIUp.Set(boolGauge(u.State.API == status.APIUp))

	h := u.State.Health
	m.SubsystemUp.WithLabelValues("db").Set(subsystemGauge(h.DB))
	m.SubsystemUp.WithLabelValues("query").Set(subsystemGauge(h.Query))
	m.SubsystemUp.WithLabelValues("cache").Set(subsystemGauge(h.Redis))

	m.QueuedJobs.WithLabelValues("pdf").Set(float64(h.PDFQueue))
	m.QueuedJobs.WithLabelValues("thumb").Set(float64(h.ThumbQueue))
}

// Handler serves the exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func subsystemGauge(s string) float64 {
	switch status.IconFor(s) {
	case status.IconUp:
		return 1
	case status.IconDown:
		return 0
	default:
		return -1
	}
}
