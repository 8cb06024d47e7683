// Package metrics owns the Prometheus instruments for the service.
// Everything hangs off one Metrics value constructed at startup so tests
// can build their own registry instead of fighting process globals.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	RequestCount *prometheus.CounterVec
	ResponseTime *prometheus.HistogramVec
	CommentCount prometheus.Counter

	// Three gauges currently driven by the same boolean. Downstream
	// dashboards read them independently, so all three stay.
	UIHealth          prometheus.Gauge
	DependentServices prometheus.Gauge
	CommentDBHealth   prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ui_request_count",
			Help: "App Request Count",
		}, []string{"method", "path", "http_status"}),
		ResponseTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "ui_request_response_time",
			Help: "Request response time",
		}, []string{"path"}),
		CommentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "comment_count",
			Help: "Number of comments created",
		}),
		UIHealth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ui_health",
			Help: "Health status of UI service",
		}),
		DependentServices: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dependent_services_health",
			Help: "Health status of all services the UI depends on",
		}),
		CommentDBHealth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "commentdb_health",
			Help: "Health status of the comment database",
		}),
	}
	m.registry.MustRegister(
		m.RequestCount,
		m.ResponseTime,
		m.CommentCount,
		m.UIHealth,
		m.DependentServices,
		m.CommentDBHealth,
	)
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	m.RequestCount.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.ResponseTime.WithLabelValues(path).Observe(elapsed.Seconds())
}

// SetHealth drives all three health gauges with one binary value.
func (m *Metrics) SetHealth(v float64) {
	m.UIHealth.Set(v)
	m.DependentServices.Set(v)
	m.CommentDBHealth.Set(v)
}

// Handler returns the pull endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
