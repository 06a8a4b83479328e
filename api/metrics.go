package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics はサーバーごとのPrometheusコレクターを保持します。
//
// Metrics:
//   - folio_http_requests_total{method,route,status}
//   - folio_http_request_duration_seconds{method,route}
//   - folio_projects - 現在のプロジェクト数
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	projects prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	m := &metrics{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "folio_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "folio_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		projects: f.NewGauge(prometheus.GaugeOpts{
			Name: "folio_projects",
			Help: "Number of projects in the portfolio",
		}),
	}
	return m
}

// trackProjects はプロジェクト数のゲージを更新します。
func (m *metrics) trackProjects(n int) {
	m.projects.Set(float64(n))
}

func (m *metrics) observe(method, route, status string, latency time.Duration) {
	m.requests.WithLabelValues(method, route, status).Inc()
	m.duration.WithLabelValues(method, route).Observe(latency.Seconds())
}
