package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ActiveSessions      *prometheus.GaugeVec
	UpstreamErrorsTotal *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		ActiveSessions: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "workflow_active_sessions",
			Help:        "Number of live intake and reschedule sessions",
			ConstLabels: constLabels,
		}, []string{"kind"}),

		UpstreamErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "upstream_errors_total",
			Help:        "Total number of failed calls to upstream services",
			ConstLabels: constLabels,
		}, []string{"upstream"}),
	}
}

// ObserveRequest фиксирует завершённый HTTP-запрос
func (m *Metrics) ObserveRequest(method, path, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(seconds)
}

// SetActiveSessions выставляет текущее количество живых сессий указанного вида
func (m *Metrics) SetActiveSessions(kind string, n int) {
	m.ActiveSessions.WithLabelValues(kind).Set(float64(n))
}

// IncUpstreamError фиксирует ошибку обращения к внешнему сервису
func (m *Metrics) IncUpstreamError(upstream string) {
	m.UpstreamErrorsTotal.WithLabelValues(upstream).Inc()
}
