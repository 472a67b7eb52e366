package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	AllocationResults *prometheus.CounterVec
	CommitResults     *prometheus.CounterVec
	CommitAttempts    *prometheus.HistogramVec
	LockWaitDuration  *prometheus.HistogramVec
}

// New создает и регистрирует метрики в стандартном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном реестре (для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database operations",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established database connections",
			ConstLabels: constLabels,
		}),

		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}),

		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}),

		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		AllocationResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "room_allocation_results_total",
			Help:        "Room search outcomes (found / no_candidate / invalid)",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		CommitResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_commit_results_total",
			Help:        "Booking commit outcomes (confirmed / conflict / busy / error)",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		CommitAttempts: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "room_allocation_attempts",
			Help:        "Number of find+commit attempts per allocation",
			ConstLabels: constLabels,
			Buckets:     []float64{1, 2, 3, 4, 5},
		}, []string{"outcome"}),

		LockWaitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "room_lock_wait_seconds",
			Help:        "Time spent acquiring the per-room lock",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2},
		}, []string{"result"}),
	}
}

// ObserveAllocation учитывает результат поиска комнаты
func (m *Metrics) ObserveAllocation(outcome string) {
	if m == nil {
		return
	}
	m.AllocationResults.WithLabelValues(outcome).Inc()
}

// ObserveCommit учитывает результат записи бронирования
func (m *Metrics) ObserveCommit(outcome string) {
	if m == nil {
		return
	}
	m.CommitResults.WithLabelValues(outcome).Inc()
}

// ObserveAttempts учитывает количество попыток find+commit
func (m *Metrics) ObserveAttempts(outcome string, attempts int) {
	if m == nil {
		return
	}
	m.CommitAttempts.WithLabelValues(outcome).Observe(float64(attempts))
}

// ObserveLockWait учитывает время ожидания блокировки комнаты
func (m *Metrics) ObserveLockWait(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.LockWaitDuration.WithLabelValues(result).Observe(d.Seconds())
}

// ObserveDBQuery учитывает длительность и ошибку запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// ObserveHTTPRequest учитывает HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
