package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ErrorsTotal     *prometheus.CounterVec

	// Registry metrics
	RegistryRecords   *prometheus.GaugeVec
	RegistryMutations *prometheus.CounterVec
	SalesTotal        prometheus.Counter
	SalesRejected     prometheus.Counter
	LowStockProducts  prometheus.Gauge
	NotificationsSent prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "path"}),
		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP error responses",
		}, []string{"method", "path", "status"}),
		RegistryRecords: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registry_records",
			Help:      "Current number of records per collection",
		}, []string{"collection"}),
		RegistryMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registry_mutations_total",
			Help:      "Total number of registry mutations",
		}, []string{"collection", "operation"}),
		SalesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_total",
			Help:      "Total number of committed sales",
		}),
		SalesRejected: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sales_rejected_total",
			Help:      "Total number of sales rejected for insufficient stock",
		}),
		LowStockProducts: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "low_stock_products",
			Help:      "Current number of products at or below minimum stock",
		}),
		NotificationsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Total number of notifications created",
		}),
	}
}
