package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	startTime = time.Now()

	// UptimeSeconds tracks the service uptime in seconds
	UptimeSeconds = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tokenforge",
		Subsystem: "dbserver",
		Name:      "uptime_seconds",
		Help:      "Time passed since the database server started in seconds",
	})

	// Memory usage metrics
	MemoryUsageBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tokenforge",
		Subsystem: "dbserver",
		Name:      "memory_usage_bytes",
		Help:      "Memory consumption",
	})

	// CPU usage metrics
	CPUUsagePercent = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tokenforge",
		Subsystem: "dbserver",
		Name:      "cpu_usage_percent",
		Help:      "CPU utilization percentage",
	})

	// Goroutines active metrics
	GoroutinesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tokenforge",
		Subsystem: "dbserver",
		Name:      "goroutines_active",
		Help:      "Number of active goroutines",
	})

	// HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenforge",
		Subsystem: "dbserver",
		Name:      "http_requests_total",
		Help:      "HTTP API requests received",
	}, []string{"method", "endpoint", "status_code"})

	// HTTP request duration
	HTTPRequestDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tokenforge",
		Subsystem: "dbserver",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	// Database operations
	DBOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenforge",
		Subsystem: "dbserver",
		Name:      "db_operations_total",
		Help:      "Database operations by kind and outcome",
	}, []string{"operation", "table", "status"})

	// Health checks
	HealthChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenforge",
		Subsystem: "dbserver",
		Name:      "health_checks_total",
		Help:      "Health check results",
	}, []string{"status"})

	// Deployments by outcome
	DeploymentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenforge",
		Subsystem: "dbserver",
		Name:      "deployments_total",
		Help:      "Token deployments by outcome",
	}, []string{"status"})
)

// TrackHTTPRequest tracks HTTP request metrics.
func TrackHTTPRequest(method, endpoint, statusCode string) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
}

// TrackDBOperation returns a completion callback recording the outcome.
func TrackDBOperation(operation, table string) func(error) {
	return func(err error) {
		status := "success"
		if err != nil {
			status = "error"
		}
		DBOperationsTotal.WithLabelValues(operation, table, status).Inc()
	}
}
