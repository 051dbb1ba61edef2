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
		Subsystem: "payment_scheduler",
		Name:      "uptime_seconds",
		Help:      "Time passed since the payment scheduler started in seconds",
	})

	// Memory usage metrics
	MemoryUsageBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tokenforge",
		Subsystem: "payment_scheduler",
		Name:      "memory_usage_bytes",
		Help:      "Memory consumption",
	})

	// Goroutines active metrics
	GoroutinesActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tokenforge",
		Subsystem: "payment_scheduler",
		Name:      "goroutines_active",
		Help:      "Number of active goroutines",
	})

	// Payments selected as due per tick
	PaymentsDue = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "tokenforge",
		Subsystem: "payment_scheduler",
		Name:      "payments_due",
		Help:      "Number of payments selected as due in the last tick",
	})

	// Executions by outcome
	ExecutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenforge",
		Subsystem: "payment_scheduler",
		Name:      "executions_total",
		Help:      "Payment executions by outcome",
	}, []string{"status"})

	// Execution failures by error code
	ExecutionErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenforge",
		Subsystem: "payment_scheduler",
		Name:      "execution_errors_total",
		Help:      "Payment execution failures by error code",
	}, []string{"code"})

	// Execution duration
	ExecutionDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tokenforge",
		Subsystem: "payment_scheduler",
		Name:      "execution_duration_seconds",
		Help:      "Time taken to execute one payment in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 120},
	})

	// DB requests
	DBRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tokenforge",
		Subsystem: "payment_scheduler",
		Name:      "db_requests_total",
		Help:      "Database client HTTP requests",
	}, []string{"method", "endpoint", "status"})

	// Counters rebuilt from history on startup
	CountersReconciledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tokenforge",
		Subsystem: "payment_scheduler",
		Name:      "counters_reconciled_total",
		Help:      "Payments whose counters were rebuilt from history",
	})
)

// StartMetricsCollection starts the background system metrics loop.
func StartMetricsCollection() {
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			UptimeSeconds.Set(time.Since(startTime).Seconds())
			collectSystemMetrics()
		}
	}()
}

// TrackExecution records one payment execution outcome.
func TrackExecution(success bool, code string, duration time.Duration) {
	status := "failed"
	if success {
		status = "success"
	} else if code != "" {
		ExecutionErrorsTotal.WithLabelValues(code).Inc()
	}
	ExecutionsTotal.WithLabelValues(status).Inc()
	ExecutionDurationSeconds.Observe(duration.Seconds())
}

// TrackDBRequest tracks database request metrics.
func TrackDBRequest(method, endpoint, status string) {
	DBRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
}
