package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

// MetricsHandler handles metrics endpoint requests
type MetricsHandler struct {
	logger logging.Logger
}

func NewMetricsHandler(logger logging.Logger) *MetricsHandler {
	return &MetricsHandler{logger: logger}
}

// Metrics exposes Prometheus metrics
func (h *MetricsHandler) Metrics(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}
