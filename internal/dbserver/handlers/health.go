package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokenforge/tokenforge-backend/internal/dbserver/metrics"
)

// HealthCheck reports service and database health.
func (h *Handler) HealthCheck(c *gin.Context) {
	dbStatus := "healthy"
	dbError := ""

	if h.db != nil {
		var timestamp time.Time
		if err := h.db.Session().Query("SELECT now() FROM system.local").Scan(&timestamp); err != nil {
			dbStatus = "unhealthy"
			dbError = err.Error()
			h.logger.Errorf("Database health check failed: %v", err)
		}
	}
	metrics.HealthChecksTotal.WithLabelValues(dbStatus).Inc()

	response := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"service":   "dbserver",
		"database": gin.H{
			"status": dbStatus,
			"error":  dbError,
		},
	}

	httpStatus := http.StatusOK
	if dbStatus != "healthy" {
		httpStatus = http.StatusServiceUnavailable
		response["status"] = "degraded"
	}
	c.JSON(httpStatus, response)
}
