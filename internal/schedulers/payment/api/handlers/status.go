package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

var startedAt = time.Now()

// StatusHandler handles status endpoint requests
type StatusHandler struct {
	logger logging.Logger
}

func NewStatusHandler(logger logging.Logger) *StatusHandler {
	return &StatusHandler{logger: logger}
}

func (h *StatusHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "payment-scheduler",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(startedAt).String(),
	})
}
