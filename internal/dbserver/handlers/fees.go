package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tokenforge/tokenforge-backend/pkg/fees"
)

// QuoteFees returns the cost of a deployment before it is attempted. The
// metadata fee applies only when a metadata upload will happen; a request
// with an already-resolved URI pays the base fee alone.
func (h *Handler) QuoteFees(c *gin.Context) {
	hasMetadata, _ := strconv.ParseBool(c.DefaultQuery("hasMetadata", "false"))
	breakdown := fees.Compute(h.schedule, hasMetadata)
	c.JSON(http.StatusOK, breakdown)
}
