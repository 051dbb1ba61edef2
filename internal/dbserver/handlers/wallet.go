package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetWalletState reports the operator wallet's connection state and network.
func (h *Handler) GetWalletState(c *gin.Context) {
	c.JSON(http.StatusOK, h.executor.Signer().State(h.network.Name))
}
