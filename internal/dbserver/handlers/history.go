package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// AppendHistory records one execution attempt. Append is the only write the
// history log accepts.
func (h *Handler) AppendHistory(c *gin.Context) {
	var entry types.RecurringPaymentHistory
	if err := c.ShouldBindJSON(&entry); err != nil {
		h.respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidInput, "invalid request body"))
		return
	}
	entry.PaymentID = c.Param("id")

	if entry.Status != types.HistoryStatusSuccess && entry.Status != types.HistoryStatusFailed {
		h.respondError(c, apperrors.Newf(apperrors.CodeInvalidInput, "invalid history status: %s", entry.Status))
		return
	}

	if _, err := h.payments.GetPaymentByID(entry.PaymentID); err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.history.AppendHistory(&entry); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GetHistory returns the execution log for one payment, oldest first.
func (h *Handler) GetHistory(c *gin.Context) {
	history, err := h.history.GetHistoryByPaymentID(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if history == nil {
		history = []types.RecurringPaymentHistory{}
	}
	c.JSON(http.StatusOK, history)
}
