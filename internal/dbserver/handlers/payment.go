package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/payments"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// CreatePayment validates the params and stores a new active payment due one
// interval from now.
func (h *Handler) CreatePayment(c *gin.Context) {
	var params types.CreateRecurringPaymentParams
	if err := c.ShouldBindJSON(&params); err != nil {
		h.respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidInput, "invalid request body"))
		return
	}

	payment, err := payments.New(params, h.now())
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.payments.CreatePayment(&payment); err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Infof("Created recurring payment %s (%s every %ds)", payment.ID, payment.Amount, payment.IntervalSeconds)
	c.JSON(http.StatusCreated, payment)
}

// ListPayments applies the read-side filters over the stored set.
func (h *Handler) ListPayments(c *gin.Context) {
	all, err := h.payments.GetAllPayments()
	if err != nil {
		h.respondError(c, err)
		return
	}

	filtered := payments.Filter(all, types.RecurringPaymentFilters{
		Status:       types.PaymentStatus(c.Query("status")),
		TokenAddress: c.Query("token"),
		Search:       c.Query("search"),
	})
	c.JSON(http.StatusOK, filtered)
}

// GetSchedulablePayments returns the active and due payments the scheduler
// polls for.
func (h *Handler) GetSchedulablePayments(c *gin.Context) {
	all, err := h.payments.GetAllPayments()
	if err != nil {
		h.respondError(c, err)
		return
	}

	schedulable := make([]types.RecurringPayment, 0, len(all))
	for _, payment := range all {
		if payment.Status == types.PaymentStatusActive || payment.Status == types.PaymentStatusDue {
			schedulable = append(schedulable, payment)
		}
	}
	c.JSON(http.StatusOK, schedulable)
}

func (h *Handler) GetPayment(c *gin.Context) {
	payment, err := h.payments.GetPaymentByID(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// UpdatePayment overwrites the scheduler-owned fields. Only the scheduler
// calls this; user-facing mutations go through pause/resume/cancel.
func (h *Handler) UpdatePayment(c *gin.Context) {
	var payment types.RecurringPayment
	if err := c.ShouldBindJSON(&payment); err != nil {
		h.respondError(c, apperrors.Wrap(err, apperrors.CodeInvalidInput, "invalid request body"))
		return
	}
	payment.ID = c.Param("id")

	if _, err := h.payments.GetPaymentByID(payment.ID); err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.payments.UpdatePaymentSchedule(&payment); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (h *Handler) PausePayment(c *gin.Context) {
	h.transitionPayment(c, func(payment types.RecurringPayment) (types.RecurringPayment, error) {
		return payments.Pause(payment)
	})
}

func (h *Handler) ResumePayment(c *gin.Context) {
	h.transitionPayment(c, func(payment types.RecurringPayment) (types.RecurringPayment, error) {
		return payments.Resume(payment, h.now())
	})
}

func (h *Handler) CancelPayment(c *gin.Context) {
	h.transitionPayment(c, payments.Cancel)
}

func (h *Handler) transitionPayment(c *gin.Context, transition func(types.RecurringPayment) (types.RecurringPayment, error)) {
	payment, err := h.payments.GetPaymentByID(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	updated, err := transition(payment)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.payments.UpdatePaymentSchedule(&updated); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
