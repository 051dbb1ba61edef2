// Package payments holds the recurring payment lifecycle rules: creation,
// due-selection, status transitions and the post-execution bookkeeping.
// Everything here is pure; persistence and transaction execution live with
// the callers.
package payments

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
	"github.com/tokenforge/tokenforge-backend/pkg/validator"
)

// New validates the creation params and builds an active payment whose first
// due time is one interval from now.
func New(params types.CreateRecurringPaymentParams, now time.Time) (types.RecurringPayment, error) {
	if !validator.IsValidAddress(params.Recipient) {
		return types.RecurringPayment{}, apperrors.New(apperrors.CodeInvalidInput, "invalid recipient address")
	}
	if !validator.IsValidAmount(params.Amount) {
		return types.RecurringPayment{}, apperrors.New(apperrors.CodeInvalidInput, "amount must be a positive decimal")
	}
	if !validator.IsValidAddress(params.TokenAddress) {
		return types.RecurringPayment{}, apperrors.New(apperrors.CodeInvalidInput, "invalid token address")
	}
	if !validator.IsValidAddress(params.Creator) {
		return types.RecurringPayment{}, apperrors.New(apperrors.CodeInvalidInput, "invalid creator address")
	}

	intervalSeconds, err := types.ResolveIntervalSeconds(params.Interval, params.CustomIntervalSeconds)
	if err != nil {
		return types.RecurringPayment{}, err
	}

	return types.RecurringPayment{
		ID:              uuid.New().String(),
		Recipient:       params.Recipient,
		Amount:          params.Amount,
		TokenAddress:    params.TokenAddress,
		TokenSymbol:     params.TokenSymbol,
		TokenDecimals:   params.TokenDecimals,
		Memo:            params.Memo,
		Interval:        params.Interval,
		IntervalSeconds: intervalSeconds,
		NextPaymentTime: now.Unix() + intervalSeconds,
		PaymentCount:    0,
		TotalPaid:       "0",
		Status:          types.PaymentStatusActive,
		CreatedAt:       now.Unix(),
		Creator:         params.Creator,
	}, nil
}

// SelectDue returns the payments whose scheduled time has arrived, oldest
// due first with ties broken by creation time then id. Active payments in
// the result are returned with status flipped to due; the caller persists
// that transition before executing.
func SelectDue(all []types.RecurringPayment, now time.Time) []types.RecurringPayment {
	nowUnix := now.Unix()
	var due []types.RecurringPayment
	for _, payment := range all {
		if payment.Status != types.PaymentStatusActive && payment.Status != types.PaymentStatusDue {
			continue
		}
		if payment.NextPaymentTime > nowUnix {
			continue
		}
		payment.Status = types.PaymentStatusDue
		due = append(due, payment)
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].NextPaymentTime != due[j].NextPaymentTime {
			return due[i].NextPaymentTime < due[j].NextPaymentTime
		}
		if due[i].CreatedAt != due[j].CreatedAt {
			return due[i].CreatedAt < due[j].CreatedAt
		}
		return due[i].ID < due[j].ID
	})
	return due
}

// ApplySuccess records one successful execution. The next due time advances
// from the previous scheduled time, not from executedAt, so late runs do not
// accumulate drift. Counters and the history entry move together.
func ApplySuccess(payment types.RecurringPayment, txHash string, executedAt time.Time) (types.RecurringPayment, types.RecurringPaymentHistory, error) {
	total, err := decimal.NewFromString(payment.TotalPaid)
	if err != nil {
		total = decimal.Zero
	}
	amount, err := decimal.NewFromString(payment.Amount)
	if err != nil {
		return payment, types.RecurringPaymentHistory{}, apperrors.Newf(apperrors.CodeInvalidInput, "invalid payment amount: %s", payment.Amount)
	}

	entry := types.RecurringPaymentHistory{
		ID:              uuid.New().String(),
		PaymentID:       payment.ID,
		TransactionHash: txHash,
		Amount:          payment.Amount,
		Timestamp:       executedAt.Unix(),
		Status:          types.HistoryStatusSuccess,
	}

	payment.PaymentCount++
	payment.TotalPaid = total.Add(amount).String()
	payment.LastPaymentTime = executedAt.Unix()
	payment.NextPaymentTime += payment.IntervalSeconds
	payment.Status = types.PaymentStatusActive
	return payment, entry, nil
}

// ApplyFailure records one failed attempt. The payment itself is untouched:
// nextPaymentTime stays where it was so the payment remains due and the next
// tick retries it.
func ApplyFailure(payment types.RecurringPayment, execErr error, executedAt time.Time) types.RecurringPaymentHistory {
	return types.RecurringPaymentHistory{
		ID:        uuid.New().String(),
		PaymentID: payment.ID,
		Amount:    payment.Amount,
		Timestamp: executedAt.Unix(),
		Status:    types.HistoryStatusFailed,
		ErrorCode: string(apperrors.CodeOf(execErr)),
	}
}

// Pause suspends an active or due payment.
func Pause(payment types.RecurringPayment) (types.RecurringPayment, error) {
	switch payment.Status {
	case types.PaymentStatusActive, types.PaymentStatusDue:
		payment.Status = types.PaymentStatusPaused
		return payment, nil
	}
	return payment, apperrors.Newf(apperrors.CodeInvalidInput, "cannot pause payment in status %s", payment.Status)
}

// Resume reactivates a paused payment. The next due time restarts one full
// interval from now so resuming never fires a backlog of missed payments.
func Resume(payment types.RecurringPayment, now time.Time) (types.RecurringPayment, error) {
	if payment.Status != types.PaymentStatusPaused {
		return payment, apperrors.Newf(apperrors.CodeInvalidInput, "cannot resume payment in status %s", payment.Status)
	}
	payment.Status = types.PaymentStatusActive
	payment.NextPaymentTime = now.Unix() + payment.IntervalSeconds
	return payment, nil
}

// Cancel terminates a payment. Irreversible.
func Cancel(payment types.RecurringPayment) (types.RecurringPayment, error) {
	if payment.Status == types.PaymentStatusCancelled {
		return payment, apperrors.New(apperrors.CodeInvalidInput, "payment is already cancelled")
	}
	payment.Status = types.PaymentStatusCancelled
	return payment, nil
}

// Reconcile rebuilds the cached counters from the append-only history. Used
// on restart when the persisted counters are not trusted.
func Reconcile(payment types.RecurringPayment, history []types.RecurringPaymentHistory) types.RecurringPayment {
	total := decimal.Zero
	var count int64
	for _, entry := range history {
		if entry.PaymentID != payment.ID || entry.Status != types.HistoryStatusSuccess {
			continue
		}
		amount, err := decimal.NewFromString(entry.Amount)
		if err != nil {
			continue
		}
		total = total.Add(amount)
		count++
	}
	payment.TotalPaid = total.String()
	payment.PaymentCount = count
	return payment
}
