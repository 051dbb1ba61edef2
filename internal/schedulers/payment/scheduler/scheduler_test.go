package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
	"github.com/tokenforge/tokenforge-backend/pkg/payments"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

type fakeStore struct {
	payments map[string]types.RecurringPayment
	history  []types.RecurringPaymentHistory
	updates  []types.RecurringPayment
}

func newFakeStore(initial ...types.RecurringPayment) *fakeStore {
	store := &fakeStore{payments: make(map[string]types.RecurringPayment)}
	for _, payment := range initial {
		store.payments[payment.ID] = payment
	}
	return store
}

func (f *fakeStore) Payments(ctx context.Context) ([]types.RecurringPayment, error) {
	var out []types.RecurringPayment
	for _, payment := range f.payments {
		out = append(out, payment)
	}
	return out, nil
}

func (f *fakeStore) Payment(ctx context.Context, paymentID string) (types.RecurringPayment, error) {
	payment, ok := f.payments[paymentID]
	if !ok {
		return types.RecurringPayment{}, apperrors.New(apperrors.CodeAccountNotFound, "payment not found")
	}
	return payment, nil
}

func (f *fakeStore) SchedulablePayments(ctx context.Context) ([]types.RecurringPayment, error) {
	var out []types.RecurringPayment
	for _, payment := range f.payments {
		if payment.Status == types.PaymentStatusActive || payment.Status == types.PaymentStatusDue {
			out = append(out, payment)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdatePayment(ctx context.Context, payment types.RecurringPayment) error {
	f.payments[payment.ID] = payment
	f.updates = append(f.updates, payment)
	return nil
}

func (f *fakeStore) AppendHistory(ctx context.Context, entry types.RecurringPaymentHistory) error {
	f.history = append(f.history, entry)
	return nil
}

func (f *fakeStore) PaymentHistory(ctx context.Context, paymentID string) ([]types.RecurringPaymentHistory, error) {
	var out []types.RecurringPaymentHistory
	for _, entry := range f.history {
		if entry.PaymentID == paymentID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type MockTransferExecutor struct {
	mock.Mock
}

func (m *MockTransferExecutor) ExecuteTransfer(ctx context.Context, payment types.RecurringPayment) (string, error) {
	args := m.Called(ctx, payment)
	return args.String(0), args.Error(1)
}

const (
	recipientAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	tokenAddress     = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
	creatorAddress   = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

func hourlyPayment(t *testing.T) types.RecurringPayment {
	t.Helper()
	payment, err := payments.New(types.CreateRecurringPaymentParams{
		Recipient:     recipientAddress,
		Amount:        "25.5",
		TokenAddress:  tokenAddress,
		TokenDecimals: 7,
		Interval:      types.IntervalHourly,
		Creator:       creatorAddress,
	}, time.Unix(0, 0))
	require.NoError(t, err)
	return payment
}

func newTestScheduler(store Store, executor TransferExecutor, now time.Time) *PaymentScheduler {
	s := NewPaymentScheduler(logging.NewNoOpLogger(), store, executor, time.Minute)
	s.now = func() time.Time { return now }
	return s
}

func TestRunOnceExecutesDuePaymentDriftFree(t *testing.T) {
	payment := hourlyPayment(t)
	store := newFakeStore(payment)

	executor := new(MockTransferExecutor)
	executor.On("ExecuteTransfer", mock.Anything, mock.Anything).Return("0xhash1", nil)

	s := newTestScheduler(store, executor, time.Unix(3700, 0))
	require.NoError(t, s.RunOnce(context.Background()))

	stored := store.payments[payment.ID]
	assert.Equal(t, int64(3700), stored.LastPaymentTime)
	assert.Equal(t, int64(7200), stored.NextPaymentTime)
	assert.Equal(t, int64(1), stored.PaymentCount)
	assert.Equal(t, "25.5", stored.TotalPaid)
	assert.Equal(t, types.PaymentStatusActive, stored.Status)

	require.Len(t, store.history, 1)
	assert.Equal(t, types.HistoryStatusSuccess, store.history[0].Status)
	assert.Equal(t, "0xhash1", store.history[0].TransactionHash)

	// First update marks the payment due, second persists the success
	require.Len(t, store.updates, 2)
	assert.Equal(t, types.PaymentStatusDue, store.updates[0].Status)
}

func TestRunOnceSkipsNotYetDuePayments(t *testing.T) {
	payment := hourlyPayment(t)
	store := newFakeStore(payment)

	executor := new(MockTransferExecutor)
	s := newTestScheduler(store, executor, time.Unix(3599, 0))
	require.NoError(t, s.RunOnce(context.Background()))

	executor.AssertNotCalled(t, "ExecuteTransfer", mock.Anything, mock.Anything)
	assert.Empty(t, store.history)
}

func TestFailedExecutionLeavesPaymentDue(t *testing.T) {
	payment := hourlyPayment(t)
	store := newFakeStore(payment)

	executor := new(MockTransferExecutor)
	executor.On("ExecuteTransfer", mock.Anything, mock.Anything).
		Return("", apperrors.New(apperrors.CodeInsufficientBalance, "balance too low"))

	s := newTestScheduler(store, executor, time.Unix(3700, 0))
	require.NoError(t, s.RunOnce(context.Background()))

	stored := store.payments[payment.ID]
	assert.Equal(t, int64(3600), stored.NextPaymentTime)
	assert.Equal(t, int64(0), stored.PaymentCount)
	assert.Equal(t, "0", stored.TotalPaid)
	assert.Equal(t, types.PaymentStatusDue, stored.Status)

	require.Len(t, store.history, 1)
	assert.Equal(t, types.HistoryStatusFailed, store.history[0].Status)
	assert.Equal(t, string(apperrors.CodeInsufficientBalance), store.history[0].ErrorCode)
	assert.Empty(t, store.history[0].TransactionHash)
}

func TestThreeFailuresThenSuccess(t *testing.T) {
	payment := hourlyPayment(t)
	store := newFakeStore(payment)

	executor := new(MockTransferExecutor)
	executor.On("ExecuteTransfer", mock.Anything, mock.Anything).
		Return("", apperrors.New(apperrors.CodeInsufficientBalance, "balance too low")).Times(3)
	executor.On("ExecuteTransfer", mock.Anything, mock.Anything).
		Return("0xhash4", nil).Once()

	s := newTestScheduler(store, executor, time.Unix(3700, 0))
	for tick := 0; tick < 4; tick++ {
		s.now = func() time.Time { return time.Unix(3700+int64(tick)*60, 0) }
		require.NoError(t, s.RunOnce(context.Background()))
	}

	stored := store.payments[payment.ID]
	assert.Equal(t, int64(1), stored.PaymentCount)
	assert.Equal(t, "25.5", stored.TotalPaid)
	assert.Equal(t, int64(7200), stored.NextPaymentTime)

	require.Len(t, store.history, 4)
	var failed, succeeded int
	for _, entry := range store.history {
		switch entry.Status {
		case types.HistoryStatusFailed:
			failed++
		case types.HistoryStatusSuccess:
			succeeded++
		}
	}
	assert.Equal(t, 3, failed)
	assert.Equal(t, 1, succeeded)
}

func TestDuePaymentsExecuteOldestFirst(t *testing.T) {
	older := hourlyPayment(t)
	older.ID = "older"
	older.NextPaymentTime = 1000
	newer := hourlyPayment(t)
	newer.ID = "newer"
	newer.NextPaymentTime = 2000
	store := newFakeStore(older, newer)

	var order []string
	executor := new(MockTransferExecutor)
	executor.On("ExecuteTransfer", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			order = append(order, args.Get(1).(types.RecurringPayment).ID)
		}).Return("0xhash", nil)

	s := newTestScheduler(store, executor, time.Unix(5000, 0))
	require.NoError(t, s.RunOnce(context.Background()))

	assert.Equal(t, []string{"older", "newer"}, order)
}

func TestCancelDuringTransferHolds(t *testing.T) {
	payment := hourlyPayment(t)
	store := newFakeStore(payment)

	executor := new(MockTransferExecutor)
	executor.On("ExecuteTransfer", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			// Cancel lands while the transfer is in flight.
			cancelled := store.payments[payment.ID]
			cancelled.Status = types.PaymentStatusCancelled
			store.payments[payment.ID] = cancelled
		}).Return("0xhash1", nil)

	s := newTestScheduler(store, executor, time.Unix(3700, 0))
	require.NoError(t, s.RunOnce(context.Background()))

	stored := store.payments[payment.ID]
	assert.Equal(t, types.PaymentStatusCancelled, stored.Status)
	assert.Equal(t, int64(1), stored.PaymentCount)
	assert.Equal(t, "25.5", stored.TotalPaid)
	assert.Equal(t, int64(7200), stored.NextPaymentTime)

	require.Len(t, store.history, 1)
	assert.Equal(t, types.HistoryStatusSuccess, store.history[0].Status)
}

func TestPauseDuringTransferHolds(t *testing.T) {
	payment := hourlyPayment(t)
	store := newFakeStore(payment)

	executor := new(MockTransferExecutor)
	executor.On("ExecuteTransfer", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			paused := store.payments[payment.ID]
			paused.Status = types.PaymentStatusPaused
			store.payments[payment.ID] = paused
		}).Return("0xhash1", nil)

	s := newTestScheduler(store, executor, time.Unix(3700, 0))
	require.NoError(t, s.RunOnce(context.Background()))

	stored := store.payments[payment.ID]
	assert.Equal(t, types.PaymentStatusPaused, stored.Status)
	assert.Equal(t, int64(1), stored.PaymentCount)
	assert.Equal(t, int64(7200), stored.NextPaymentTime)
}

func TestReconcileRebuildsDivergedCounters(t *testing.T) {
	payment := hourlyPayment(t)
	payment.PaymentCount = 7
	payment.TotalPaid = "999"
	store := newFakeStore(payment)
	store.history = []types.RecurringPaymentHistory{
		{PaymentID: payment.ID, Status: types.HistoryStatusSuccess, Amount: "25.5"},
		{PaymentID: payment.ID, Status: types.HistoryStatusFailed, Amount: "25.5"},
		{PaymentID: payment.ID, Status: types.HistoryStatusSuccess, Amount: "25.5"},
	}

	s := newTestScheduler(store, new(MockTransferExecutor), time.Unix(100, 0))
	require.NoError(t, s.reconcileCounters(context.Background()))

	stored := store.payments[payment.ID]
	assert.Equal(t, int64(2), stored.PaymentCount)
	assert.Equal(t, "51", stored.TotalPaid)
}

func TestReconcileCoversPausedPayments(t *testing.T) {
	payment := hourlyPayment(t)
	payment.Status = types.PaymentStatusPaused
	payment.PaymentCount = 9
	payment.TotalPaid = "999"
	store := newFakeStore(payment)
	store.history = []types.RecurringPaymentHistory{
		{PaymentID: payment.ID, Status: types.HistoryStatusSuccess, Amount: "25.5"},
	}

	s := newTestScheduler(store, new(MockTransferExecutor), time.Unix(100, 0))
	require.NoError(t, s.reconcileCounters(context.Background()))

	stored := store.payments[payment.ID]
	assert.Equal(t, int64(1), stored.PaymentCount)
	assert.Equal(t, "25.5", stored.TotalPaid)
	assert.Equal(t, types.PaymentStatusPaused, stored.Status)
}

func TestReconcileLeavesConsistentCountersAlone(t *testing.T) {
	payment := hourlyPayment(t)
	store := newFakeStore(payment)

	s := newTestScheduler(store, new(MockTransferExecutor), time.Unix(100, 0))
	require.NoError(t, s.reconcileCounters(context.Background()))

	assert.Empty(t, store.updates)
}
