package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tokenforge/tokenforge-backend/internal/schedulers/payment/metrics"
	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
	"github.com/tokenforge/tokenforge-backend/pkg/logging"
	"github.com/tokenforge/tokenforge-backend/pkg/payments"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// Store is the persistence boundary the scheduler drives. Backed by the
// database server's payment API in production.
type Store interface {
	SchedulablePayments(ctx context.Context) ([]types.RecurringPayment, error)
	Payments(ctx context.Context) ([]types.RecurringPayment, error)
	Payment(ctx context.Context, paymentID string) (types.RecurringPayment, error)
	UpdatePayment(ctx context.Context, payment types.RecurringPayment) error
	AppendHistory(ctx context.Context, entry types.RecurringPaymentHistory) error
	PaymentHistory(ctx context.Context, paymentID string) ([]types.RecurringPaymentHistory, error)
}

// PaymentScheduler polls for due payments every tick and executes them
// sequentially in due order. It is the only writer of payment scheduling
// state; a failed execution leaves the payment due for the next tick.
type PaymentScheduler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	logger   logging.Logger
	store    Store
	executor TransferExecutor
	interval time.Duration
	cron     *cron.Cron
	now      func() time.Time

	mu      sync.Mutex
	ticking bool
}

func NewPaymentScheduler(logger logging.Logger, store Store, executor TransferExecutor, pollingInterval time.Duration) *PaymentScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &PaymentScheduler{
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
		store:    store,
		executor: executor,
		interval: pollingInterval,
		cron:     cron.New(),
		now:      time.Now,
	}
}

// Start reconciles counters from history and begins the polling loop.
// Blocks until the context is cancelled.
func (s *PaymentScheduler) Start(ctx context.Context) {
	s.logger.Info("Starting payment scheduler", "polling_interval", s.interval.String())

	if err := s.reconcileCounters(ctx); err != nil {
		s.logger.Errorf("Counter reconciliation failed, continuing with stored counters: %v", err)
	}

	s.cron.Schedule(cron.Every(s.interval), cron.FuncJob(s.tick))
	s.cron.Start()

	select {
	case <-ctx.Done():
	case <-s.ctx.Done():
	}
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Payment scheduler stopped")
}

func (s *PaymentScheduler) Stop() {
	s.cancel()
}

// tick runs one scheduling pass. Overlapping passes are skipped rather than
// queued; due payments are simply picked up by the next pass.
func (s *PaymentScheduler) tick() {
	s.mu.Lock()
	if s.ticking {
		s.mu.Unlock()
		s.logger.Warn("Previous scheduling pass still running, skipping tick")
		return
	}
	s.ticking = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.ticking = false
		s.mu.Unlock()
	}()

	if err := s.RunOnce(s.ctx); err != nil {
		s.logger.Errorf("Scheduling pass failed: %v", err)
	}
}

// RunOnce performs a single scheduling pass: select due payments, persist
// the due transition, execute oldest-due first.
func (s *PaymentScheduler) RunOnce(ctx context.Context) error {
	all, err := s.store.SchedulablePayments(ctx)
	if err != nil {
		return err
	}

	due := payments.SelectDue(all, s.now())
	metrics.PaymentsDue.Set(float64(len(due)))
	if len(due) == 0 {
		s.logger.Debug("No payments due")
		return nil
	}
	s.logger.Infof("Found %d due payments", len(due))

	for _, payment := range due {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// SelectDue flipped active payments to due; persist that so
		// readers see the payment as due before execution starts.
		if err := s.store.UpdatePayment(ctx, payment); err != nil {
			s.logger.Errorf("Failed to mark payment %s due: %v", payment.ID, err)
			continue
		}

		s.executeOne(ctx, payment)
	}
	return nil
}

// executeOne runs a single due payment and records the outcome. The success
// path updates counters and the schedule atomically with respect to the
// stored record: history first, then the payment row.
func (s *PaymentScheduler) executeOne(ctx context.Context, payment types.RecurringPayment) {
	started := s.now()
	txHash, execErr := s.executor.ExecuteTransfer(ctx, payment)
	executedAt := s.now()
	duration := executedAt.Sub(started)

	if execErr != nil {
		code := string(apperrors.CodeOf(execErr))
		s.logger.Warnf("Payment %s execution failed (%s): %v", payment.ID, code, execErr)
		metrics.TrackExecution(false, code, duration)

		entry := payments.ApplyFailure(payment, execErr, executedAt)
		if err := s.store.AppendHistory(ctx, entry); err != nil {
			s.logger.Errorf("Failed to record failure for payment %s: %v", payment.ID, err)
		}
		// nextPaymentTime untouched: the payment stays due and the next
		// tick retries it
		return
	}

	updated, entry, err := payments.ApplySuccess(payment, txHash, executedAt)
	if err != nil {
		s.logger.Errorf("Failed to apply success for payment %s: %v", payment.ID, err)
		return
	}

	if err := s.store.AppendHistory(ctx, entry); err != nil {
		s.logger.Errorf("Failed to record success for payment %s: %v", payment.ID, err)
	}

	// A cancel or pause issued while the transfer was in flight must hold
	// after the attempt resolves. The counter and schedule updates still
	// apply; the status written is the stored one, not the snapshot's.
	if current, err := s.store.Payment(ctx, payment.ID); err != nil {
		s.logger.Errorf("Failed to re-read payment %s before final write: %v", payment.ID, err)
	} else if current.Status == types.PaymentStatusCancelled || current.Status == types.PaymentStatusPaused {
		s.logger.Infof("Payment %s was %s mid-execution, keeping that status", payment.ID, current.Status)
		updated.Status = current.Status
	}

	if err := s.store.UpdatePayment(ctx, updated); err != nil {
		s.logger.Errorf("Failed to persist payment %s after success: %v", payment.ID, err)
		return
	}

	metrics.TrackExecution(true, "", duration)
	s.logger.Infof("Payment %s executed (tx %s), next due at %d", payment.ID, txHash, updated.NextPaymentTime)
}

// reconcileCounters rebuilds paymentCount and totalPaid from the history log
// for every payment whose cached counters disagree with it. Paused and
// cancelled payments are included: their counters are still read back.
func (s *PaymentScheduler) reconcileCounters(ctx context.Context) error {
	all, err := s.store.Payments(ctx)
	if err != nil {
		return err
	}

	for _, payment := range all {
		history, err := s.store.PaymentHistory(ctx, payment.ID)
		if err != nil {
			s.logger.Errorf("Failed to fetch history for payment %s: %v", payment.ID, err)
			continue
		}

		rebuilt := payments.Reconcile(payment, history)
		if rebuilt.PaymentCount == payment.PaymentCount && rebuilt.TotalPaid == payment.TotalPaid {
			continue
		}

		s.logger.Warnf("Payment %s counters diverged from history (count %d->%d, total %s->%s)",
			payment.ID, payment.PaymentCount, rebuilt.PaymentCount, payment.TotalPaid, rebuilt.TotalPaid)
		if err := s.store.UpdatePayment(ctx, rebuilt); err != nil {
			s.logger.Errorf("Failed to persist reconciled payment %s: %v", payment.ID, err)
			continue
		}
		metrics.CountersReconciledTotal.Inc()
	}
	return nil
}
