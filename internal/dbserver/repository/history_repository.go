package repository

import (
	"github.com/tokenforge/tokenforge-backend/internal/dbserver/repository/queries"
	"github.com/tokenforge/tokenforge-backend/pkg/database"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

// HistoryRepository is the append-only execution log. There is intentionally
// no update or delete: counters are rebuilt by replaying these rows.
type HistoryRepository interface {
	AppendHistory(entry *types.RecurringPaymentHistory) error
	GetHistoryByPaymentID(paymentID string) ([]types.RecurringPaymentHistory, error)
}

type historyRepository struct {
	db *database.Connection
}

func NewHistoryRepository(db *database.Connection) HistoryRepository {
	return &historyRepository{
		db: db,
	}
}

func (r *historyRepository) AppendHistory(entry *types.RecurringPaymentHistory) error {
	err := r.db.Session().Query(queries.AppendHistoryQuery,
		entry.PaymentID, entry.ID, entry.TransactionHash, entry.Amount,
		entry.Timestamp, string(entry.Status), entry.ErrorCode).Exec()
	if err != nil {
		return err
	}
	return nil
}

// GetHistoryByPaymentID returns the full log for one payment, oldest first
// (clustering order on the table).
func (r *historyRepository) GetHistoryByPaymentID(paymentID string) ([]types.RecurringPaymentHistory, error) {
	iter := r.db.Session().Query(queries.GetHistoryByPaymentIDQuery, paymentID).Iter()

	var history []types.RecurringPaymentHistory
	var entry types.RecurringPaymentHistory
	var status string
	for iter.Scan(
		&entry.PaymentID, &entry.ID, &entry.TransactionHash, &entry.Amount,
		&entry.Timestamp, &status, &entry.ErrorCode) {
		entry.Status = types.HistoryStatus(status)
		history = append(history, entry)
		entry = types.RecurringPaymentHistory{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return history, nil
}
