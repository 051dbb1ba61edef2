package queries

// The history table is append-only: insert and read, never update or delete.
const (
	AppendHistoryQuery = `
			INSERT INTO tokenforge.payment_history (
				payment_id, entry_id, transaction_hash, amount, timestamp, status, error_code
			) VALUES (?, ?, ?, ?, ?, ?, ?)`

	GetHistoryByPaymentIDQuery = `
			SELECT payment_id, entry_id, transaction_hash, amount, timestamp, status, error_code
			FROM tokenforge.payment_history
			WHERE payment_id = ?`
)
