package queries

// Write Queries
const (
	CreatePaymentQuery = `
			INSERT INTO tokenforge.recurring_payments (
				id, recipient, amount, token_address, token_symbol, token_decimals,
				memo, interval_tag, interval_seconds, next_payment_time,
				last_payment_time, payment_count, total_paid, status, created_at, creator
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	// 16 values to be inserted, so 16 ?s

	UpdatePaymentScheduleQuery = `
			UPDATE tokenforge.recurring_payments
			SET next_payment_time = ?, last_payment_time = ?,
			payment_count = ?, total_paid = ?, status = ?
			WHERE id = ?`
)

// Read Queries
const (
	GetPaymentByIDQuery = `
			SELECT id, recipient, amount, token_address, token_symbol, token_decimals,
				memo, interval_tag, interval_seconds, next_payment_time,
				last_payment_time, payment_count, total_paid, status, created_at, creator
			FROM tokenforge.recurring_payments
			WHERE id = ?`

	GetAllPaymentsQuery = `
			SELECT id, recipient, amount, token_address, token_symbol, token_decimals,
				memo, interval_tag, interval_seconds, next_payment_time,
				last_payment_time, payment_count, total_paid, status, created_at, creator
			FROM tokenforge.recurring_payments`
)
