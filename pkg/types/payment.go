package types

// PaymentStatus is the lifecycle state of a recurring payment.
// Cancelled is terminal; paused payments are never selected as due.
type PaymentStatus string

const (
	PaymentStatusActive    PaymentStatus = "active"
	PaymentStatusDue       PaymentStatus = "due"
	PaymentStatusPaused    PaymentStatus = "paused"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// HistoryStatus is the outcome of a single execution attempt.
type HistoryStatus string

const (
	HistoryStatusSuccess HistoryStatus = "success"
	HistoryStatusFailed  HistoryStatus = "failed"
)

// RecurringPayment is the scheduler-owned record of one subscription.
// TotalPaid always equals the sum of success history amounts for the payment;
// the scheduler can rebuild it from history after a crash.
type RecurringPayment struct {
	ID              string        `json:"id"`
	Recipient       string        `json:"recipient"`
	Amount          string        `json:"amount"`
	TokenAddress    string        `json:"tokenAddress"`
	TokenSymbol     string        `json:"tokenSymbol,omitempty"`
	TokenDecimals   int           `json:"tokenDecimals,omitempty"`
	Memo            string        `json:"memo,omitempty"`
	Interval        IntervalTag   `json:"interval"`
	IntervalSeconds int64         `json:"intervalSeconds"`
	NextPaymentTime int64         `json:"nextPaymentTime"`
	LastPaymentTime int64         `json:"lastPaymentTime,omitempty"`
	PaymentCount    int64         `json:"paymentCount"`
	TotalPaid       string        `json:"totalPaid"`
	Status          PaymentStatus `json:"status"`
	CreatedAt       int64         `json:"createdAt"`
	Creator         string        `json:"creator"`
}

// RecurringPaymentHistory is one append-only log entry per execution attempt.
// TransactionHash is empty when the attempt never reached submission.
type RecurringPaymentHistory struct {
	ID              string        `json:"id"`
	PaymentID       string        `json:"paymentId"`
	TransactionHash string        `json:"transactionHash,omitempty"`
	Amount          string        `json:"amount"`
	Timestamp       int64         `json:"timestamp"`
	Status          HistoryStatus `json:"status"`
	ErrorCode       string        `json:"errorCode,omitempty"`
}

// CreateRecurringPaymentParams is the input for creating a payment.
type CreateRecurringPaymentParams struct {
	Recipient             string      `json:"recipient"`
	Amount                string      `json:"amount"`
	TokenAddress          string      `json:"tokenAddress"`
	TokenSymbol           string      `json:"tokenSymbol,omitempty"`
	TokenDecimals         int         `json:"tokenDecimals,omitempty"`
	Memo                  string      `json:"memo,omitempty"`
	Interval              IntervalTag `json:"interval"`
	CustomIntervalSeconds int64       `json:"customIntervalSeconds,omitempty"`
	Creator               string      `json:"creator"`
}

// RecurringPaymentFilters is the read-side query criteria.
type RecurringPaymentFilters struct {
	Status       PaymentStatus `json:"status,omitempty"`
	TokenAddress string        `json:"tokenAddress,omitempty"`
	Search       string        `json:"search,omitempty"`
}
