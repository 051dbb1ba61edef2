package repository

import (
	"errors"

	"github.com/gocql/gocql"

	"github.com/tokenforge/tokenforge-backend/internal/dbserver/repository/queries"
	"github.com/tokenforge/tokenforge-backend/pkg/database"
	"github.com/tokenforge/tokenforge-backend/pkg/types"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository interface {
	CreatePayment(payment *types.RecurringPayment) error
	GetPaymentByID(id string) (types.RecurringPayment, error)
	GetAllPayments() ([]types.RecurringPayment, error)
	UpdatePaymentSchedule(payment *types.RecurringPayment) error
}

type paymentRepository struct {
	db *database.Connection
}

func NewPaymentRepository(db *database.Connection) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

func (r *paymentRepository) CreatePayment(payment *types.RecurringPayment) error {
	err := r.db.Session().Query(queries.CreatePaymentQuery,
		payment.ID, payment.Recipient, payment.Amount, payment.TokenAddress,
		payment.TokenSymbol, payment.TokenDecimals, payment.Memo,
		string(payment.Interval), payment.IntervalSeconds, payment.NextPaymentTime,
		payment.LastPaymentTime, payment.PaymentCount, payment.TotalPaid,
		string(payment.Status), payment.CreatedAt, payment.Creator).Exec()
	if err != nil {
		return err
	}
	return nil
}

func (r *paymentRepository) GetPaymentByID(id string) (types.RecurringPayment, error) {
	var payment types.RecurringPayment
	var intervalTag, status string
	err := r.db.Session().Query(queries.GetPaymentByIDQuery, id).Scan(
		&payment.ID, &payment.Recipient, &payment.Amount, &payment.TokenAddress,
		&payment.TokenSymbol, &payment.TokenDecimals, &payment.Memo,
		&intervalTag, &payment.IntervalSeconds, &payment.NextPaymentTime,
		&payment.LastPaymentTime, &payment.PaymentCount, &payment.TotalPaid,
		&status, &payment.CreatedAt, &payment.Creator)
	if err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return types.RecurringPayment{}, ErrPaymentNotFound
		}
		return types.RecurringPayment{}, err
	}
	payment.Interval = types.IntervalTag(intervalTag)
	payment.Status = types.PaymentStatus(status)
	return payment, nil
}

func (r *paymentRepository) GetAllPayments() ([]types.RecurringPayment, error) {
	iter := r.db.Session().Query(queries.GetAllPaymentsQuery).Iter()

	var all []types.RecurringPayment
	var payment types.RecurringPayment
	var intervalTag, status string
	for iter.Scan(
		&payment.ID, &payment.Recipient, &payment.Amount, &payment.TokenAddress,
		&payment.TokenSymbol, &payment.TokenDecimals, &payment.Memo,
		&intervalTag, &payment.IntervalSeconds, &payment.NextPaymentTime,
		&payment.LastPaymentTime, &payment.PaymentCount, &payment.TotalPaid,
		&status, &payment.CreatedAt, &payment.Creator) {
		payment.Interval = types.IntervalTag(intervalTag)
		payment.Status = types.PaymentStatus(status)
		all = append(all, payment)
		payment = types.RecurringPayment{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return all, nil
}

func (r *paymentRepository) UpdatePaymentSchedule(payment *types.RecurringPayment) error {
	err := r.db.Session().Query(queries.UpdatePaymentScheduleQuery,
		payment.NextPaymentTime, payment.LastPaymentTime,
		payment.PaymentCount, payment.TotalPaid, string(payment.Status),
		payment.ID).Exec()
	if err != nil {
		return err
	}
	return nil
}
