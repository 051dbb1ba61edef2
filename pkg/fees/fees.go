package fees

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Schedule is the factory fee structure for a network. Amounts are in the
// chain's native unit, kept as decimals end to end.
type Schedule struct {
	BaseFee     decimal.Decimal
	MetadataFee decimal.Decimal
}

// Breakdown is the cost of a single deployment. Derived, never persisted on
// its own.
type Breakdown struct {
	BaseFee     decimal.Decimal `json:"baseFee"`
	MetadataFee decimal.Decimal `json:"metadataFee"`
	TotalFee    decimal.Decimal `json:"totalFee"`
}

// NewSchedule builds a schedule from decimal strings, rejecting negatives.
func NewSchedule(baseFee, metadataFee string) (Schedule, error) {
	base, err := decimal.NewFromString(baseFee)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid base fee %q: %w", baseFee, err)
	}
	meta, err := decimal.NewFromString(metadataFee)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid metadata fee %q: %w", metadataFee, err)
	}
	if base.IsNegative() || meta.IsNegative() {
		return Schedule{}, fmt.Errorf("fees must not be negative")
	}
	return Schedule{BaseFee: base, MetadataFee: meta}, nil
}

// Compute returns the fee breakdown for one deployment. The metadata fee is
// charged only when a metadata upload will actually happen; deployments with
// a pre-resolved URI pay the base fee alone.
func Compute(schedule Schedule, hasMetadata bool) Breakdown {
	breakdown := Breakdown{
		BaseFee:     schedule.BaseFee,
		MetadataFee: decimal.Zero,
	}
	if hasMetadata {
		breakdown.MetadataFee = schedule.MetadataFee
	}
	breakdown.TotalFee = breakdown.BaseFee.Add(breakdown.MetadataFee)
	return breakdown
}
