package chain

import (
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
)

// ToBaseUnits converts a human-readable decimal amount into the token's
// smallest-unit integer representation.
func ToBaseUnits(amount string, decimals int) (*big.Int, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, apperrors.Newf(apperrors.CodeInvalidInput, "invalid amount: %s", amount)
	}
	if value.IsNegative() {
		return nil, apperrors.Newf(apperrors.CodeInvalidInput, "amount must not be negative: %s", amount)
	}
	shifted := value.Shift(int32(decimals))
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, apperrors.Newf(apperrors.CodeInvalidInput, "amount %s has more than %d decimal places", amount, decimals)
	}
	return shifted.BigInt(), nil
}

// FromBaseUnits converts a smallest-unit integer back into a decimal string.
func FromBaseUnits(amount *big.Int, decimals int) string {
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}
