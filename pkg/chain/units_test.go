package chain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		decimals int
		want     string
	}{
		{"whole tokens", "1000000", 7, "10000000000000"},
		{"fractional amount", "1.5", 7, "15000000"},
		{"zero decimals", "42", 0, "42"},
		{"full precision", "0.0000001", 7, "1"},
		{"eighteen decimals", "1", 18, "1000000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToBaseUnits(tt.amount, tt.decimals)
			require.NoError(t, err)

			want, ok := new(big.Int).SetString(tt.want, 10)
			require.True(t, ok)
			assert.Equal(t, 0, got.Cmp(want))
		})
	}
}

func TestToBaseUnitsRejectsExcessPrecision(t *testing.T) {
	_, err := ToBaseUnits("1.00000001", 7)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.CodeOf(err))
}

func TestToBaseUnitsRejectsGarbage(t *testing.T) {
	for _, amount := range []string{"", "abc", "1,5", "-3"} {
		_, err := ToBaseUnits(amount, 7)
		assert.Error(t, err, "amount %q", amount)
	}
}

func TestFromBaseUnitsRoundTrips(t *testing.T) {
	raw, err := ToBaseUnits("123.456", 7)
	require.NoError(t, err)
	assert.Equal(t, "123.456", FromBaseUnits(raw, 7))
}
