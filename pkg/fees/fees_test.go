package fees

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWithMetadata(t *testing.T) {
	schedule, err := NewSchedule("10", "2.5")
	require.NoError(t, err)

	breakdown := Compute(schedule, true)
	assert.True(t, breakdown.BaseFee.Equal(decimal.RequireFromString("10")))
	assert.True(t, breakdown.MetadataFee.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, breakdown.TotalFee.Equal(decimal.RequireFromString("12.5")))
}

func TestComputeWithoutMetadata(t *testing.T) {
	schedule, err := NewSchedule("10", "2.5")
	require.NoError(t, err)

	// Pre-resolved metadata URI: no upload happens, no metadata fee
	breakdown := Compute(schedule, false)
	assert.True(t, breakdown.MetadataFee.IsZero())
	assert.True(t, breakdown.TotalFee.Equal(schedule.BaseFee))
}

func TestComputeIsDeterministic(t *testing.T) {
	schedule, err := NewSchedule("1.000000001", "0")
	require.NoError(t, err)

	first := Compute(schedule, true)
	second := Compute(schedule, true)
	assert.True(t, first.TotalFee.Equal(second.TotalFee))
}

func TestNewScheduleRejectsNegatives(t *testing.T) {
	_, err := NewSchedule("-1", "0")
	assert.Error(t, err)

	_, err = NewSchedule("1", "-0.5")
	assert.Error(t, err)

	_, err = NewSchedule("abc", "0")
	assert.Error(t, err)
}
