package types

import (
	"github.com/tokenforge/tokenforge-backend/pkg/apperrors"
)

// IntervalTag selects a payment interval. Non-custom tags resolve to a fixed
// number of seconds; custom intervals come with caller-supplied seconds.
type IntervalTag string

const (
	IntervalHourly  IntervalTag = "hourly"
	IntervalDaily   IntervalTag = "daily"
	IntervalWeekly  IntervalTag = "weekly"
	IntervalMonthly IntervalTag = "monthly"
	IntervalCustom  IntervalTag = "custom"
)

const (
	SecondsPerHour = 3600
	SecondsPerDay  = 86400
	SecondsPerWeek = 604800
	// Monthly uses a fixed 30-day approximation for deterministic scheduling.
	SecondsPerMonth = 2592000
)

// ResolveIntervalSeconds maps an interval tag to its period in seconds.
// For custom intervals the caller-supplied value must be a positive integer.
func ResolveIntervalSeconds(tag IntervalTag, customSeconds int64) (int64, error) {
	switch tag {
	case IntervalHourly:
		return SecondsPerHour, nil
	case IntervalDaily:
		return SecondsPerDay, nil
	case IntervalWeekly:
		return SecondsPerWeek, nil
	case IntervalMonthly:
		return SecondsPerMonth, nil
	case IntervalCustom:
		if customSeconds <= 0 {
			return 0, apperrors.Newf(apperrors.CodeInvalidInput, "custom interval must be a positive number of seconds, got %d", customSeconds)
		}
		return customSeconds, nil
	default:
		return 0, apperrors.Newf(apperrors.CodeInvalidInput, "unknown interval tag: %s", tag)
	}
}
