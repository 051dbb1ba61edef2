package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

func fastConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:      3,
		InitialDelay:    time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		BackoffFactor:   2.0,
		JitterFactor:    0,
		LogRetryAttempt: false,
	}
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	attempts := 0
	result, err := Retry(context.Background(), func() (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	}, fastConfig(), logging.NewNoOpLogger())

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 3, attempts)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	attempts := 0
	_, err := Retry(context.Background(), func() (int, error) {
		attempts++
		return 0, errors.New("always fails")
	}, fastConfig(), logging.NewNoOpLogger())

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryStopsOnNonRetryableError(t *testing.T) {
	cfg := fastConfig()
	permanent := errors.New("permanent")
	cfg.ShouldRetry = func(err error, attempt int) bool {
		return !errors.Is(err, permanent)
	}

	attempts := 0
	_, err := Retry(context.Background(), func() (int, error) {
		attempts++
		return 0, permanent
	}, cfg, logging.NewNoOpLogger())

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
}

func TestRetryHonoursContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Retry(ctx, func() (int, error) {
		return 0, errors.New("should not matter")
	}, fastConfig(), logging.NewNoOpLogger())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfigValidate(t *testing.T) {
	cfg := fastConfig()
	cfg.BackoffFactor = 0.5
	assert.Error(t, cfg.Validate())

	cfg = fastConfig()
	cfg.JitterFactor = 1.5
	assert.Error(t, cfg.Validate())

	assert.NoError(t, fastConfig().Validate())
}

func TestNextDelayIsCapped(t *testing.T) {
	d := nextDelay(4*time.Millisecond, 2.0, 5*time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, d)
}
