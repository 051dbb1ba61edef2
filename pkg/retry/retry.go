package retry

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/tokenforge/tokenforge-backend/pkg/logging"
)

// RetryConfig holds the configuration for retry operations
type RetryConfig struct {
	MaxRetries      int                   // Maximum number of attempts
	InitialDelay    time.Duration         // Initial delay between retries
	MaxDelay        time.Duration         // Maximum delay between retries
	BackoffFactor   float64               // Multiplier for exponential backoff
	JitterFactor    float64               // Fraction of the delay added as random jitter
	LogRetryAttempt bool                  // Whether to log retry attempts
	ShouldRetry     func(error, int) bool // Predicate deciding if an error is retryable (error, attempt number)
}

// DefaultRetryConfig returns a default configuration for retry operations
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:      5,
		InitialDelay:    time.Second,
		MaxDelay:        30 * time.Second,
		BackoffFactor:   2.0,
		JitterFactor:    0.2,
		LogRetryAttempt: true,
		ShouldRetry:     nil,
	}
}

func (c *RetryConfig) Validate() error {
	if c.MaxRetries < 1 {
		return errors.New("MaxRetries must be >= 1")
	}
	if c.InitialDelay <= 0 {
		return errors.New("InitialDelay must be positive")
	}
	if c.MaxDelay <= 0 {
		return errors.New("MaxDelay must be positive")
	}
	if c.BackoffFactor < 1.0 {
		return errors.New("BackoffFactor must be >= 1.0")
	}
	if c.JitterFactor < 0 || c.JitterFactor > 1.0 {
		return errors.New("JitterFactor must be between 0.0 and 1.0")
	}
	return nil
}

// nextDelay applies exponential backoff capped at MaxDelay.
func nextDelay(current time.Duration, backoffFactor float64, maxDelay time.Duration) time.Duration {
	next := time.Duration(float64(current) * backoffFactor)
	if next > maxDelay {
		next = maxDelay
	}
	return next
}

// withJitter adds up to JitterFactor of the base delay as random jitter.
func withJitter(baseDelay time.Duration, jitterFactor float64) time.Duration {
	if jitterFactor <= 0 {
		return baseDelay
	}
	return baseDelay + time.Duration(jitterFactor*float64(baseDelay)*rand.Float64())
}

// Retry executes the given operation with exponential backoff.
// Returns the result of the operation if successful, or the last error if all attempts fail.
func Retry[T any](ctx context.Context, operation func() (T, error), retryConfig *RetryConfig, logger logging.Logger) (T, error) {
	var zero T
	var err error

	if retryConfig == nil {
		retryConfig = DefaultRetryConfig()
	} else if err := retryConfig.Validate(); err != nil {
		return zero, fmt.Errorf("invalid retry config: %w", err)
	}

	delay := retryConfig.InitialDelay

	for attempt := 0; attempt < retryConfig.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, opErr := operation()
		if opErr == nil {
			return result, nil
		}
		err = opErr

		if retryConfig.ShouldRetry != nil && !retryConfig.ShouldRetry(err, attempt+1) {
			return zero, err
		}

		sleepDuration := withJitter(delay, retryConfig.JitterFactor)

		if retryConfig.LogRetryAttempt {
			logger.Warnf("Attempt %d/%d failed: %v. Retrying in %v...", attempt+1, retryConfig.MaxRetries, err, sleepDuration)
		}

		select {
		case <-time.After(sleepDuration):
			delay = nextDelay(delay, retryConfig.BackoffFactor, retryConfig.MaxDelay)
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}

	return zero, fmt.Errorf("operation failed after %d attempts: %w", retryConfig.MaxRetries, err)
}

// RetryFunc executes an operation that only returns an error, with exponential backoff.
// This is a convenience wrapper around Retry.
func RetryFunc(ctx context.Context, operation func() error, config *RetryConfig, logger logging.Logger) error {
	opWithValue := func() (struct{}, error) {
		return struct{}{}, operation()
	}
	_, err := Retry(ctx, opWithValue, config, logger)
	return err
}
