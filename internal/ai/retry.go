package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RetryConfig holds retry configuration for oracle API calls.
type RetryConfig struct {
	MaxRetries        int           // default 3
	InitialBackoff    time.Duration // default 1s
	MaxBackoff        time.Duration // default 30s
	BackoffMultiplier float64       // default 2.0
	Timeout           time.Duration // per-request timeout, default 60s
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:        3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
		Timeout:           60 * time.Second,
	}
}

// isRetryable reports whether an API error is worth retrying. Rate limits,
// overload, and transient network failures are; auth and validation errors
// are not.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"rate limit", "429", "overloaded", "529",
		"timeout", "deadline exceeded", "connection reset",
		"temporarily unavailable", "500", "502", "503",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// retryWithBackoff runs fn with exponential backoff on retryable errors.
// Each attempt gets its own timeout carved from ctx.
func (o *Oracle) retryWithBackoff(ctx context.Context, operation string, fn func(ctx context.Context) error) error {
	backoff := o.retry.InitialBackoff
	var lastErr error

	for attempt := 0; attempt <= o.retry.MaxRetries; attempt++ {
		if attempt > 0 {
			o.logger.Warn("retrying oracle call",
				"operation", operation, "attempt", attempt, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff = time.Duration(float64(backoff) * o.retry.BackoffMultiplier)
			if backoff > o.retry.MaxBackoff {
				backoff = o.retry.MaxBackoff
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, o.retry.Timeout)
		err := fn(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isRetryable(err) {
			return err
		}
	}

	return fmt.Errorf("%s failed after %d retries: %w", operation, o.retry.MaxRetries, lastErr)
}
