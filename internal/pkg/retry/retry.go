// Package retry runs an operation again after transient failures, with
// exponential back-off. Only idempotent operations may use it.
package retry

import (
	"context"
	"log/slog"
	"time"

	"booking-engine/internal/pkg/errs"
)

const DefaultBaseDelay = 50 * time.Millisecond

type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	// Retryable decides whether err is worth another attempt. Nil means
	// errs.ErrTransient only.
	Retryable func(err error) bool
}

func (c Config) Do(ctx context.Context, logger *slog.Logger, operationName string, fn func(ctx context.Context) error) error {
	attempts := max(c.MaxAttempts, 1)
	retryable := c.Retryable
	if retryable == nil {
		retryable = IsTransient
	}
	if logger == nil {
		logger = slog.Default()
	}

	delay := c.BaseDelay
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts || !retryable(lastErr) || ctx.Err() != nil {
			break
		}

		logger.Warn("retrying after transient failure",
			"operation", operationName,
			"attempt", attempt,
			"max_attempts", attempts,
			"wait_ms", delay.Milliseconds(),
			"error", lastErr.Error())

		select {
		case <-ctx.Done():
			return errs.Wrap(ctx.Err(), operationName)
		case <-time.After(delay):
		}
		delay *= 2
	}
	return lastErr
}

func IsTransient(err error) bool {
	return errs.Is(err, errs.ErrTransient)
}
