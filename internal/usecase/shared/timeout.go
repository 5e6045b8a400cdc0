package shared

import (
	"context"
	"time"

	"booking-engine/internal/pkg/errs"
)

const DefaultOperationTimeout = 5 * time.Second

// WithTimeout bounds one engine operation. Callers with a tighter deadline keep it.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultOperationTimeout
	}
	return context.WithTimeout(ctx, d)
}

// MarkTimeout tags deadline failures so the caller sees a timeout rather than
// a generic storage error.
func MarkTimeout(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errs.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return errs.Mark(err, errs.ErrTimeout)
	}
	return err
}
