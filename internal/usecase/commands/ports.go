package commands

import (
	"context"
	"log/slog"
	"time"

	"booking-engine/internal/domain/shared/money"

	"github.com/google/uuid"
)

type Settings struct {
	OperationTimeout time.Duration
	RefundTimeout    time.Duration
}

type RefundRequest struct {
	BookingID uuid.UUID
	Reference string
	Amount    money.Money
}

// PaymentGateway is the external refund capability. The engine calls it after
// a cancellation commits and never retries it on its own.
type PaymentGateway interface {
	RequestRefund(ctx context.Context, req RefundRequest) error
}

// LoggingPaymentGateway records refund requests without moving money.
// It stands in when no real gateway is wired.
type LoggingPaymentGateway struct {
	logger *slog.Logger
}

func NewLoggingPaymentGateway(logger *slog.Logger) *LoggingPaymentGateway {
	return &LoggingPaymentGateway{logger: logger}
}

func (g *LoggingPaymentGateway) RequestRefund(ctx context.Context, req RefundRequest) error {
	g.logger.InfoContext(ctx, "refund requested",
		"booking_id", req.BookingID.String(),
		"reference", req.Reference,
		"amount", req.Amount.String())
	return nil
}
