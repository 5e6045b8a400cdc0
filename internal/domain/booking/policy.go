package booking

import (
	"time"

	"booking-engine/internal/domain/shared/money"

	"github.com/shopspring/decimal"
)

type ConfirmationPolicy struct {
	RequirePayment bool
	AllowPartial   bool
}

func DefaultConfirmationPolicy() ConfirmationPolicy {
	return ConfirmationPolicy{RequirePayment: true, AllowPartial: true}
}

func (p ConfirmationPolicy) Allows(ps PaymentStatus) bool {
	if !p.RequirePayment {
		return true
	}
	if ps == PaymentPaid {
		return true
	}
	return p.AllowPartial && ps == PaymentPartiallyPaid
}

type CancellationInput struct {
	Now         time.Time
	StartsAt    time.Time
	TotalAmount money.Money
}

// CancellationPolicy returns the amount to give back to the customer.
type CancellationPolicy func(in CancellationInput) money.Money

var (
	ratioFull    = decimal.NewFromInt(1)
	ratioMost    = decimal.RequireFromString("0.75")
	ratioHalf    = decimal.RequireFromString("0.5")
	ratioNothing = decimal.Zero
)

// TieredCancellationPolicy: more than 48h before start refunds everything,
// more than 24h keeps a 25% fee, any time before start keeps half, after
// start nothing is refunded.
func TieredCancellationPolicy(in CancellationInput) money.Money {
	hours := in.StartsAt.Sub(in.Now).Hours()
	switch {
	case hours > 48:
		return in.TotalAmount.MulRatio(ratioFull)
	case hours > 24:
		return in.TotalAmount.MulRatio(ratioMost)
	case hours > 0:
		return in.TotalAmount.MulRatio(ratioHalf)
	default:
		return in.TotalAmount.MulRatio(ratioNothing)
	}
}
