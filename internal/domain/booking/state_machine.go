package booking

import (
	"strings"
	"time"

	"booking-engine/internal/domain/availability"
	"booking-engine/internal/domain/shared/money"
	"booking-engine/internal/pkg/errs"
)

// StateMachine is the only way a Booking changes status or payment status.
type StateMachine struct {
	Confirmation ConfirmationPolicy
	Cancellation CancellationPolicy
}

func NewStateMachine(confirmation ConfirmationPolicy, cancellation CancellationPolicy) *StateMachine {
	if cancellation == nil {
		cancellation = TieredCancellationPolicy
	}
	return &StateMachine{Confirmation: confirmation, Cancellation: cancellation}
}

type TransitionRequest struct {
	Target Status
	Reason string
	Now    time.Time
	// StartsAt is the first night's start in the resource timezone.
	StartsAt time.Time
}

type Transition struct {
	From   Status
	To     Status
	Refund *money.Money
	// IndexState is what the booking's availability record becomes.
	IndexState availability.State
	Event      BookingStatusChanged
}

func IllegalTransition(from, to string) error {
	return errs.Mark(errs.Newf("cannot move from %s to %s", from, to), errs.ErrIllegalTransition)
}

func (m *StateMachine) Apply(b *Booking, req TransitionRequest) (*Transition, error) {
	from := b.status
	if !req.Target.IsValid() {
		return nil, errs.Validation("status", "unknown booking status")
	}
	if !from.CanTransitionTo(req.Target) {
		return nil, IllegalTransition(from.String(), req.Target.String())
	}

	t := &Transition{From: from, To: req.Target, IndexState: availability.StateActive}

	switch req.Target {
	case StatusConfirmed:
		if !m.Confirmation.Allows(b.paymentStatus) {
			return nil, errs.Mark(
				errs.Newf("confirmation requires payment, booking is %s", b.paymentStatus),
				errs.ErrIllegalTransition,
			)
		}
	case StatusCancelled:
		reason := strings.TrimSpace(req.Reason)
		if len(reason) > MaxCancellationReasonLength {
			return nil, errs.Validation("reason", "exceeds 500 characters")
		}
		b.cancellationReason = &reason
		if b.paymentStatus.HasCollected() {
			refund := m.Cancellation(CancellationInput{
				Now:         req.Now,
				StartsAt:    req.StartsAt,
				TotalAmount: b.totalAmount,
			})
			b.refundAmount = &refund
			t.Refund = &refund
		}
		t.IndexState = availability.StateReleased
	case StatusNoShow:
		t.IndexState = availability.StateReleased
	case StatusCompleted:
		t.IndexState = availability.StateHistorical
	}

	b.status = req.Target
	at := b.touch(req.Now)

	t.Event = BookingStatusChanged{
		BookingID:    b.id,
		ResourceID:   b.resourceID,
		From:         from,
		To:           req.Target,
		Reason:       b.cancellationReason,
		RefundAmount: t.Refund,
		At:           at,
	}
	return t, nil
}

func (m *StateMachine) ApplyPayment(b *Booking, target PaymentStatus, now time.Time) (*PaymentStatusChanged, error) {
	if !target.IsValid() {
		return nil, errs.Validation("paymentStatus", "unknown payment status")
	}
	from := b.paymentStatus
	if !from.CanTransitionTo(target) {
		return nil, IllegalTransition("payment "+from.String(), target.String())
	}
	b.paymentStatus = target
	at := b.touch(now)
	return &PaymentStatusChanged{BookingID: b.id, From: from, To: target, At: at}, nil
}
