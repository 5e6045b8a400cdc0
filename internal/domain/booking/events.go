package booking

import (
	"time"

	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/domain/shared/money"

	"github.com/google/uuid"
)

type BookingCreated struct {
	BookingID   uuid.UUID           `json:"bookingId"`
	Reference   string              `json:"reference"`
	ResourceID  uuid.UUID           `json:"resourceId"`
	CustomerID  uuid.UUID           `json:"customerId"`
	DateRange   daterange.DateRange `json:"dateRange"`
	PartySize   int                 `json:"partySize"`
	TotalAmount money.Money         `json:"totalAmount"`
	At          time.Time           `json:"timestamp"`
}

func (e BookingCreated) EventName() string     { return "booking.created" }
func (e BookingCreated) AggregateID() string   { return e.BookingID.String() }
func (e BookingCreated) OccurredAt() time.Time { return e.At }

type BookingStatusChanged struct {
	BookingID    uuid.UUID    `json:"bookingId"`
	ResourceID   uuid.UUID    `json:"resourceId"`
	From         Status       `json:"from"`
	To           Status       `json:"to"`
	Reason       *string      `json:"reason,omitempty"`
	RefundAmount *money.Money `json:"refundAmount,omitempty"`
	At           time.Time    `json:"timestamp"`
}

func (e BookingStatusChanged) EventName() string     { return "booking.status_changed" }
func (e BookingStatusChanged) AggregateID() string   { return e.BookingID.String() }
func (e BookingStatusChanged) OccurredAt() time.Time { return e.At }

type PaymentStatusChanged struct {
	BookingID uuid.UUID     `json:"bookingId"`
	From      PaymentStatus `json:"from"`
	To        PaymentStatus `json:"to"`
	At        time.Time     `json:"timestamp"`
}

func (e PaymentStatusChanged) EventName() string     { return "booking.payment_status_changed" }
func (e PaymentStatusChanged) AggregateID() string   { return e.BookingID.String() }
func (e PaymentStatusChanged) OccurredAt() time.Time { return e.At }

func (b *Booking) CreatedEvent() BookingCreated {
	return BookingCreated{
		BookingID:   b.id,
		Reference:   b.reference,
		ResourceID:  b.resourceID,
		CustomerID:  b.customerID,
		DateRange:   b.dateRange,
		PartySize:   b.partySize,
		TotalAmount: b.totalAmount,
		At:          b.createdAt,
	}
}
