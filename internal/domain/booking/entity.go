package booking

import (
	"time"

	"booking-engine/internal/domain/pricing"
	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/domain/shared/money"

	"github.com/google/uuid"
)

type Booking struct {
	id                 uuid.UUID
	reference          string
	resourceID         uuid.UUID
	customerID         uuid.UUID
	dateRange          daterange.DateRange
	partySize          int
	nights             int
	unitRate           money.Money
	totalAmount        money.Money
	status             Status
	paymentStatus      PaymentStatus
	contact            ContactInfo
	specialRequests    SpecialRequests
	cancellationReason *string
	refundAmount       *money.Money
	createdAt          time.Time
	updatedAt          time.Time
}

type NewParams struct {
	ResourceID      uuid.UUID
	CustomerID      uuid.UUID
	DateRange       daterange.DateRange
	Quote           pricing.Quote
	Contact         ContactInfo
	SpecialRequests SpecialRequests
}

// NewBooking starts a booking in pending/unpaid. The quote is frozen onto the
// booking and never recomputed.
func NewBooking(p NewParams, now time.Time) *Booking {
	return &Booking{
		id:              uuid.New(),
		reference:       NewReference(now),
		resourceID:      p.ResourceID,
		customerID:      p.CustomerID,
		dateRange:       p.DateRange,
		partySize:       p.Quote.PartySize,
		nights:          p.Quote.Nights,
		unitRate:        p.Quote.UnitRate,
		totalAmount:     p.Quote.Total,
		status:          StatusPending,
		paymentStatus:   PaymentUnpaid,
		contact:         p.Contact,
		specialRequests: p.SpecialRequests,
		createdAt:       now,
		updatedAt:       now,
	}
}

type Snapshot struct {
	ID                 uuid.UUID
	Reference          string
	ResourceID         uuid.UUID
	CustomerID         uuid.UUID
	DateRange          daterange.DateRange
	PartySize          int
	Nights             int
	UnitRate           money.Money
	TotalAmount        money.Money
	Status             Status
	PaymentStatus      PaymentStatus
	Contact            ContactInfo
	SpecialRequests    string
	CancellationReason *string
	RefundAmount       *money.Money
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func Reconstruct(s Snapshot) *Booking {
	return &Booking{
		id:                 s.ID,
		reference:          s.Reference,
		resourceID:         s.ResourceID,
		customerID:         s.CustomerID,
		dateRange:          s.DateRange,
		partySize:          s.PartySize,
		nights:             s.Nights,
		unitRate:           s.UnitRate,
		totalAmount:        s.TotalAmount,
		status:             s.Status,
		paymentStatus:      s.PaymentStatus,
		contact:            s.Contact,
		specialRequests:    SpecialRequests{value: s.SpecialRequests},
		cancellationReason: s.CancellationReason,
		refundAmount:       s.RefundAmount,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
	}
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:                 b.id,
		Reference:          b.reference,
		ResourceID:         b.resourceID,
		CustomerID:         b.customerID,
		DateRange:          b.dateRange,
		PartySize:          b.partySize,
		Nights:             b.nights,
		UnitRate:           b.unitRate,
		TotalAmount:        b.totalAmount,
		Status:             b.status,
		PaymentStatus:      b.paymentStatus,
		Contact:            b.contact,
		SpecialRequests:    b.specialRequests.String(),
		CancellationReason: b.cancellationReason,
		RefundAmount:       b.refundAmount,
		CreatedAt:          b.createdAt,
		UpdatedAt:          b.updatedAt,
	}
}

// touch keeps updatedAt monotonic even if the clock steps backwards.
func (b *Booking) touch(now time.Time) time.Time {
	if now.Before(b.updatedAt) {
		now = b.updatedAt
	}
	b.updatedAt = now
	return now
}

func (b *Booking) IsOwnedBy(customerID uuid.UUID) bool {
	return b.customerID == customerID
}

func (b *Booking) ID() uuid.UUID                    { return b.id }
func (b *Booking) Reference() string                { return b.reference }
func (b *Booking) ResourceID() uuid.UUID            { return b.resourceID }
func (b *Booking) CustomerID() uuid.UUID            { return b.customerID }
func (b *Booking) DateRange() daterange.DateRange   { return b.dateRange }
func (b *Booking) PartySize() int                   { return b.partySize }
func (b *Booking) Nights() int                      { return b.nights }
func (b *Booking) UnitRate() money.Money            { return b.unitRate }
func (b *Booking) TotalAmount() money.Money         { return b.totalAmount }
func (b *Booking) Status() Status                   { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus     { return b.paymentStatus }
func (b *Booking) Contact() ContactInfo             { return b.contact }
func (b *Booking) SpecialRequests() SpecialRequests { return b.specialRequests }
func (b *Booking) CancellationReason() *string      { return b.cancellationReason }
func (b *Booking) RefundAmount() *money.Money       { return b.refundAmount }
func (b *Booking) CreatedAt() time.Time             { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time             { return b.updatedAt }
