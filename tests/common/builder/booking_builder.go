//go:build unit || e2e

package builder

import (
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/domain/shared/money"
	reqdto "booking-engine/internal/handler/dto/request"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	ResourceID      uuid.UUID
	CustomerID      uuid.UUID
	StartDate       string
	EndDate         string
	PartySize       int
	ContactName     string
	ContactEmail    string
	ContactPhone    string
	SpecialRequests string
	UnitRate        string
	Status          booking.Status
	PaymentStatus   booking.PaymentStatus
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ResourceID:      uuid.New(),
		CustomerID:      uuid.New(),
		StartDate:       "2026-03-10",
		EndDate:         "2026-03-13",
		PartySize:       2,
		ContactName:     "Alex Kim",
		ContactEmail:    "alex.kim@example.com",
		ContactPhone:    "+1-555-0100",
		SpecialRequests: "Late check-in",
		UnitRate:        "120.00",
		Status:          booking.StatusPending,
		PaymentStatus:   booking.PaymentUnpaid,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) ForResource(id uuid.UUID) *BookingBuilder {
	b.ResourceID = id
	return b
}

func (b *BookingBuilder) Dates(start, end string) *BookingBuilder {
	b.StartDate = start
	b.EndDate = end
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status, payment booking.PaymentStatus) *BookingBuilder {
	b.Status = status
	b.PaymentStatus = payment
	return b
}

// BuildDomain reconstructs a stored booking priced at UnitRate per guest-night.
func (b *BookingBuilder) BuildDomain() *booking.Booking {
	r, err := daterange.Parse(b.StartDate, b.EndDate)
	if err != nil {
		panic(err)
	}
	rate := money.New(decimal.RequireFromString(b.UnitRate), "USD")
	nights := len(r.Days())
	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return booking.Reconstruct(booking.Snapshot{
		ID:            uuid.New(),
		Reference:     booking.NewReference(created),
		ResourceID:    b.ResourceID,
		CustomerID:    b.CustomerID,
		DateRange:     r,
		PartySize:     b.PartySize,
		Nights:        nights,
		UnitRate:      rate,
		TotalAmount:   rate.MulInt(int64(b.PartySize * nights)),
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		Contact: booking.ContactInfo{
			Name:  b.ContactName,
			Email: b.ContactEmail,
			Phone: b.ContactPhone,
		},
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       created,
		UpdatedAt:       created,
	})
}

func (b *BookingBuilder) BuildCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ResourceID: b.ResourceID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		PartySize:  b.PartySize,
		Contact: commands.ContactInput{
			Name:  b.ContactName,
			Email: b.ContactEmail,
			Phone: b.ContactPhone,
		},
		SpecialRequests: b.SpecialRequests,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ResourceID: b.ResourceID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
		PartySize:  b.PartySize,
		ContactInfo: reqdto.ContactInfoRequest{
			Name:  b.ContactName,
			Email: b.ContactEmail,
			Phone: b.ContactPhone,
		},
		SpecialRequests: b.SpecialRequests,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return &queries.BookingView{
		ID:            uuid.New(),
		Reference:     "BKTEST0001",
		ResourceID:    b.ResourceID,
		ResourceName:  "Harbour View Double",
		CustomerID:    b.CustomerID,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		Nights:        3,
		PartySize:     b.PartySize,
		UnitRate:      "120.00",
		TotalAmount:   "720.00",
		Currency:      "USD",
		Status:        b.Status.String(),
		PaymentStatus: b.PaymentStatus.String(),
		Contact: queries.ContactView{
			Name:  b.ContactName,
			Email: b.ContactEmail,
			Phone: b.ContactPhone,
		},
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
