package shared

import (
	"context"
	"time"

	"booking-engine/internal/domain/availability"
	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/resource"
	"booking-engine/internal/domain/review"
	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/domain/shared/event"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: one write transaction; fn's error rolls everything back. Never retried.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: point reads outside a transaction for validation and pre-checks
	Reads() Reads
}

type Tx interface {
	// LockResource serializes writers touching one resource's availability
	// until the transaction ends.
	LockResource(ctx context.Context, resourceID uuid.UUID) error

	Resources() ResourceRepository
	Bookings() BookingRepository
	Availability() AvailabilityRepository
	Reviews() ReviewRepository
	Votes() VoteRepository
	RatingSummaries() RatingSummaryRepository
	Outbox() OutboxRepository
	Idempotency() IdempotencyRepository
}

type Reads interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	ResourceIDs(ctx context.Context) ([]uuid.UUID, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ActiveAvailability(ctx context.Context, resourceID uuid.UUID, window daterange.DateRange) ([]availability.Record, error)
	IdempotencyByKey(ctx context.Context, key string, customerID uuid.UUID) (*IdempotencyRecord, error)
}

type ResourceRepository interface {
	Create(ctx context.Context, r *resource.Resource) error
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	Update(ctx context.Context, r *resource.Resource) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// UpdateStatus writes b only if the stored status still equals expected.
	UpdateStatus(ctx context.Context, b *booking.Booking, expected booking.Status) error
	// UpdatePayment writes b only if the stored payment status still equals expected.
	UpdatePayment(ctx context.Context, b *booking.Booking, expected booking.PaymentStatus) error
	ListActiveByResource(ctx context.Context, resourceID uuid.UUID) ([]*booking.Booking, error)
}

type AvailabilityRepository interface {
	ListActive(ctx context.Context, resourceID uuid.UUID, window daterange.DateRange) ([]availability.Record, error)
	Insert(ctx context.Context, rec availability.Record) error
	// SetState moves an active record; it reports false when the record was
	// already inactive or missing.
	SetState(ctx context.Context, bookingID uuid.UUID, state availability.State) (bool, error)
	// DeleteByResource drops the active records only; history stays.
	DeleteByResource(ctx context.Context, resourceID uuid.UUID) error
}

type ReviewRepository interface {
	Create(ctx context.Context, r *review.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error)
	Update(ctx context.Context, r *review.Review) error
	ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID, status review.Status) ([]*review.Review, error)
}

type VoteRepository interface {
	Find(ctx context.Context, reviewID, voterID uuid.UUID) (*review.VoteAction, error)
	Upsert(ctx context.Context, reviewID, voterID uuid.UUID, action review.VoteAction, at time.Time) error
}

type RatingSummaryRepository interface {
	Upsert(ctx context.Context, s *review.RatingSummary) error
}

type OutboxRepository interface {
	Append(ctx context.Context, events ...event.Event) error
}

type IdempotencyRepository interface {
	// Insert fails with a conflict when the key is already taken for the customer.
	Insert(ctx context.Context, rec IdempotencyRecord) error
}
