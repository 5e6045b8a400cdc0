package queries

import (
	"context"
	"time"

	"booking-engine/internal/domain/user"
	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// FindByCustomer returns up to limit rows, newest first, strictly after
	// the keyset when one is given.
	FindByCustomer(ctx context.Context, customerID uuid.UUID, after *Keyset, limit int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actor user.Actor) (*BookingView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, actor user.Actor, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
}

func NewBookingQueries(store BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{store: store}
}

// GetByID hides other customers' bookings behind not found.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor user.Actor) (*BookingView, error) {
	v, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsStaff() && v.CustomerID != actor.ID {
		return nil, errs.Category(errs.ErrNotFound, "booking not found")
	}
	return v, nil
}

func (q *bookingQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, actor user.Actor, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	if !actor.IsStaff() && customerID != actor.ID {
		return nil, nil, errs.Category(errs.ErrAuthorization, "cannot list another customer's bookings")
	}
	limit = ValidateLimit(limit)
	after, err := decodeKeyset(cursor)
	if err != nil {
		return nil, nil, err
	}
	rows, err := q.store.FindByCustomer(ctx, customerID, after, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}
	rows, next := paginate(rows, limit, func(it *BookingListItem) (time.Time, uuid.UUID) {
		return it.CreatedAt, it.ID
	})
	return rows, next, nil
}
