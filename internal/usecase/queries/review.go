package queries

import (
	"context"
	"time"

	"booking-engine/internal/domain/review"
	"booking-engine/internal/domain/user"
	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReviewReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	FindApprovedByResource(ctx context.Context, resourceID uuid.UUID, after *Keyset, limit int32) ([]*ReviewView, error)
	// GetRatingSummary returns an empty summary for resources without one.
	GetRatingSummary(ctx context.Context, resourceID uuid.UUID) (*RatingSummaryView, error)
}

type ReviewQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actor user.Actor) (*ReviewView, error)
	ListByResource(ctx context.Context, resourceID uuid.UUID, cursor *Cursor, limit int) ([]*ReviewView, *Cursor, error)
	GetRatingSummary(ctx context.Context, resourceID uuid.UUID) (*RatingSummaryView, error)
}

type reviewQueriesImpl struct {
	store ReviewReadStore
}

func NewReviewQueries(store ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{store: store}
}

// GetByID shows unapproved reviews only to staff and to their author.
func (q *reviewQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor user.Actor) (*ReviewView, error) {
	rv, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rv.Status != review.StatusApproved.String() && !actor.IsStaff() && rv.CustomerID != actor.ID {
		return nil, errs.Category(errs.ErrNotFound, "review not found")
	}
	return rv, nil
}

func (q *reviewQueriesImpl) ListByResource(ctx context.Context, resourceID uuid.UUID, cursor *Cursor, limit int) ([]*ReviewView, *Cursor, error) {
	limit = ValidateLimit(limit)
	after, err := decodeKeyset(cursor)
	if err != nil {
		return nil, nil, err
	}
	rows, err := q.store.FindApprovedByResource(ctx, resourceID, after, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}
	rows, next := paginate(rows, limit, func(rv *ReviewView) (time.Time, uuid.UUID) {
		return rv.CreatedAt, rv.ID
	})
	return rows, next, nil
}

func (q *reviewQueriesImpl) GetRatingSummary(ctx context.Context, resourceID uuid.UUID) (*RatingSummaryView, error) {
	return q.store.GetRatingSummary(ctx, resourceID)
}
