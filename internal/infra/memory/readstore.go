package memory

import (
	"context"
	"sort"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/review"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

// BookingReadStore, ResourceReadStore and ReviewReadStore serve the query
// side from committed state.

type BookingReadStore struct{ store *Store }

func NewBookingReadStore(s *Store) *BookingReadStore { return &BookingReadStore{store: s} }

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	st := r.store.snapshot()
	s, ok := st.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return queries.NewBookingView(booking.Reconstruct(s), st.resources[s.ResourceID].params.Name), nil
}

func (r *BookingReadStore) FindByCustomer(ctx context.Context, customerID uuid.UUID, after *queries.Keyset, limit int32) ([]*queries.BookingListItem, error) {
	st := r.store.snapshot()
	var items []*queries.BookingListItem
	for _, s := range st.bookings {
		if s.CustomerID != customerID || !afterKeyset(s.CreatedAt, s.ID, after) {
			continue
		}
		items = append(items, queries.NewBookingListItem(booking.Reconstruct(s), st.resources[s.ResourceID].params.Name))
	}
	sort.Slice(items, func(i, j int) bool {
		return newerFirst(items[i].CreatedAt, items[i].ID, items[j].CreatedAt, items[j].ID)
	})
	return truncate(items, limit), nil
}

type ResourceReadStore struct{ store *Store }

func NewResourceReadStore(s *Store) *ResourceReadStore { return &ResourceReadStore{store: s} }

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	row, ok := r.store.snapshot().resources[id]
	if !ok {
		return nil, notFound("resource")
	}
	return queries.NewResourceView(row.entity()), nil
}

type ReviewReadStore struct{ store *Store }

func NewReviewReadStore(s *Store) *ReviewReadStore { return &ReviewReadStore{store: s} }

func (r *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	s, ok := r.store.snapshot().reviews[id]
	if !ok {
		return nil, notFound("review")
	}
	return queries.NewReviewView(review.Reconstruct(s)), nil
}

func (r *ReviewReadStore) FindApprovedByResource(ctx context.Context, resourceID uuid.UUID, after *queries.Keyset, limit int32) ([]*queries.ReviewView, error) {
	var items []*queries.ReviewView
	for _, s := range r.store.snapshot().reviews {
		if s.ResourceID != resourceID || s.Status != review.StatusApproved || !afterKeyset(s.CreatedAt, s.ID, after) {
			continue
		}
		items = append(items, queries.NewReviewView(review.Reconstruct(s)))
	}
	sort.Slice(items, func(i, j int) bool {
		return newerFirst(items[i].CreatedAt, items[i].ID, items[j].CreatedAt, items[j].ID)
	})
	return truncate(items, limit), nil
}

func (r *ReviewReadStore) GetRatingSummary(ctx context.Context, resourceID uuid.UUID) (*queries.RatingSummaryView, error) {
	s, ok := r.store.snapshot().summaries[resourceID]
	if !ok {
		return queries.NewRatingSummaryView(review.EmptySummary(resourceID, time.Time{})), nil
	}
	return queries.NewRatingSummaryView(&s), nil
}

// Keyset comparisons run at microsecond precision, the precision cursors carry.
func afterKeyset(createdAt time.Time, id uuid.UUID, after *queries.Keyset) bool {
	if after == nil {
		return true
	}
	return newerFirst(after.CreatedAt, after.ID, createdAt, id)
}

func newerFirst(ta time.Time, ida uuid.UUID, tb time.Time, idb uuid.UUID) bool {
	a, b := ta.UnixMicro(), tb.UnixMicro()
	if a != b {
		return a > b
	}
	return ida.String() > idb.String()
}

func truncate[T any](items []*T, limit int32) []*T {
	if limit > 0 && len(items) > int(limit) {
		return items[:limit]
	}
	return items
}
