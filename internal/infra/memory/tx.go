package memory

import (
	"context"
	"sort"
	"time"

	"booking-engine/internal/domain/availability"
	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/resource"
	"booking-engine/internal/domain/review"
	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/domain/shared/event"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

func notFound(what string) error {
	return errs.Category(errs.ErrNotFound, what+" not found")
}

func conflict(msg string) error {
	return errs.Category(errs.ErrConflict, msg)
}

type memTx struct {
	st *state
}

// LockResource is a no-op: the store already admits a single writer.
func (t *memTx) LockResource(ctx context.Context, _ uuid.UUID) error {
	return ctx.Err()
}

func (t *memTx) Resources() shared.ResourceRepository        { return resourceRepo{t.st} }
func (t *memTx) Bookings() shared.BookingRepository          { return bookingRepo{t.st} }
func (t *memTx) Availability() shared.AvailabilityRepository { return availabilityRepo{t.st} }
func (t *memTx) Reviews() shared.ReviewRepository            { return reviewRepo{t.st} }
func (t *memTx) Votes() shared.VoteRepository                { return voteRepo{t.st} }
func (t *memTx) RatingSummaries() shared.RatingSummaryRepository {
	return summaryRepo{t.st}
}
func (t *memTx) Outbox() shared.OutboxRepository           { return outboxRepo{t.st} }
func (t *memTx) Idempotency() shared.IdempotencyRepository { return idempotencyRepo{t.st} }

type resourceRepo struct{ st *state }

func (r resourceRepo) Create(ctx context.Context, res *resource.Resource) error {
	if _, ok := r.st.resources[res.ID()]; ok {
		return conflict("resource already exists")
	}
	r.st.resources[res.ID()] = newResourceRow(res)
	return nil
}

func (r resourceRepo) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row, ok := r.st.resources[id]
	if !ok {
		return nil, notFound("resource")
	}
	return row.entity(), nil
}

func (r resourceRepo) Update(ctx context.Context, res *resource.Resource) error {
	if _, ok := r.st.resources[res.ID()]; !ok {
		return notFound("resource")
	}
	r.st.resources[res.ID()] = newResourceRow(res)
	return nil
}

type bookingRepo struct{ st *state }

func (r bookingRepo) Create(ctx context.Context, b *booking.Booking) error {
	if _, ok := r.st.resources[b.ResourceID()]; !ok {
		return notFound("resource")
	}
	if _, ok := r.st.bookings[b.ID()]; ok {
		return conflict("booking already exists")
	}
	r.st.bookings[b.ID()] = b.Snapshot()
	return nil
}

func (r bookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	s, ok := r.st.bookings[id]
	if !ok {
		return nil, notFound("booking")
	}
	return booking.Reconstruct(s), nil
}

func (r bookingRepo) UpdateStatus(ctx context.Context, b *booking.Booking, expected booking.Status) error {
	cur, ok := r.st.bookings[b.ID()]
	if !ok {
		return notFound("booking")
	}
	if cur.Status != expected {
		return conflict("booking status changed concurrently")
	}
	next := b.Snapshot()
	cur.Status = next.Status
	cur.CancellationReason = next.CancellationReason
	cur.RefundAmount = next.RefundAmount
	cur.UpdatedAt = next.UpdatedAt
	r.st.bookings[b.ID()] = cur
	return nil
}

func (r bookingRepo) UpdatePayment(ctx context.Context, b *booking.Booking, expected booking.PaymentStatus) error {
	cur, ok := r.st.bookings[b.ID()]
	if !ok {
		return notFound("booking")
	}
	if cur.PaymentStatus != expected {
		return conflict("payment status changed concurrently")
	}
	cur.PaymentStatus = b.PaymentStatus()
	cur.UpdatedAt = b.UpdatedAt()
	r.st.bookings[b.ID()] = cur
	return nil
}

func (r bookingRepo) ListActiveByResource(ctx context.Context, resourceID uuid.UUID) ([]*booking.Booking, error) {
	var out []*booking.Booking
	for _, s := range r.st.bookings {
		if s.ResourceID == resourceID && s.Status.IsActive() {
			out = append(out, booking.Reconstruct(s))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

type availabilityRepo struct{ st *state }

func (r availabilityRepo) ListActive(ctx context.Context, resourceID uuid.UUID, window daterange.DateRange) ([]availability.Record, error) {
	return activeRecords(r.st, resourceID, window), nil
}

func activeRecords(st *state, resourceID uuid.UUID, window daterange.DateRange) []availability.Record {
	var out []availability.Record
	for _, rec := range st.availability {
		if rec.ResourceID == resourceID && rec.IsActive() && rec.Range.Overlaps(window) {
			out = append(out, rec)
		}
	}
	return out
}

func (r availabilityRepo) Insert(ctx context.Context, rec availability.Record) error {
	if _, ok := r.st.bookings[rec.BookingID]; !ok {
		return errs.Newf("availability record references unknown booking %s", rec.BookingID)
	}
	r.st.availability[rec.BookingID] = rec
	return nil
}

func (r availabilityRepo) SetState(ctx context.Context, bookingID uuid.UUID, state availability.State) (bool, error) {
	rec, ok := r.st.availability[bookingID]
	if !ok || !rec.IsActive() {
		return false, nil
	}
	rec.State = state
	r.st.availability[bookingID] = rec
	return true, nil
}

func (r availabilityRepo) DeleteByResource(ctx context.Context, resourceID uuid.UUID) error {
	for id, rec := range r.st.availability {
		if rec.ResourceID == resourceID && rec.IsActive() {
			delete(r.st.availability, id)
		}
	}
	return nil
}

type reviewRepo struct{ st *state }

func (r reviewRepo) Create(ctx context.Context, rev *review.Review) error {
	if bid := rev.BookingID(); bid != nil {
		if exists, _ := r.ExistsForBooking(ctx, *bid); exists {
			return errs.Mark(conflict("booking already has a review"), errs.ErrDuplicateReview)
		}
	}
	r.st.reviews[rev.ID()] = rev.Snapshot()
	return nil
}

func (r reviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	s, ok := r.st.reviews[id]
	if !ok {
		return nil, notFound("review")
	}
	return review.Reconstruct(s), nil
}

func (r reviewRepo) Update(ctx context.Context, rev *review.Review) error {
	if _, ok := r.st.reviews[rev.ID()]; !ok {
		return notFound("review")
	}
	r.st.reviews[rev.ID()] = rev.Snapshot()
	return nil
}

func (r reviewRepo) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	for _, s := range r.st.reviews {
		if s.BookingID != nil && *s.BookingID == bookingID {
			return true, nil
		}
	}
	return false, nil
}

func (r reviewRepo) ListByResource(ctx context.Context, resourceID uuid.UUID, status review.Status) ([]*review.Review, error) {
	var out []*review.Review
	for _, s := range r.st.reviews {
		if s.ResourceID == resourceID && s.Status == status {
			out = append(out, review.Reconstruct(s))
		}
	}
	return out, nil
}

type voteRepo struct{ st *state }

func (r voteRepo) Find(ctx context.Context, reviewID, voterID uuid.UUID) (*review.VoteAction, error) {
	v, ok := r.st.votes[voteKey{reviewID, voterID}]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r voteRepo) Upsert(ctx context.Context, reviewID, voterID uuid.UUID, action review.VoteAction, _ time.Time) error {
	r.st.votes[voteKey{reviewID, voterID}] = action
	return nil
}

type summaryRepo struct{ st *state }

func (r summaryRepo) Upsert(ctx context.Context, s *review.RatingSummary) error {
	r.st.summaries[s.ResourceID] = *s
	return nil
}

type outboxRepo struct{ st *state }

func (r outboxRepo) Append(ctx context.Context, events ...event.Event) error {
	for _, e := range events {
		env, err := event.Encode(e)
		if err != nil {
			return errs.Wrap(err, "encode event "+e.EventName())
		}
		r.st.nextOutboxID++
		env.ID = r.st.nextOutboxID
		r.st.outbox = append(r.st.outbox, outboxRow{env: env})
	}
	return nil
}

type idempotencyRepo struct{ st *state }

func (r idempotencyRepo) Insert(ctx context.Context, rec shared.IdempotencyRecord) error {
	k := idempotencyKey{rec.Key, rec.CustomerID}
	if cur, ok := r.st.idempotency[k]; ok && !cur.IsExpired(rec.CreatedAt) {
		return conflict("idempotency key already in use")
	}
	r.st.idempotency[k] = rec
	return nil
}

type memReads struct {
	store *Store
}

func (r *memReads) ResourceByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return resourceRepo{r.store.snapshot()}.FindByID(ctx, id)
}

func (r *memReads) ResourceIDs(ctx context.Context) ([]uuid.UUID, error) {
	st := r.store.snapshot()
	ids := make([]uuid.UUID, 0, len(st.resources))
	for id := range st.resources {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}

func (r *memReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return bookingRepo{r.store.snapshot()}.FindByID(ctx, id)
}

func (r *memReads) ActiveAvailability(ctx context.Context, resourceID uuid.UUID, window daterange.DateRange) ([]availability.Record, error) {
	return activeRecords(r.store.snapshot(), resourceID, window), nil
}

func (r *memReads) IdempotencyByKey(ctx context.Context, key string, customerID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.store.snapshot().idempotency[idempotencyKey{key, customerID}]
	if !ok {
		return nil, notFound("idempotency key")
	}
	return &rec, nil
}
