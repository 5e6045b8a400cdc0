// Package memory is a single-process store behind the same unit-of-work
// ports as Postgres. One writer transaction runs at a time; readers see only
// committed state.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"booking-engine/internal/domain/availability"
	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/resource"
	"booking-engine/internal/domain/review"
	"booking-engine/internal/domain/shared/event"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type resourceRow struct {
	id        uuid.UUID
	params    resource.Params
	createdAt time.Time
	updatedAt time.Time
}

func (r resourceRow) entity() *resource.Resource {
	return resource.Reconstruct(r.id, r.params, r.createdAt, r.updatedAt)
}

func newResourceRow(res *resource.Resource) resourceRow {
	return resourceRow{
		id: res.ID(),
		params: resource.Params{
			Name:         res.Name(),
			Kind:         res.Kind(),
			Capacity:     res.Capacity(),
			MaxPartySize: res.MaxPartySize(),
			UnitRate:     res.UnitRate(),
			Timezone:     res.Timezone(),
		},
		createdAt: res.CreatedAt(),
		updatedAt: res.UpdatedAt(),
	}
}

type voteKey struct {
	reviewID uuid.UUID
	voterID  uuid.UUID
}

type idempotencyKey struct {
	key        string
	customerID uuid.UUID
}

type outboxRow struct {
	env       event.Envelope
	published bool
}

// state holds value copies only, so cloning the maps isolates a transaction.
type state struct {
	resources    map[uuid.UUID]resourceRow
	bookings     map[uuid.UUID]booking.Snapshot
	availability map[uuid.UUID]availability.Record
	reviews      map[uuid.UUID]review.Snapshot
	votes        map[voteKey]review.VoteAction
	summaries    map[uuid.UUID]review.RatingSummary
	idempotency  map[idempotencyKey]shared.IdempotencyRecord
	outbox       []outboxRow
	nextOutboxID int64
}

func newState() *state {
	return &state{
		resources:    map[uuid.UUID]resourceRow{},
		bookings:     map[uuid.UUID]booking.Snapshot{},
		availability: map[uuid.UUID]availability.Record{},
		reviews:      map[uuid.UUID]review.Snapshot{},
		votes:        map[voteKey]review.VoteAction{},
		summaries:    map[uuid.UUID]review.RatingSummary{},
		idempotency:  map[idempotencyKey]shared.IdempotencyRecord{},
	}
}

func (s *state) clone() *state {
	return &state{
		resources:    maps.Clone(s.resources),
		bookings:     maps.Clone(s.bookings),
		availability: maps.Clone(s.availability),
		reviews:      maps.Clone(s.reviews),
		votes:        maps.Clone(s.votes),
		summaries:    maps.Clone(s.summaries),
		idempotency:  maps.Clone(s.idempotency),
		outbox:       append([]outboxRow(nil), s.outbox...),
		nextOutboxID: s.nextOutboxID,
	}
}

type Store struct {
	writer chan struct{}

	mu        sync.RWMutex
	committed *state
}

func NewStore() *Store {
	return &Store{
		writer:    make(chan struct{}, 1),
		committed: newState(),
	}
}

// Within stages fn's writes on a private copy and publishes the copy only if
// fn succeeds and the context is still live.
func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	select {
	case s.writer <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.writer }()

	s.mu.RLock()
	staged := s.committed.clone()
	s.mu.RUnlock()

	if err := fn(ctx, &memTx{st: staged}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.committed = staged
	s.mu.Unlock()
	return nil
}

func (s *Store) Reads() shared.Reads {
	return &memReads{store: s}
}

func (s *Store) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed
}
