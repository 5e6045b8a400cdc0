package memory

import (
	"context"

	"booking-engine/internal/domain/shared/event"
)

// Drain implements the outbox relay source over the in-memory log.
func (s *Store) Drain(ctx context.Context, limit int, publish func(ctx context.Context, batch []event.Envelope) ([]int64, error)) (int, error) {
	select {
	case s.writer <- struct{}{}:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	defer func() { <-s.writer }()

	s.mu.RLock()
	staged := s.committed.clone()
	s.mu.RUnlock()

	var batch []event.Envelope
	for _, row := range staged.outbox {
		if len(batch) == limit {
			break
		}
		if !row.published {
			batch = append(batch, row.env)
		}
	}
	if len(batch) == 0 {
		return 0, nil
	}

	delivered, err := publish(ctx, batch)
	if len(delivered) > 0 {
		done := make(map[int64]bool, len(delivered))
		for _, id := range delivered {
			done[id] = true
		}
		for i := range staged.outbox {
			if done[staged.outbox[i].env.ID] {
				staged.outbox[i].published = true
			}
		}
		s.mu.Lock()
		s.committed = staged
		s.mu.Unlock()
	}
	return len(delivered), err
}

// Pending lists unpublished events, oldest first.
func (s *Store) Pending() []event.Envelope {
	var out []event.Envelope
	for _, row := range s.snapshot().outbox {
		if !row.published {
			out = append(out, row.env)
		}
	}
	return out
}
