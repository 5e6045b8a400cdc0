package repository

import (
	"context"
	"log/slog"
	"time"

	"booking-engine/internal/domain/shared/event"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/db"
)

type OutboxRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewOutboxRepository(dbtx db.DBTX, logger *slog.Logger) *OutboxRepository {
	return &OutboxRepository{db: dbtx, logger: logger}
}

func (r *OutboxRepository) Append(ctx context.Context, events ...event.Event) error {
	for _, e := range events {
		env, err := event.Encode(e)
		if err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode event "+e.EventName(), err)
		}
		_, err = r.db.Exec(ctx, `
			INSERT INTO outbox_events (event_name, aggregate_id, payload, occurred_at)
			VALUES ($1, $2, $3, $4)`,
			env.Name, env.AggregateID, env.Payload, env.OccurredAt,
		)
		if err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to append outbox event", err)
		}
	}
	return nil
}

// ClaimBatch locks up to limit unpublished events. Concurrent relays skip
// rows another relay holds.
func (r *OutboxRepository) ClaimBatch(ctx context.Context, limit int) ([]event.Envelope, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, event_name, aggregate_id, payload, occurred_at
		FROM outbox_events
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`, limit)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to claim outbox events", err)
	}
	defer rows.Close()

	var out []event.Envelope
	for rows.Next() {
		var m event.Envelope
		if err := rows.Scan(&m.ID, &m.Name, &m.AggregateID, &m.Payload, &m.OccurredAt); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan outbox event", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to claim outbox events", err)
	}
	return out, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.db.Exec(ctx, `UPDATE outbox_events SET published_at = $2 WHERE id = ANY($1)`, ids, at)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to mark outbox events published", err)
	}
	return nil
}
