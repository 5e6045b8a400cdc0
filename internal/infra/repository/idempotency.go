package repository

import (
	"context"
	"log/slog"

	"booking-engine/internal/infra"
	"booking-engine/internal/infra/db"
	"booking-engine/internal/pkg/pgconv"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewIdempotencyRepository(dbtx db.DBTX, logger *slog.Logger) *IdempotencyRepository {
	return &IdempotencyRepository{db: dbtx, logger: logger}
}

// Insert takes over an expired key; a live key held by another request is a conflict.
func (r *IdempotencyRepository) Insert(ctx context.Context, rec shared.IdempotencyRecord) error {
	tag, err := r.db.Exec(ctx, `
		INSERT INTO idempotency_keys (key, customer_id, request_hash, booking_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key, customer_id) DO UPDATE
		SET request_hash = EXCLUDED.request_hash, booking_id = EXCLUDED.booking_id,
			created_at = EXCLUDED.created_at, expires_at = EXCLUDED.expires_at
		WHERE idempotency_keys.expires_at <= EXCLUDED.created_at`,
		rec.Key, rec.CustomerID, rec.RequestHash, rec.BookingID, rec.CreatedAt, rec.ExpiresAt,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to store idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "idempotency key already in use", nil)
	}
	return nil
}

func (r *IdempotencyRepository) FindByKey(ctx context.Context, key string, customerID uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec := &shared.IdempotencyRecord{Key: key, CustomerID: customerID}
	err := r.db.QueryRow(ctx, `
		SELECT request_hash, booking_id, created_at, expires_at
		FROM idempotency_keys WHERE key = $1 AND customer_id = $2`, key, customerID,
	).Scan(&rec.RequestHash, &rec.BookingID, &rec.CreatedAt, &rec.ExpiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "idempotency key not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to get idempotency key", err)
	}
	return rec, nil
}
