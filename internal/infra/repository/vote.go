package repository

import (
	"context"
	"log/slog"
	"time"

	"booking-engine/internal/domain/review"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/db"
	"booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// VoteRepository is the per-voter ledger behind review like/dislike counters.
type VoteRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewVoteRepository(dbtx db.DBTX, logger *slog.Logger) *VoteRepository {
	return &VoteRepository{db: dbtx, logger: logger}
}

func (r *VoteRepository) Find(ctx context.Context, reviewID, voterID uuid.UUID) (*review.VoteAction, error) {
	var action string
	err := r.db.QueryRow(ctx, `SELECT action FROM review_votes WHERE review_id = $1 AND voter_id = $2`, reviewID, voterID).Scan(&action)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to get vote", err)
	}
	v := review.VoteAction(action)
	return &v, nil
}

func (r *VoteRepository) Upsert(ctx context.Context, reviewID, voterID uuid.UUID, action review.VoteAction, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO review_votes (review_id, voter_id, action, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (review_id, voter_id) DO UPDATE SET action = EXCLUDED.action, updated_at = EXCLUDED.updated_at`,
		reviewID, voterID, string(action), at,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to record vote", err)
	}
	return nil
}
