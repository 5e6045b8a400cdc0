package repository

import (
	"context"
	"log/slog"

	"booking-engine/internal/domain/review"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/db"

	"github.com/goccy/go-json"
)

type RatingSummaryRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewRatingSummaryRepository(dbtx db.DBTX, logger *slog.Logger) *RatingSummaryRepository {
	return &RatingSummaryRepository{db: dbtx, logger: logger}
}

// Upsert replaces the stored summary wholesale; it is never patched.
func (r *RatingSummaryRepository) Upsert(ctx context.Context, s *review.RatingSummary) error {
	dist, err := json.Marshal(s.Distribution)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode distribution", err)
	}
	cats, err := json.Marshal(s.CategoryAverages)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode category averages", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO resource_rating_summaries (resource_id, average_rating, total_reviews, distribution, category_averages, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (resource_id) DO UPDATE
		SET average_rating = EXCLUDED.average_rating, total_reviews = EXCLUDED.total_reviews,
			distribution = EXCLUDED.distribution, category_averages = EXCLUDED.category_averages,
			updated_at = EXCLUDED.updated_at`,
		s.ResourceID, s.AverageRating, s.TotalReviews, dist, cats, s.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to upsert rating summary", err)
	}
	return nil
}
