package readstore

import (
	"context"
	"log/slog"
	"time"

	"booking-engine/internal/infra"
	"booking-engine/internal/infra/db"
	"booking-engine/internal/pkg/pgconv"
	"booking-engine/internal/usecase/queries"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reviewViewColumns = `id, resource_id, booking_id, customer_id, ratings, overall_rating::float8, content, status,
	moderation_reason, likes, dislikes, reply_author_id, reply_text, reply_created_at, reply_updated_at,
	created_at, updated_at`

type ReviewReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewReviewReadStore(dbtx db.DBTX, logger *slog.Logger) *ReviewReadStore {
	return &ReviewReadStore{db: dbtx, logger: logger}
}

func (r *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reviewViewColumns+` FROM reviews WHERE id = $1`, id)
	v, err := scanReviewView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "review not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to get review view", err)
	}
	return v, nil
}

func (r *ReviewReadStore) FindApprovedByResource(ctx context.Context, resourceID uuid.UUID, after *queries.Keyset, limit int32) ([]*queries.ReviewView, error) {
	const base = `SELECT ` + reviewViewColumns + ` FROM reviews WHERE resource_id = $1 AND status = 'approved'`

	sql := base + ` ORDER BY created_at DESC, id DESC LIMIT $2`
	args := []any{resourceID, limit}
	if after != nil {
		sql = base + ` AND (created_at, id) < ($3, $4) ORDER BY created_at DESC, id DESC LIMIT $2`
		args = append(args, after.CreatedAt, after.ID)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to list reviews", err)
	}
	defer rows.Close()

	var out []*queries.ReviewView
	for rows.Next() {
		v, err := scanReviewView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan review", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to list reviews", err)
	}
	return out, nil
}

func (r *ReviewReadStore) GetRatingSummary(ctx context.Context, resourceID uuid.UUID) (*queries.RatingSummaryView, error) {
	v := &queries.RatingSummaryView{ResourceID: resourceID}
	var dist, cats []byte
	err := r.db.QueryRow(ctx, `
		SELECT average_rating::float8, total_reviews, distribution, category_averages, updated_at
		FROM resource_rating_summaries WHERE resource_id = $1`, resourceID,
	).Scan(&v.AverageRating, &v.TotalReviews, &dist, &cats, &v.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			v.Distribution = map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
			v.CategoryAverages = map[string]float64{}
			return v, nil
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to get rating summary", err)
	}
	if err = json.Unmarshal(dist, &v.Distribution); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode distribution", err)
	}
	if err = json.Unmarshal(cats, &v.CategoryAverages); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode category averages", err)
	}
	return v, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReviewView(row rowScanner) (*queries.ReviewView, error) {
	var (
		v                         queries.ReviewView
		bookingID, replyAuthor    pgtype.UUID
		ratings                   []byte
		reason, replyText         pgtype.Text
		replyCreated, replyEdited pgtype.Timestamptz
		createdAt, updatedAt      time.Time
	)
	err := row.Scan(
		&v.ID, &v.ResourceID, &bookingID, &v.CustomerID, &ratings, &v.OverallRating, &v.Content, &v.Status,
		&reason, &v.Likes, &v.Dislikes, &replyAuthor, &replyText, &replyCreated, &replyEdited,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(ratings, &v.Ratings); err != nil {
		return nil, err
	}
	v.BookingID = pgconv.UUIDPtrFromPgtype(bookingID)
	v.ModerationReason = pgconv.StringPtrFromPgtype(reason)
	if replyText.Valid {
		v.Reply = &queries.ReplyView{
			AuthorID:  uuid.UUID(replyAuthor.Bytes),
			Text:      replyText.String,
			CreatedAt: replyCreated.Time,
			UpdatedAt: replyEdited.Time,
		}
	}
	v.CreatedAt = createdAt
	v.UpdatedAt = updatedAt
	return &v, nil
}
