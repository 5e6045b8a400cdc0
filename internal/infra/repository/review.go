package repository

import (
	"context"
	"log/slog"
	"time"

	"booking-engine/internal/domain/review"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/db"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/pkg/pgconv"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const reviewColumns = `id, resource_id, booking_id, customer_id, ratings, overall_rating::float8, content, status,
	moderation_reason, likes, dislikes, reply_author_id, reply_text, reply_created_at, reply_updated_at,
	created_at, updated_at`

type ReviewRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewReviewRepository(dbtx db.DBTX, logger *slog.Logger) *ReviewRepository {
	return &ReviewRepository{db: dbtx, logger: logger}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *review.Review) error {
	s := rev.Snapshot()
	ratings, err := encodeRatings(s.Ratings)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode ratings", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO reviews (
			id, resource_id, booking_id, customer_id, ratings, overall_rating, content, status,
			moderation_reason, likes, dislikes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		s.ID, s.ResourceID, pgconv.UUIDPtrToPgtype(s.BookingID), s.CustomerID, ratings, s.Overall,
		s.Content, s.Status.String(), pgconv.StringPtrToPgtype(s.ModerationReason),
		s.Likes, s.Dislikes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		kind := infra.KindOf(err)
		wrapped := infra.WrapRepoErr(r.logger, kind, "failed to create review", err)
		if kind == infra.KindDuplicateKey {
			return errs.Mark(wrapped, errs.ErrDuplicateReview)
		}
		return wrapped
	}
	return nil
}

// FindByID locks the row for the rest of the transaction so counter and
// status updates never lose a concurrent write.
func (r *ReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1 FOR UPDATE`, id)
	rev, err := scanReview(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "review not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to get review", err)
	}
	return rev, nil
}

func (r *ReviewRepository) Update(ctx context.Context, rev *review.Review) error {
	s := rev.Snapshot()
	var (
		replyAuthor               pgtype.UUID
		replyText                 pgtype.Text
		replyCreated, replyEdited pgtype.Timestamptz
	)
	if s.Reply != nil {
		replyAuthor = pgconv.UUIDPtrToPgtype(&s.Reply.AuthorID)
		replyText = pgtype.Text{String: s.Reply.Text, Valid: true}
		replyCreated = pgconv.TimeToPgtype(s.Reply.CreatedAt)
		replyEdited = pgconv.TimeToPgtype(s.Reply.UpdatedAt)
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE reviews
		SET status = $2, moderation_reason = $3, likes = $4, dislikes = $5,
			reply_author_id = $6, reply_text = $7, reply_created_at = $8, reply_updated_at = $9,
			updated_at = $10
		WHERE id = $1`,
		s.ID, s.Status.String(), pgconv.StringPtrToPgtype(s.ModerationReason), s.Likes, s.Dislikes,
		replyAuthor, replyText, replyCreated, replyEdited, s.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to update review", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "review not found", nil)
	}
	return nil
}

func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reviews WHERE booking_id = $1)`, bookingID).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to check review existence", err)
	}
	return exists, nil
}

func (r *ReviewRepository) ListByResource(ctx context.Context, resourceID uuid.UUID, status review.Status) ([]*review.Review, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+reviewColumns+`
		FROM reviews
		WHERE resource_id = $1 AND status = $2
		ORDER BY created_at, id`, resourceID, status.String())
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to list reviews", err)
	}
	defer rows.Close()

	var out []*review.Review
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan review", err)
		}
		out = append(out, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to list reviews", err)
	}
	return out, nil
}

func scanReview(row rowScanner) (*review.Review, error) {
	var (
		s                         review.Snapshot
		bookingID, replyAuthor    pgtype.UUID
		ratings                   []byte
		status                    string
		reason, replyText         pgtype.Text
		replyCreated, replyEdited pgtype.Timestamptz
		createdAt, updatedAt      time.Time
	)
	err := row.Scan(
		&s.ID, &s.ResourceID, &bookingID, &s.CustomerID, &ratings, &s.Overall, &s.Content, &status,
		&reason, &s.Likes, &s.Dislikes, &replyAuthor, &replyText, &replyCreated, &replyEdited,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if s.Ratings, err = decodeRatings(ratings); err != nil {
		return nil, err
	}
	s.BookingID = pgconv.UUIDPtrFromPgtype(bookingID)
	s.Status = review.Status(status)
	s.ModerationReason = pgconv.StringPtrFromPgtype(reason)
	if replyText.Valid {
		s.Reply = &review.Reply{
			AuthorID:  uuid.UUID(replyAuthor.Bytes),
			Text:      replyText.String,
			CreatedAt: replyCreated.Time,
			UpdatedAt: replyEdited.Time,
		}
	}
	s.CreatedAt = createdAt
	s.UpdatedAt = updatedAt
	return review.Reconstruct(s), nil
}

func encodeRatings(in map[review.Category]int) ([]byte, error) {
	out := make(map[string]int, len(in))
	for c, v := range in {
		out[string(c)] = v
	}
	return json.Marshal(out)
}

func decodeRatings(data []byte) (map[review.Category]int, error) {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	out := make(map[review.Category]int, len(raw))
	for k, v := range raw {
		out[review.Category(k)] = v
	}
	return out, nil
}
