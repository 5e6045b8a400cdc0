package commands

import (
	"context"
	"log/slog"

	domreview "booking-engine/internal/domain/review"
	"booking-engine/internal/domain/user"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type SubmitReviewRequest struct {
	BookingID uuid.UUID
	Ratings   map[string]int
	Content   string
}

type SubmitReviewResult struct {
	ReviewID uuid.UUID
}

type ModerateReviewResult struct {
	ReviewID uuid.UUID
	From     domreview.Status
	To       domreview.Status
}

type ReviewCommands interface {
	SubmitReview(ctx context.Context, req SubmitReviewRequest, actor user.Actor) (*SubmitReviewResult, error)
	ModerateReview(ctx context.Context, reviewID uuid.UUID, action domreview.ModerationAction, reason string, actor user.Actor) (*ModerateReviewResult, error)
	Rate(ctx context.Context, reviewID uuid.UUID, action domreview.VoteAction, actor user.Actor) error
	PostReply(ctx context.Context, reviewID uuid.UUID, text string, actor user.Actor) error
	EditReply(ctx context.Context, reviewID uuid.UUID, text string, actor user.Actor) error
	RecomputeSummary(ctx context.Context, resourceID uuid.UUID, actor user.Actor) (*domreview.RatingSummary, error)
}

type reviewCommandsImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	settings Settings
	logger   *slog.Logger
}

func NewReviewCommands(uow shared.UnitOfWork, clk clock.Clock, settings Settings, logger *slog.Logger) ReviewCommands {
	return &reviewCommandsImpl{uow: uow, clock: clk, settings: settings, logger: logger}
}

func (uc *reviewCommandsImpl) SubmitReview(ctx context.Context, req SubmitReviewRequest, actor user.Actor) (*SubmitReviewResult, error) {
	if req.BookingID == uuid.Nil {
		return nil, errs.Validation("bookingId", "is required")
	}
	ratings, err := domreview.NewRatings(req.Ratings)
	if err != nil {
		return nil, err
	}
	content, err := domreview.NewContent(req.Content)
	if err != nil {
		return nil, err
	}

	ctx, cancel := shared.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()

	var rev *domreview.Review
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().FindByID(ctx, req.BookingID)
		if err != nil && !errs.Is(err, errs.ErrNotFound) {
			return err
		}
		if err = domreview.CheckEligibility(b, actor.ID); err != nil {
			return err
		}

		exists, err := tx.Reviews().ExistsForBooking(ctx, b.ID())
		if err != nil {
			return err
		}
		if exists {
			return errs.Category(errs.ErrDuplicateReview, "booking already has a review")
		}

		bookingID := b.ID()
		rev = domreview.NewReview(domreview.NewParams{
			ResourceID: b.ResourceID(),
			BookingID:  &bookingID,
			CustomerID: actor.ID,
			Ratings:    ratings,
			Content:    content,
		}, uc.clock.Now())
		if err = tx.Reviews().Create(ctx, rev); err != nil {
			return err
		}
		return tx.Outbox().Append(ctx, rev.SubmittedEvent())
	})
	if err != nil {
		return nil, shared.MarkTimeout(ctx, err)
	}

	uc.logger.InfoContext(ctx, "review submitted",
		"review_id", rev.ID().String(),
		"resource_id", rev.ResourceID().String(),
		"overall", rev.Overall())
	return &SubmitReviewResult{ReviewID: rev.ID()}, nil
}

func (uc *reviewCommandsImpl) ModerateReview(ctx context.Context, reviewID uuid.UUID, action domreview.ModerationAction, reason string, actor user.Actor) (*ModerateReviewResult, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	ctx, cancel := shared.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()

	var m *domreview.Moderation
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rev, err := tx.Reviews().FindByID(ctx, reviewID)
		if err != nil {
			return err
		}
		m, err = rev.Moderate(action, reason, uc.clock.Now())
		if err != nil {
			return err
		}
		if err = tx.Reviews().Update(ctx, rev); err != nil {
			return err
		}
		if err = tx.Outbox().Append(ctx, m.Event); err != nil {
			return err
		}
		if !m.AffectsSummary {
			return nil
		}
		_, err = uc.recompute(ctx, tx, rev.ResourceID())
		return err
	})
	if err != nil {
		return nil, shared.MarkTimeout(ctx, err)
	}
	return &ModerateReviewResult{ReviewID: reviewID, From: m.From, To: m.To}, nil
}

// recompute rebuilds the summary from a full recount of approved reviews.
// The resource lock keeps two recounts from interleaving their upserts.
func (uc *reviewCommandsImpl) recompute(ctx context.Context, tx shared.Tx, resourceID uuid.UUID) (*domreview.RatingSummary, error) {
	if err := tx.LockResource(ctx, resourceID); err != nil {
		return nil, err
	}
	approved, err := tx.Reviews().ListByResource(ctx, resourceID, domreview.StatusApproved)
	if err != nil {
		return nil, err
	}
	summary := domreview.Recount(resourceID, approved, uc.clock.Now())
	if err = tx.RatingSummaries().Upsert(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

func (uc *reviewCommandsImpl) RecomputeSummary(ctx context.Context, resourceID uuid.UUID, actor user.Actor) (*domreview.RatingSummary, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}
	ctx, cancel := shared.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()

	var summary *domreview.RatingSummary
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Resources().FindByID(ctx, resourceID); err != nil {
			return err
		}
		var err error
		summary, err = uc.recompute(ctx, tx, resourceID)
		return err
	})
	if err != nil {
		return nil, shared.MarkTimeout(ctx, err)
	}
	return summary, nil
}

func (uc *reviewCommandsImpl) Rate(ctx context.Context, reviewID uuid.UUID, action domreview.VoteAction, actor user.Actor) error {
	if !action.IsValid() {
		return errs.Validation("action", "must be like or dislike")
	}
	ctx, cancel := shared.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rev, err := tx.Reviews().FindByID(ctx, reviewID)
		if err != nil {
			return err
		}
		if rev.Status() != domreview.StatusApproved && !actor.IsStaff() {
			return errs.Category(errs.ErrNotFound, "review not found")
		}

		previous, err := tx.Votes().Find(ctx, reviewID, actor.ID)
		if err != nil {
			return err
		}
		now := uc.clock.Now()
		changed, err := rev.ApplyVote(previous, action, now)
		if err != nil || !changed {
			return err
		}
		if err = tx.Votes().Upsert(ctx, reviewID, actor.ID, action, now); err != nil {
			return err
		}
		return tx.Reviews().Update(ctx, rev)
	})
	return shared.MarkTimeout(ctx, err)
}

func (uc *reviewCommandsImpl) PostReply(ctx context.Context, reviewID uuid.UUID, text string, actor user.Actor) error {
	return uc.reply(ctx, reviewID, actor, func(rev *domreview.Review) error {
		return rev.PostReply(actor.ID, text, uc.clock.Now())
	})
}

func (uc *reviewCommandsImpl) EditReply(ctx context.Context, reviewID uuid.UUID, text string, actor user.Actor) error {
	return uc.reply(ctx, reviewID, actor, func(rev *domreview.Review) error {
		return rev.EditReply(actor.ID, text, uc.clock.Now())
	})
}

func (uc *reviewCommandsImpl) reply(ctx context.Context, reviewID uuid.UUID, actor user.Actor, mutate func(*domreview.Review) error) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	ctx, cancel := shared.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		rev, err := tx.Reviews().FindByID(ctx, reviewID)
		if err != nil {
			return err
		}
		if err = mutate(rev); err != nil {
			return err
		}
		return tx.Reviews().Update(ctx, rev)
	})
	return shared.MarkTimeout(ctx, err)
}
