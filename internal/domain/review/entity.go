package review

import (
	"strings"
	"time"

	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type Reply struct {
	AuthorID  uuid.UUID
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Review struct {
	id               uuid.UUID
	resourceID       uuid.UUID
	bookingID        *uuid.UUID
	customerID       uuid.UUID
	ratings          Ratings
	overall          float64
	content          Content
	status           Status
	moderationReason *string
	likes            int
	dislikes         int
	reply            *Reply
	createdAt        time.Time
	updatedAt        time.Time
}

type NewParams struct {
	ResourceID uuid.UUID
	BookingID  *uuid.UUID
	CustomerID uuid.UUID
	Ratings    Ratings
	Content    Content
}

// NewReview enters moderation as pending; it does not count toward the
// resource summary until approved.
func NewReview(p NewParams, now time.Time) *Review {
	return &Review{
		id:         uuid.New(),
		resourceID: p.ResourceID,
		bookingID:  p.BookingID,
		customerID: p.CustomerID,
		ratings:    p.Ratings,
		overall:    p.Ratings.Overall(),
		content:    p.Content,
		status:     StatusPending,
		createdAt:  now,
		updatedAt:  now,
	}
}

type Snapshot struct {
	ID               uuid.UUID
	ResourceID       uuid.UUID
	BookingID        *uuid.UUID
	CustomerID       uuid.UUID
	Ratings          map[Category]int
	Overall          float64
	Content          string
	Status           Status
	ModerationReason *string
	Likes            int
	Dislikes         int
	Reply            *Reply
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func Reconstruct(s Snapshot) *Review {
	return &Review{
		id:               s.ID,
		resourceID:       s.ResourceID,
		bookingID:        s.BookingID,
		customerID:       s.CustomerID,
		ratings:          Ratings{values: s.Ratings},
		overall:          s.Overall,
		content:          Content{text: s.Content},
		status:           s.Status,
		moderationReason: s.ModerationReason,
		likes:            s.Likes,
		dislikes:         s.Dislikes,
		reply:            s.Reply,
		createdAt:        s.CreatedAt,
		updatedAt:        s.UpdatedAt,
	}
}

func (r *Review) Snapshot() Snapshot {
	return Snapshot{
		ID:               r.id,
		ResourceID:       r.resourceID,
		BookingID:        r.bookingID,
		CustomerID:       r.customerID,
		Ratings:          r.ratings.Map(),
		Overall:          r.overall,
		Content:          r.content.String(),
		Status:           r.status,
		ModerationReason: r.moderationReason,
		Likes:            r.likes,
		Dislikes:         r.dislikes,
		Reply:            r.reply,
		CreatedAt:        r.createdAt,
		UpdatedAt:        r.updatedAt,
	}
}

type Moderation struct {
	From Status
	To   Status
	// AffectsSummary is true when the review enters or leaves approved.
	AffectsSummary bool
	Event          ReviewStatusChanged
}

func (r *Review) Moderate(action ModerationAction, reason string, now time.Time) (*Moderation, error) {
	target, ok := action.Target()
	if !ok {
		return nil, errs.Validation("action", "must be approve, reject or flag")
	}
	reason = strings.TrimSpace(reason)
	if target != StatusApproved && reason == "" {
		return nil, errs.Validation("reason", "is required to reject or flag")
	}
	if len(reason) > MaxReasonLength {
		return nil, errs.Validation("reason", "exceeds 500 characters")
	}
	from := r.status
	if !from.CanTransitionTo(target) {
		return nil, errs.Mark(
			errs.Newf("cannot move review from %s to %s", from, target),
			errs.ErrIllegalTransition,
		)
	}

	r.status = target
	if reason != "" {
		r.moderationReason = &reason
	} else {
		r.moderationReason = nil
	}
	r.touch(now)

	return &Moderation{
		From:           from,
		To:             target,
		AffectsSummary: from == StatusApproved || target == StatusApproved,
		Event: ReviewStatusChanged{
			ReviewID:   r.id,
			ResourceID: r.resourceID,
			From:       from,
			To:         target,
			Reason:     r.moderationReason,
			At:         r.updatedAt,
		},
	}, nil
}

// ApplyVote moves the counters for one voter. previous is the voter's
// existing ledger entry, nil if none. Repeating the same vote changes nothing.
func (r *Review) ApplyVote(previous *VoteAction, next VoteAction, now time.Time) (bool, error) {
	if !next.IsValid() {
		return false, errs.Validation("action", "must be like or dislike")
	}
	if previous != nil && *previous == next {
		return false, nil
	}
	if previous != nil {
		r.adjust(*previous, -1)
	}
	r.adjust(next, 1)
	r.touch(now)
	return true, nil
}

func (r *Review) adjust(v VoteAction, delta int) {
	switch v {
	case VoteLike:
		r.likes = max(r.likes+delta, 0)
	case VoteDislike:
		r.dislikes = max(r.dislikes+delta, 0)
	}
}

func (r *Review) PostReply(authorID uuid.UUID, text string, now time.Time) error {
	if r.reply != nil {
		return errs.Mark(errs.New("review already has a reply; edit it instead"), errs.ErrConflict)
	}
	t, err := normalizeReply(text)
	if err != nil {
		return err
	}
	r.reply = &Reply{AuthorID: authorID, Text: t, CreatedAt: now, UpdatedAt: now}
	r.touch(now)
	return nil
}

func (r *Review) EditReply(authorID uuid.UUID, text string, now time.Time) error {
	if r.reply == nil {
		return errs.Mark(errs.New("review has no reply to edit"), errs.ErrNotFound)
	}
	t, err := normalizeReply(text)
	if err != nil {
		return err
	}
	r.reply = &Reply{AuthorID: authorID, Text: t, CreatedAt: r.reply.CreatedAt, UpdatedAt: now}
	r.touch(now)
	return nil
}

func (r *Review) touch(now time.Time) {
	if now.After(r.updatedAt) {
		r.updatedAt = now
	}
}

func (r *Review) ID() uuid.UUID             { return r.id }
func (r *Review) ResourceID() uuid.UUID     { return r.resourceID }
func (r *Review) BookingID() *uuid.UUID     { return r.bookingID }
func (r *Review) CustomerID() uuid.UUID     { return r.customerID }
func (r *Review) Ratings() Ratings          { return r.ratings }
func (r *Review) Overall() float64          { return r.overall }
func (r *Review) Content() Content          { return r.content }
func (r *Review) Status() Status            { return r.status }
func (r *Review) ModerationReason() *string { return r.moderationReason }
func (r *Review) Likes() int                { return r.likes }
func (r *Review) Dislikes() int             { return r.dislikes }
func (r *Review) Reply() *Reply             { return r.reply }
func (r *Review) CreatedAt() time.Time      { return r.createdAt }
func (r *Review) UpdatedAt() time.Time      { return r.updatedAt }
