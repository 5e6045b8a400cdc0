package review

import (
	"time"

	"github.com/google/uuid"
)

type ReviewSubmitted struct {
	ReviewID      uuid.UUID  `json:"reviewId"`
	ResourceID    uuid.UUID  `json:"resourceId"`
	BookingID     *uuid.UUID `json:"bookingId,omitempty"`
	CustomerID    uuid.UUID  `json:"customerId"`
	OverallRating float64    `json:"overallRating"`
	At            time.Time  `json:"timestamp"`
}

func (e ReviewSubmitted) EventName() string     { return "review.submitted" }
func (e ReviewSubmitted) AggregateID() string   { return e.ReviewID.String() }
func (e ReviewSubmitted) OccurredAt() time.Time { return e.At }

type ReviewStatusChanged struct {
	ReviewID   uuid.UUID `json:"reviewId"`
	ResourceID uuid.UUID `json:"resourceId"`
	From       Status    `json:"from"`
	To         Status    `json:"to"`
	Reason     *string   `json:"reason,omitempty"`
	At         time.Time `json:"timestamp"`
}

func (e ReviewStatusChanged) EventName() string     { return "review.status_changed" }
func (e ReviewStatusChanged) AggregateID() string   { return e.ReviewID.String() }
func (e ReviewStatusChanged) OccurredAt() time.Time { return e.At }

func (r *Review) SubmittedEvent() ReviewSubmitted {
	return ReviewSubmitted{
		ReviewID:      r.id,
		ResourceID:    r.resourceID,
		BookingID:     r.bookingID,
		CustomerID:    r.customerID,
		OverallRating: r.overall,
		At:            r.createdAt,
	}
}
