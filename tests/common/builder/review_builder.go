//go:build unit || e2e

package builder

import (
	"time"

	reqdto "booking-engine/internal/handler/dto/request"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	BookingID  uuid.UUID
	ResourceID uuid.UUID
	CustomerID uuid.UUID
	Ratings    map[string]int
	Content    string
	Status     string
	CreatedAt  time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		BookingID:  uuid.New(),
		ResourceID: uuid.New(),
		CustomerID: uuid.New(),
		Ratings: map[string]int{
			"cleanliness": 5,
			"location":    4,
			"value":       4,
		},
		Content:   "Quiet room, friendly staff and a great view.",
		Status:    "pending",
		CreatedAt: time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC),
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

func (r *ReviewBuilder) ForBooking(id uuid.UUID) *ReviewBuilder {
	r.BookingID = id
	return r
}

func (r *ReviewBuilder) WithRatings(ratings map[string]int) *ReviewBuilder {
	r.Ratings = ratings
	return r
}

func (r *ReviewBuilder) BuildCommand() commands.SubmitReviewRequest {
	return commands.SubmitReviewRequest{
		BookingID: r.BookingID,
		Ratings:   copyRatings(r.Ratings),
		Content:   r.Content,
	}
}

func (r *ReviewBuilder) BuildSubmitRequestDTO() reqdto.SubmitReviewRequest {
	return reqdto.SubmitReviewRequest{
		BookingID: r.BookingID,
		Ratings:   copyRatings(r.Ratings),
		Content:   r.Content,
	}
}

func (r *ReviewBuilder) BuildView() *queries.ReviewView {
	bookingID := r.BookingID
	return &queries.ReviewView{
		ID:            uuid.New(),
		ResourceID:    r.ResourceID,
		BookingID:     &bookingID,
		CustomerID:    r.CustomerID,
		Ratings:       copyRatings(r.Ratings),
		OverallRating: 4.33,
		Content:       r.Content,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.CreatedAt,
	}
}

func copyRatings(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
