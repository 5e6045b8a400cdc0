package response

import (
	"time"

	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReplyResponse struct {
	AuthorID  uuid.UUID `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReviewResponse struct {
	ID               uuid.UUID      `json:"id"`
	ResourceID       uuid.UUID      `json:"resource_id"`
	BookingID        *uuid.UUID     `json:"booking_id,omitempty"`
	CustomerID       uuid.UUID      `json:"customer_id"`
	Ratings          map[string]int `json:"ratings"`
	OverallRating    float64        `json:"overall_rating"`
	Content          string         `json:"content"`
	Status           string         `json:"status"`
	ModerationReason *string        `json:"moderation_reason,omitempty"`
	Likes            int            `json:"likes"`
	Dislikes         int            `json:"dislikes"`
	Reply            *ReplyResponse `json:"reply,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func FromReviewView(v *queries.ReviewView) *ReviewResponse {
	return copyView[ReviewResponse](v)
}

func FromReviewList(items []*queries.ReviewView, next *queries.Cursor) *Page[ReviewResponse] {
	page := &Page[ReviewResponse]{Items: copyList[ReviewResponse](items)}
	if next != nil {
		page.NextCursor = next.After
	}
	return page
}

type RatingSummaryResponse struct {
	ResourceID       uuid.UUID          `json:"resource_id"`
	AverageRating    float64            `json:"average_rating"`
	TotalReviews     int                `json:"total_reviews"`
	Distribution     map[int]int        `json:"rating_distribution"`
	CategoryAverages map[string]float64 `json:"category_averages"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

func FromRatingSummaryView(v *queries.RatingSummaryView) *RatingSummaryResponse {
	return copyView[RatingSummaryResponse](v)
}
