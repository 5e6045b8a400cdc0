package queries

import (
	"time"

	"github.com/google/uuid"
)

type ContactView struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// BookingView is the full read model of one booking.
type BookingView struct {
	ID                 uuid.UUID   `json:"id"`
	Reference          string      `json:"reference"`
	ResourceID         uuid.UUID   `json:"resource_id"`
	ResourceName       string      `json:"resource_name"`
	CustomerID         uuid.UUID   `json:"customer_id"`
	StartDate          string      `json:"start_date"`
	EndDate            string      `json:"end_date"`
	Nights             int         `json:"nights"`
	PartySize          int         `json:"party_size"`
	UnitRate           string      `json:"unit_rate"`
	TotalAmount        string      `json:"total_amount"`
	Currency           string      `json:"currency"`
	Status             string      `json:"status"`
	PaymentStatus      string      `json:"payment_status"`
	Contact            ContactView `json:"contact_info"`
	SpecialRequests    string      `json:"special_requests,omitempty"`
	CancellationReason *string     `json:"cancellation_reason,omitempty"`
	RefundAmount       *string     `json:"refund_amount,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

type BookingListItem struct {
	ID            uuid.UUID `json:"id"`
	Reference     string    `json:"reference"`
	ResourceID    uuid.UUID `json:"resource_id"`
	ResourceName  string    `json:"resource_name"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   string    `json:"total_amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

type ResourceView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	Capacity     int       `json:"capacity"`
	MaxPartySize int       `json:"max_party_size"`
	UnitRate     string    `json:"unit_rate"`
	Currency     string    `json:"currency"`
	Timezone     string    `json:"timezone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type AvailabilityView struct {
	ResourceID     uuid.UUID `json:"resource_id"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Capacity       int       `json:"capacity"`
	RequiredUnits  int       `json:"required_units"`
	RemainingUnits int       `json:"remaining_units"`
	Available      bool      `json:"available"`
}

type ReplyView struct {
	AuthorID  uuid.UUID `json:"author_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReviewView struct {
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
	Reply            *ReplyView     `json:"reply,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type RatingSummaryView struct {
	ResourceID       uuid.UUID          `json:"resource_id"`
	AverageRating    float64            `json:"average_rating"`
	TotalReviews     int                `json:"total_reviews"`
	Distribution     map[int]int        `json:"rating_distribution"`
	CategoryAverages map[string]float64 `json:"category_averages"`
	UpdatedAt        time.Time          `json:"updated_at"`
}
