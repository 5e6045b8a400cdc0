package shared

import (
	"time"

	"github.com/google/uuid"
)

type IdempotencyRecord struct {
	Key         string
	CustomerID  uuid.UUID
	RequestHash string
	BookingID   uuid.UUID
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

func (r *IdempotencyRecord) IsExpired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

type AvailabilityResult struct {
	ResourceID     uuid.UUID
	Capacity       int
	RequiredUnits  int
	RemainingUnits int
	Available      bool
}
