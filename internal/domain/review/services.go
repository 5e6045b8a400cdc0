package review

import (
	"booking-engine/internal/domain/booking"
	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

// CheckEligibility allows a review only for the caller's own completed booking.
// A nil booking means the referenced booking does not exist.
func CheckEligibility(b *booking.Booking, callerID uuid.UUID) error {
	switch {
	case b == nil:
		return errs.Category(errs.ErrNotEligible, "booking does not exist")
	case !b.IsOwnedBy(callerID):
		return errs.Category(errs.ErrNotEligible, "booking belongs to another customer")
	case b.Status() != booking.StatusCompleted:
		return errs.Category(errs.ErrNotEligible, "booking is not completed")
	default:
		return nil
	}
}
