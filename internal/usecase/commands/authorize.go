package commands

import (
	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/user"
	"booking-engine/internal/pkg/errs"
)

func requireStaff(actor user.Actor) error {
	if !actor.IsStaff() {
		return errs.Category(errs.ErrAuthorization, "operator or admin role required")
	}
	return nil
}

// authorizeTransition: staff may request any transition; a customer may only
// cancel their own booking.
func authorizeTransition(actor user.Actor, b *booking.Booking, target booking.Status) error {
	if actor.IsStaff() {
		return nil
	}
	if !b.IsOwnedBy(actor.ID) {
		return errs.Category(errs.ErrAuthorization, "booking belongs to another customer")
	}
	if target != booking.StatusCancelled {
		return errs.Category(errs.ErrAuthorization, "customers may only cancel their bookings")
	}
	return nil
}
