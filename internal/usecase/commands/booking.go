package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"booking-engine/internal/domain/availability"
	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/pricing"
	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/domain/shared/money"
	"booking-engine/internal/domain/user"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const idempotencyTTL = 24 * time.Hour

type ContactInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CreateBookingRequest struct {
	ResourceID      uuid.UUID    `json:"resourceId"`
	StartDate       string       `json:"startDate"`
	EndDate         string       `json:"endDate"`
	PartySize       int          `json:"partySize"`
	Contact         ContactInput `json:"contactInfo"`
	SpecialRequests string       `json:"specialRequests"`
	IdempotencyKey  string       `json:"-"`
}

type CreateBookingResult struct {
	BookingID uuid.UUID
	Replayed  bool
}

type UpdateStatusRequest struct {
	BookingID uuid.UUID
	Target    booking.Status
	Reason    string
}

type UpdateStatusResult struct {
	BookingID    uuid.UUID
	From         booking.Status
	To           booking.Status
	RefundAmount *money.Money
	RefundIssued bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest, actor user.Actor) (*CreateBookingResult, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest, actor user.Actor) (*UpdateStatusResult, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string, actor user.Actor) (*UpdateStatusResult, error)
	UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, target booking.PaymentStatus, actor user.Actor) error
}

type bookingCommandsImpl struct {
	uow      shared.UnitOfWork
	calc     pricing.Calculator
	machine  *booking.StateMachine
	gateway  PaymentGateway
	clock    clock.Clock
	settings Settings
	logger   *slog.Logger
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	calc pricing.Calculator,
	machine *booking.StateMachine,
	gateway PaymentGateway,
	clk clock.Clock,
	settings Settings,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:      uow,
		calc:     calc,
		machine:  machine,
		gateway:  gateway,
		clock:    clk,
		settings: settings,
		logger:   logger,
	}
}

func (uc *bookingCommandsImpl) CreateBooking(ctx context.Context, req CreateBookingRequest, actor user.Actor) (*CreateBookingResult, error) {
	ctx, cancel := shared.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()

	res, err := uc.createBooking(ctx, req, actor)
	return res, shared.MarkTimeout(ctx, err)
}

type validatedBooking struct {
	dateRange daterange.DateRange
	contact   booking.ContactInfo
	requests  booking.SpecialRequests
}

func (uc *bookingCommandsImpl) validate(req CreateBookingRequest) (*validatedBooking, error) {
	var (
		fields   []errs.FieldError
		badRange bool
	)
	collect := func(err error) {
		fields = append(fields, errs.FieldDetails(err)...)
		badRange = badRange || errs.Is(err, errs.ErrInvalidRange)
	}

	if req.ResourceID == uuid.Nil {
		fields = append(fields, errs.FieldError{Field: "resourceId", Reason: "is required"})
	}
	if req.PartySize < 1 {
		fields = append(fields, errs.FieldError{Field: "partySize", Reason: "must be at least 1"})
	}

	v := &validatedBooking{}
	var err error
	if v.dateRange, err = daterange.Parse(req.StartDate, req.EndDate); err != nil {
		collect(err)
	}
	if v.contact, err = booking.NewContactInfo(req.Contact.Name, req.Contact.Email, req.Contact.Phone); err != nil {
		collect(err)
	}
	if v.requests, err = booking.NewSpecialRequests(req.SpecialRequests); err != nil {
		collect(err)
	}

	if len(fields) > 0 {
		verr := errs.NewValidation(fields...)
		if badRange {
			verr = errs.Mark(verr, errs.ErrInvalidRange)
		}
		return nil, verr
	}
	return v, nil
}

func (uc *bookingCommandsImpl) createBooking(ctx context.Context, req CreateBookingRequest, actor user.Actor) (*CreateBookingResult, error) {
	v, err := uc.validate(req)
	if err != nil {
		return nil, err
	}

	reads := uc.uow.Reads()
	res, err := reads.ResourceByID(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}
	if err = res.ValidatePartySize(req.PartySize); err != nil {
		return nil, err
	}

	quote, err := uc.calc.Quote(res.UnitRate(), req.PartySize, v.dateRange)
	if err != nil {
		return nil, err
	}

	var requestHash string
	if req.IdempotencyKey != "" {
		requestHash = hashRequest(req)
		replayed, idemErr := uc.checkIdempotency(ctx, reads, req.IdempotencyKey, actor.ID, requestHash)
		if idemErr != nil || replayed != nil {
			return replayed, idemErr
		}
	}

	check, err := shared.CheckAvailability(ctx, reads, res.ID(), v.dateRange, 1)
	if err != nil {
		return nil, err
	}
	if !check.Available {
		return nil, errs.Category(errs.ErrUnavailable, "no capacity left for "+v.dateRange.String())
	}

	now := uc.clock.Now()
	b := booking.NewBooking(booking.NewParams{
		ResourceID:      res.ID(),
		CustomerID:      actor.ID,
		DateRange:       v.dateRange,
		Quote:           quote,
		Contact:         v.contact,
		SpecialRequests: v.requests,
	}, now)

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockResource(ctx, res.ID()); err != nil {
			return err
		}
		if err := recheckCapacity(ctx, tx, res.Capacity(), b); err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}
		// the index record references the booking row, so it goes second
		if err := tx.Availability().Insert(ctx, availability.NewRecord(b.ResourceID(), b.ID(), b.DateRange(), 1)); err != nil {
			return err
		}
		if err := tx.Outbox().Append(ctx, b.CreatedEvent()); err != nil {
			return err
		}
		if req.IdempotencyKey == "" {
			return nil
		}
		return tx.Idempotency().Insert(ctx, shared.IdempotencyRecord{
			Key:         req.IdempotencyKey,
			CustomerID:  actor.ID,
			RequestHash: requestHash,
			BookingID:   b.ID(),
			CreatedAt:   now,
			ExpiresAt:   now.Add(idempotencyTTL),
		})
	})
	if err != nil {
		return nil, err
	}

	uc.logger.InfoContext(ctx, "booking created",
		"booking_id", b.ID().String(),
		"resource_id", res.ID().String(),
		"range", v.dateRange.String(),
		"total", b.TotalAmount().String())

	return &CreateBookingResult{BookingID: b.ID()}, nil
}

// recheckCapacity runs under the resource lock. Losing a race here is a
// conflict, never silently retried.
func recheckCapacity(ctx context.Context, tx shared.Tx, capacity int, b *booking.Booking) error {
	records, err := tx.Availability().ListActive(ctx, b.ResourceID(), b.DateRange())
	if err != nil {
		return err
	}
	if !availability.CheckAvailable(records, capacity, b.DateRange(), 1) {
		return errs.Category(errs.ErrConflict, "the last unit was taken by a concurrent booking")
	}
	return nil
}

func (uc *bookingCommandsImpl) checkIdempotency(ctx context.Context, reads shared.Reads, key string, customerID uuid.UUID, requestHash string) (*CreateBookingResult, error) {
	rec, err := reads.IdempotencyByKey(ctx, key, customerID)
	if err != nil {
		if errs.Is(err, errs.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if rec.IsExpired(uc.clock.Now()) {
		return nil, nil
	}
	if rec.RequestHash != requestHash {
		return nil, errs.Category(errs.ErrConflict, "idempotency key was used for a different request")
	}
	return &CreateBookingResult{BookingID: rec.BookingID, Replayed: true}, nil
}

func hashRequest(req CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (uc *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, reason string, actor user.Actor) (*UpdateStatusResult, error) {
	return uc.UpdateStatus(ctx, UpdateStatusRequest{BookingID: bookingID, Target: booking.StatusCancelled, Reason: reason}, actor)
}

func (uc *bookingCommandsImpl) UpdateStatus(ctx context.Context, req UpdateStatusRequest, actor user.Actor) (*UpdateStatusResult, error) {
	opCtx, cancel := shared.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()

	var (
		b          *booking.Booking
		transition *booking.Transition
	)
	err := uc.uow.Within(opCtx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		b, err = tx.Bookings().FindByID(ctx, req.BookingID)
		if err != nil {
			return err
		}
		if err = authorizeTransition(actor, b, req.Target); err != nil {
			return err
		}
		res, err := tx.Resources().FindByID(ctx, b.ResourceID())
		if err != nil {
			return err
		}

		expected := b.Status()
		transition, err = uc.machine.Apply(b, booking.TransitionRequest{
			Target:   req.Target,
			Reason:   req.Reason,
			Now:      uc.clock.Now(),
			StartsAt: res.StartsAt(b.DateRange().Start()),
		})
		if err != nil {
			return err
		}

		if transition.IndexState != availability.StateActive {
			if err = tx.LockResource(ctx, b.ResourceID()); err != nil {
				return err
			}
		}
		if err = tx.Bookings().UpdateStatus(ctx, b, expected); err != nil {
			return err
		}
		if transition.IndexState != availability.StateActive {
			// releasing an already released record is a no-op
			if _, err = tx.Availability().SetState(ctx, b.ID(), transition.IndexState); err != nil {
				return err
			}
		}
		return tx.Outbox().Append(ctx, transition.Event)
	})
	if err != nil {
		return nil, shared.MarkTimeout(opCtx, err)
	}

	result := &UpdateStatusResult{
		BookingID:    b.ID(),
		From:         transition.From,
		To:           transition.To,
		RefundAmount: transition.Refund,
	}
	if transition.Refund != nil && transition.Refund.IsPositive() {
		result.RefundIssued = uc.issueRefund(ctx, b, *transition.Refund)
	}
	return result, nil
}

// issueRefund runs after the cancellation is durable. A gateway failure is
// logged and left for an operator; the cancellation stands either way.
func (uc *bookingCommandsImpl) issueRefund(ctx context.Context, b *booking.Booking, amount money.Money) bool {
	refundCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.settings.RefundTimeout)
	defer cancel()

	err := uc.gateway.RequestRefund(refundCtx, RefundRequest{BookingID: b.ID(), Reference: b.Reference(), Amount: amount})
	if err != nil {
		uc.logger.WarnContext(ctx, "refund request failed",
			"booking_id", b.ID().String(),
			"amount", amount.String(),
			"error", err.Error())
		return false
	}

	err = uc.uow.Within(refundCtx, func(ctx context.Context, tx shared.Tx) error {
		return uc.applyPayment(ctx, tx, b.ID(), booking.PaymentRefunded)
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "refund issued but payment status not updated",
			"booking_id", b.ID().String(),
			"error", err.Error())
		return false
	}
	return true
}

func (uc *bookingCommandsImpl) UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, target booking.PaymentStatus, actor user.Actor) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	ctx, cancel := shared.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return uc.applyPayment(ctx, tx, bookingID, target)
	})
	return shared.MarkTimeout(ctx, err)
}

func (uc *bookingCommandsImpl) applyPayment(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, target booking.PaymentStatus) error {
	b, err := tx.Bookings().FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	expected := b.PaymentStatus()
	evt, err := uc.machine.ApplyPayment(b, target, uc.clock.Now())
	if err != nil {
		return err
	}
	if err = tx.Bookings().UpdatePayment(ctx, b, expected); err != nil {
		return err
	}
	return tx.Outbox().Append(ctx, *evt)
}
