//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/pricing"
	"booking-engine/internal/domain/user"
	"booking-engine/internal/infra/memory"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/usecase/commands"
	"booking-engine/tests/common/authtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

type fakeGateway struct {
	mu       sync.Mutex
	err      error
	requests []commands.RefundRequest
}

func (g *fakeGateway) RequestRefund(ctx context.Context, req commands.RefundRequest) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, req)
	return g.err
}

type fixture struct {
	store        *memory.Store
	clock        *clock.MockClock
	gateway      *fakeGateway
	bookings     commands.BookingCommands
	resources    commands.ResourceCommands
	reviews      commands.ReviewCommands
	availability commands.AvailabilityCommands

	customer user.Actor
	operator user.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	settings := commands.Settings{OperationTimeout: time.Second, RefundTimeout: time.Second}
	store := memory.NewStore()
	clk := clock.NewMockClock(start)
	gateway := &fakeGateway{}

	return &fixture{
		store:   store,
		clock:   clk,
		gateway: gateway,
		bookings: commands.NewBookingCommands(
			store,
			pricing.NewDefaultCalculator(),
			booking.NewStateMachine(booking.DefaultConfirmationPolicy(), nil),
			gateway,
			clk,
			settings,
			logger,
		),
		resources:    commands.NewResourceCommands(store, clk, settings, logger),
		reviews:      commands.NewReviewCommands(store, clk, settings, logger),
		availability: commands.NewAvailabilityCommands(store, logger),
		customer:     authtest.Customer(),
		operator:     authtest.Operator(),
	}
}

func (f *fixture) createResource(t *testing.T, capacity int) uuid.UUID {
	t.Helper()
	id, err := f.resources.CreateResource(context.Background(), commands.CreateResourceRequest{
		Name:         "Harbor View Double",
		Kind:         "hotel_room",
		Capacity:     capacity,
		MaxPartySize: 4,
		UnitRate:     "120.00",
		Currency:     "USD",
		Timezone:     "UTC",
	}, f.operator)
	require.NoError(t, err)
	return id
}

func bookingRequest(resourceID uuid.UUID, startDate, endDate string) commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ResourceID: resourceID,
		StartDate:  startDate,
		EndDate:    endDate,
		PartySize:  2,
		Contact: commands.ContactInput{
			Name:  "Alex Kim",
			Email: "alex.kim@example.com",
		},
	}
}

func (f *fixture) book(t *testing.T, actor user.Actor, resourceID uuid.UUID, startDate, endDate string) uuid.UUID {
	t.Helper()
	res, err := f.bookings.CreateBooking(context.Background(), bookingRequest(resourceID, startDate, endDate), actor)
	require.NoError(t, err)
	return res.BookingID
}

func (f *fixture) loadBooking(t *testing.T, id uuid.UUID) *booking.Booking {
	t.Helper()
	b, err := f.store.Reads().BookingByID(context.Background(), id)
	require.NoError(t, err)
	return b
}

// confirmPaid takes a booking through payment and confirmation.
func (f *fixture) confirmPaid(t *testing.T, id uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.bookings.UpdatePaymentStatus(ctx, id, booking.PaymentPaid, f.operator))
	_, err := f.bookings.UpdateStatus(ctx, commands.UpdateStatusRequest{BookingID: id, Target: booking.StatusConfirmed}, f.operator)
	require.NoError(t, err)
}

func (f *fixture) complete(t *testing.T, id uuid.UUID) {
	t.Helper()
	f.confirmPaid(t, id)
	_, err := f.bookings.UpdateStatus(context.Background(), commands.UpdateStatusRequest{BookingID: id, Target: booking.StatusCompleted}, f.operator)
	require.NoError(t, err)
}

func (f *fixture) pendingEventNames() []string {
	var names []string
	for _, env := range f.store.Pending() {
		names = append(names, env.Name)
	}
	return names
}
