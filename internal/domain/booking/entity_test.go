//go:build unit

package booking_test

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/pricing"
	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/domain/shared/money"
	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	r, err := daterange.Parse("2026-03-10", "2026-03-13")
	require.NoError(t, err)
	quote, err := pricing.NewDefaultCalculator().Quote(money.New(decimal.RequireFromString("120"), "USD"), 2, r)
	require.NoError(t, err)
	contact, err := booking.NewContactInfo("Alex Kim", "alex.kim@example.com", "")
	require.NoError(t, err)

	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	b := booking.NewBooking(booking.NewParams{
		ResourceID: uuid.New(),
		CustomerID: uuid.New(),
		DateRange:  r,
		Quote:      quote,
		Contact:    contact,
	}, now)

	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.True(t, strings.HasPrefix(b.Reference(), "BK"))
	assert.Equal(t, booking.StatusPending, b.Status())
	assert.Equal(t, booking.PaymentUnpaid, b.PaymentStatus())
	assert.Equal(t, 3, b.Nights())
	assert.Equal(t, "720.00", b.TotalAmount().Amount().StringFixed(2))
	assert.Equal(t, now, b.CreatedAt())
	assert.Equal(t, now, b.UpdatedAt())

	ev := b.CreatedEvent()
	assert.Equal(t, "booking.created", ev.EventName())
	assert.Equal(t, b.ID().String(), ev.AggregateID())
	assert.True(t, ev.TotalAmount.Equal(b.TotalAmount()))
}

func TestNewReference(t *testing.T) {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	stamp := "BK" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	seen := map[string]bool{}
	for range 2000 {
		ref := booking.NewReference(now)
		require.True(t, strings.HasPrefix(ref, stamp), ref)
		assert.Len(t, ref, len(stamp)+8)
		assert.False(t, seen[ref], "duplicate reference %s within one millisecond", ref)
		seen[ref] = true
	}
}

func TestNewContactInfo(t *testing.T) {
	cases := []struct {
		name       string
		contact    [3]string
		wantFields []string
	}{
		{name: "valid", contact: [3]string{" Alex Kim ", "alex.kim@example.com", "+1-555-0100"}},
		{name: "phone is optional", contact: [3]string{"Alex Kim", "alex.kim@example.com", ""}},
		{name: "missing name", contact: [3]string{" ", "alex.kim@example.com", ""}, wantFields: []string{"contactInfo.name"}},
		{name: "bad email", contact: [3]string{"Alex Kim", "alex.kim", ""}, wantFields: []string{"contactInfo.email"}},
		{
			name:       "every field wrong",
			contact:    [3]string{"", "", strings.Repeat("9", 33)},
			wantFields: []string{"contactInfo.name", "contactInfo.email", "contactInfo.phone"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := booking.NewContactInfo(tc.contact[0], tc.contact[1], tc.contact[2])
			if len(tc.wantFields) == 0 {
				require.NoError(t, err)
				assert.Equal(t, strings.TrimSpace(tc.contact[0]), c.Name)
				return
			}
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrValidation))
			var got []string
			for _, f := range errs.FieldDetails(err) {
				got = append(got, f.Field)
			}
			assert.Equal(t, tc.wantFields, got)
		})
	}
}

func TestNewSpecialRequests(t *testing.T) {
	s, err := booking.NewSpecialRequests("  late check-in  ")
	require.NoError(t, err)
	assert.Equal(t, "late check-in", s.String())

	_, err = booking.NewSpecialRequests(strings.Repeat("é", booking.MaxSpecialRequestsLength))
	assert.NoError(t, err, "limit counts characters, not bytes")

	_, err = booking.NewSpecialRequests(strings.Repeat("a", booking.MaxSpecialRequestsLength+1))
	assert.True(t, errs.Is(err, errs.ErrValidation))
}

func TestStatus(t *testing.T) {
	assert.True(t, booking.StatusPending.IsActive())
	assert.True(t, booking.StatusConfirmed.IsActive())
	assert.False(t, booking.StatusCancelled.IsActive())
	assert.False(t, booking.StatusCompleted.IsActive())

	for _, s := range []booking.Status{booking.StatusCancelled, booking.StatusCompleted, booking.StatusNoShow} {
		assert.True(t, s.IsTerminal(), s.String())
	}
	assert.False(t, booking.Status("archived").IsTerminal())
}
