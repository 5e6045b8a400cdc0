//go:build unit

package memory_test

import (
	"context"
	"testing"

	"booking-engine/internal/domain/availability"
	"booking-engine/internal/infra/memory"
	"booking-engine/internal/usecase/shared"
	"booking-engine/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithin_AvailabilityRecordNeedsItsBooking(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	res := builder.NewResourceBuilder().BuildDomain()
	b := builder.NewBookingBuilder().ForResource(res.ID()).BuildDomain()
	rec := availability.NewRecord(res.ID(), b.ID(), b.DateRange(), 1)

	require.NoError(t, store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, res)
	}))

	t.Run("record before booking fails and rolls back", func(t *testing.T) {
		err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if err := tx.Availability().Insert(ctx, rec); err != nil {
				return err
			}
			return tx.Bookings().Create(ctx, b)
		})
		require.Error(t, err)

		_, err = store.Reads().BookingByID(ctx, b.ID())
		assert.Error(t, err)
		records, err := store.Reads().ActiveAvailability(ctx, res.ID(), b.DateRange())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("booking then record commits both", func(t *testing.T) {
		err := store.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if err := tx.Bookings().Create(ctx, b); err != nil {
				return err
			}
			return tx.Availability().Insert(ctx, rec)
		})
		require.NoError(t, err)

		records, err := store.Reads().ActiveAvailability(ctx, res.ID(), b.DateRange())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, b.ID(), records[0].BookingID)
	})
}
