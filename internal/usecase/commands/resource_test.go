//go:build unit

package commands_test

import (
	"context"
	"testing"

	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/commands"
	"booking-engine/tests/common/authtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateResource(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	valid := commands.CreateResourceRequest{
		Name:         "Sunset Kayak Tour",
		Kind:         "tour",
		Capacity:     12,
		MaxPartySize: 6,
		UnitRate:     "45.50",
		Currency:     "EUR",
		Timezone:     "Europe/Lisbon",
	}

	t.Run("staff creates", func(t *testing.T) {
		id, err := f.resources.CreateResource(ctx, valid, authtest.Admin())
		require.NoError(t, err)

		res, err := f.store.Reads().ResourceByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Sunset Kayak Tour", res.Name())
		assert.Equal(t, 12, res.Capacity())
		assert.Equal(t, "Europe/Lisbon", res.Timezone())
	})

	t.Run("customers cannot", func(t *testing.T) {
		_, err := f.resources.CreateResource(ctx, valid, f.customer)
		assert.True(t, errs.Is(err, errs.ErrAuthorization))
	})

	t.Run("invalid fields", func(t *testing.T) {
		req := valid
		req.Kind = "spaceship"
		req.Capacity = 0
		req.Timezone = "Mars/Olympus"

		_, err := f.resources.CreateResource(ctx, req, f.operator)
		require.True(t, errs.Is(err, errs.ErrValidation))

		var fields []string
		for _, fe := range errs.FieldDetails(err) {
			fields = append(fields, fe.Field)
		}
		assert.ElementsMatch(t, []string{"kind", "capacity", "timezone"}, fields)
	})

	t.Run("malformed rate", func(t *testing.T) {
		req := valid
		req.UnitRate = "lots"
		_, err := f.resources.CreateResource(ctx, req, f.operator)
		assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	})

	t.Run("rates must fit in cents", func(t *testing.T) {
		req := valid
		req.UnitRate = "99.995"
		_, err := f.resources.CreateResource(ctx, req, f.operator)
		require.True(t, errs.Is(err, errs.ErrValidation))
		require.Len(t, errs.FieldDetails(err), 1)
		assert.Equal(t, "unitRate", errs.FieldDetails(err)[0].Field)

		req.UnitRate = "12345678901.00"
		_, err = f.resources.CreateResource(ctx, req, f.operator)
		assert.True(t, errs.Is(err, errs.ErrValidation))

		req.UnitRate = "99.950"
		id, err := f.resources.CreateResource(ctx, req, f.operator)
		require.NoError(t, err)
		res, err := f.store.Reads().ResourceByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "99.95", res.UnitRate().Amount().StringFixed(2))
	})
}

func TestUpdateRate_AffectsOnlyNewBookings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	resourceID := f.createResource(t, 3)

	before := f.book(t, f.customer, resourceID, "2026-03-10", "2026-03-13")

	require.NoError(t, f.resources.UpdateRate(ctx, resourceID, "100.00", "USD", f.operator))
	after := f.book(t, f.customer, resourceID, "2026-03-10", "2026-03-13")

	assert.Equal(t, "720.00", f.loadBooking(t, before).TotalAmount().Amount().StringFixed(2))
	assert.Equal(t, "600.00", f.loadBooking(t, after).TotalAmount().Amount().StringFixed(2))

	err := f.resources.UpdateRate(ctx, resourceID, "99.995", "USD", f.operator)
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
	third := f.book(t, f.customer, resourceID, "2026-03-10", "2026-03-13")
	assert.Equal(t, "600.00", f.loadBooking(t, third).TotalAmount().Amount().StringFixed(2))

	err = f.resources.UpdateRate(ctx, resourceID, "100.00", "USD", f.customer)
	assert.True(t, errs.Is(err, errs.ErrAuthorization))

	err = f.resources.UpdateRate(ctx, uuid.New(), "100.00", "USD", f.operator)
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}
