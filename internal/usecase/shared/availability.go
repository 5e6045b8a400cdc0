package shared

import (
	"context"
	"log/slog"

	"booking-engine/internal/domain/availability"
	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/pkg/retry"

	"github.com/google/uuid"
)

// readRetry: idempotent reads get exactly one extra attempt on transient failure.
var readRetry = retry.Config{MaxAttempts: 2, BaseDelay: retry.DefaultBaseDelay}

// CheckAvailability answers the availability question from the committed
// index. It is advisory; writers re-check under the resource lock.
func CheckAvailability(ctx context.Context, reads Reads, resourceID uuid.UUID, window daterange.DateRange, units int) (*AvailabilityResult, error) {
	if units < 1 {
		return nil, errs.Validation("units", "must be at least 1")
	}

	var result *AvailabilityResult
	err := readRetry.Do(ctx, slog.Default(), "check availability", func(ctx context.Context) error {
		res, err := reads.ResourceByID(ctx, resourceID)
		if err != nil {
			return err
		}
		records, err := reads.ActiveAvailability(ctx, resourceID, window)
		if err != nil {
			return err
		}
		result = &AvailabilityResult{
			ResourceID:     resourceID,
			Capacity:       res.Capacity(),
			RequiredUnits:  units,
			RemainingUnits: availability.Remaining(records, res.Capacity(), window),
			Available:      availability.CheckAvailable(records, res.Capacity(), window, units),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
