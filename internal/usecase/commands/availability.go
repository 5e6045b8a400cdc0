package commands

import (
	"context"
	"log/slog"

	"booking-engine/internal/domain/availability"
	"booking-engine/internal/domain/user"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const rebuildParallelism = 4

type RebuildResult struct {
	ResourceID uuid.UUID
	Records    int
}

type AvailabilityCommands interface {
	// Rebuild replays active bookings into the index. A nil resourceID
	// rebuilds every resource.
	Rebuild(ctx context.Context, resourceID *uuid.UUID, actor user.Actor) ([]RebuildResult, error)
}

type availabilityCommandsImpl struct {
	uow    shared.UnitOfWork
	logger *slog.Logger
}

func NewAvailabilityCommands(uow shared.UnitOfWork, logger *slog.Logger) AvailabilityCommands {
	return &availabilityCommandsImpl{uow: uow, logger: logger}
}

func (uc *availabilityCommandsImpl) Rebuild(ctx context.Context, resourceID *uuid.UUID, actor user.Actor) ([]RebuildResult, error) {
	if err := requireStaff(actor); err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	if resourceID != nil {
		ids = []uuid.UUID{*resourceID}
	} else {
		var err error
		if ids, err = uc.uow.Reads().ResourceIDs(ctx); err != nil {
			return nil, err
		}
	}

	results := make([]RebuildResult, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rebuildParallelism)
	for i, id := range ids {
		g.Go(func() error {
			n, err := uc.rebuildOne(gctx, id)
			if err != nil {
				return err
			}
			results[i] = RebuildResult{ResourceID: id, Records: n}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// rebuildOne holds the resource lock so no booking lands between the wipe
// and the replay.
func (uc *availabilityCommandsImpl) rebuildOne(ctx context.Context, resourceID uuid.UUID) (int, error) {
	var count int
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Resources().FindByID(ctx, resourceID); err != nil {
			return err
		}
		if err := tx.LockResource(ctx, resourceID); err != nil {
			return err
		}
		bookings, err := tx.Bookings().ListActiveByResource(ctx, resourceID)
		if err != nil {
			return err
		}
		if err = tx.Availability().DeleteByResource(ctx, resourceID); err != nil {
			return err
		}
		for _, b := range bookings {
			rec := availability.NewRecord(resourceID, b.ID(), b.DateRange(), 1)
			if err = tx.Availability().Insert(ctx, rec); err != nil {
				return err
			}
		}
		count = len(bookings)
		return nil
	})
	if err != nil {
		return 0, err
	}
	uc.logger.InfoContext(ctx, "availability rebuilt", "resource_id", resourceID.String(), "records", count)
	return count, nil
}
