package queries

import (
	"context"

	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	Check(ctx context.Context, resourceID uuid.UUID, startDate, endDate string, units int) (*AvailabilityView, error)
}

type availabilityQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewAvailabilityQueries(uow shared.UnitOfWork) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow}
}

func (q *availabilityQueriesImpl) Check(ctx context.Context, resourceID uuid.UUID, startDate, endDate string, units int) (*AvailabilityView, error) {
	window, err := daterange.Parse(startDate, endDate)
	if err != nil {
		return nil, err
	}
	if units == 0 {
		units = 1
	}
	res, err := shared.CheckAvailability(ctx, q.uow.Reads(), resourceID, window, units)
	if err != nil {
		return nil, err
	}
	return &AvailabilityView{
		ResourceID:     res.ResourceID,
		StartDate:      window.Start().Format(daterange.DateLayout),
		EndDate:        window.End().Format(daterange.DateLayout),
		Capacity:       res.Capacity,
		RequiredUnits:  res.RequiredUnits,
		RemainingUnits: res.RemainingUnits,
		Available:      res.Available,
	}, nil
}
