package commands

import (
	"context"
	"log/slog"

	"booking-engine/internal/domain/resource"
	"booking-engine/internal/domain/shared/money"
	"booking-engine/internal/domain/user"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateResourceRequest struct {
	Name         string
	Kind         string
	Capacity     int
	MaxPartySize int
	UnitRate     string
	Currency     string
	Timezone     string
}

type ResourceCommands interface {
	CreateResource(ctx context.Context, req CreateResourceRequest, actor user.Actor) (uuid.UUID, error)
	UpdateRate(ctx context.Context, resourceID uuid.UUID, rate, currency string, actor user.Actor) error
}

type resourceCommandsImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	settings Settings
	logger   *slog.Logger
}

func NewResourceCommands(uow shared.UnitOfWork, clk clock.Clock, settings Settings, logger *slog.Logger) ResourceCommands {
	return &resourceCommandsImpl{uow: uow, clock: clk, settings: settings, logger: logger}
}

func (uc *resourceCommandsImpl) CreateResource(ctx context.Context, req CreateResourceRequest, actor user.Actor) (uuid.UUID, error) {
	if err := requireStaff(actor); err != nil {
		return uuid.Nil, err
	}
	rate, err := money.Parse(req.UnitRate, req.Currency)
	if err != nil {
		return uuid.Nil, errs.InvalidInput("unitRate", "must be a decimal amount")
	}
	res, err := resource.NewResource(resource.Params{
		Name:         req.Name,
		Kind:         resource.Kind(req.Kind),
		Capacity:     req.Capacity,
		MaxPartySize: req.MaxPartySize,
		UnitRate:     rate,
		Timezone:     req.Timezone,
	}, uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	ctx, cancel := shared.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Resources().Create(ctx, res)
	})
	if err != nil {
		return uuid.Nil, shared.MarkTimeout(ctx, err)
	}

	uc.logger.InfoContext(ctx, "resource created",
		"resource_id", res.ID().String(),
		"kind", string(res.Kind()),
		"capacity", res.Capacity())
	return res.ID(), nil
}

// UpdateRate only affects quotes made after it commits.
func (uc *resourceCommandsImpl) UpdateRate(ctx context.Context, resourceID uuid.UUID, rate, currency string, actor user.Actor) error {
	if err := requireStaff(actor); err != nil {
		return err
	}
	newRate, err := money.Parse(rate, currency)
	if err != nil {
		return errs.InvalidInput("unitRate", "must be a decimal amount")
	}

	ctx, cancel := shared.WithTimeout(ctx, uc.settings.OperationTimeout)
	defer cancel()

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		res, err := tx.Resources().FindByID(ctx, resourceID)
		if err != nil {
			return err
		}
		if err = res.ChangeRate(newRate, uc.clock.Now()); err != nil {
			return err
		}
		return tx.Resources().Update(ctx, res)
	})
	return shared.MarkTimeout(ctx, err)
}
