package components

import (
	"log/slog"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/pricing"
	"booking-engine/internal/pkg/clock"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		pricing.NewDefaultCalculator,
		fx.As(new(pricing.Calculator)),
	),
	fx.Annotate(
		commands.NewLoggingPaymentGateway,
		fx.As(new(commands.PaymentGateway)),
	),
	NewStateMachine,
	NewSettings,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewReviewCommands,
		commands.NewResourceCommands,
		commands.NewAvailabilityCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewResourceQueries,
		queries.NewReviewQueries,
		queries.NewAvailabilityQueries,
	),
)

func NewStateMachine(cfg config.Config) *booking.StateMachine {
	return booking.NewStateMachine(booking.ConfirmationPolicy{
		RequirePayment: cfg.Engine.ConfirmRequiresPayment,
		AllowPartial:   cfg.Engine.ConfirmAllowsPartial,
	}, booking.TieredCancellationPolicy)
}

func NewSettings(cfg config.Config, logger *slog.Logger) commands.Settings {
	logger.Debug("engine settings",
		"operation_timeout", cfg.Engine.OperationTimeout,
		"refund_timeout", cfg.Engine.RefundTimeout)
	return commands.Settings{
		OperationTimeout: cfg.Engine.OperationTimeout,
		RefundTimeout:    cfg.Engine.RefundTimeout,
	}
}
