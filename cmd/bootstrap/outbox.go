package bootstrap

import (
	"context"
	"log/slog"

	"booking-engine/internal/infra/outbox"
	"booking-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var OutboxModule = fx.Module("outbox",
	fx.Provide(
		NewOutboxRelay,
	),
	fx.Invoke(startRelay),
)

func NewOutboxRelay(source outbox.Source, publisher outbox.Publisher, cfg config.Config, logger *slog.Logger) *outbox.Relay {
	return outbox.NewRelay(source, publisher, cfg.Outbox, logger)
}

func startRelay(lc fx.Lifecycle, relay *outbox.Relay) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			relay.Start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			relay.Stop()
			return nil
		},
	})
}
