package bootstrap

import (
	"booking-engine/cmd/bootstrap/components"
	"booking-engine/internal/pkg/config"

	"go.uber.org/fx"
)

// Module assembles the application for cfg. The postgres driver pulls in the
// connection pool; the memory driver runs without external services.
func Module(cfg config.Config) fx.Option {
	opts := []fx.Option{
		ConfigModule(cfg),
		LoggerModule,
		AuthModule,
		RedisModule,
		components.PersistenceModule(cfg.Store.Driver),
		components.UseCaseModule,
		components.HandlerModule,
		OutboxModule,
	}
	if cfg.Store.Driver != config.StoreDriverMemory {
		opts = append(opts, DBModule)
	}
	return fx.Options(opts...)
}
