package bootstrap

import (
	"booking-engine/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule supplies an already loaded config; the store driver has to be
// known before the graph is assembled.
func ConfigModule(cfg config.Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
	)
}
