package bootstrap

import (
	"log/slog"

	"booking-engine/internal/handler/middleware"
	"booking-engine/internal/pkg/config"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(NewLogger),
)

// FxLogger routes fx lifecycle events through the process logger.
var FxLogger = fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
	return &fxevent.SlogLogger{Logger: logger.With("component", "fx")}
})

// NewLogger builds the process logger. Every record carries the store driver
// so logs from memory and postgres deployments can be told apart.
func NewLogger(cfg config.Config) *slog.Logger {
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger().With("store", cfg.Store.Driver)
	logger.Info("logger ready", "level", cfg.Log.Level)
	return logger
}
