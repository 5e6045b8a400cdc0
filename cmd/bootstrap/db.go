package bootstrap

import (
	"context"
	"log/slog"

	"booking-engine/internal/infra/db"
	"booking-engine/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// DBModule is only installed for the postgres store driver.
var DBModule = fx.Module("db",
	fx.Provide(NewDB),
)

func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, closePool, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("postgres pool ready",
		"host", cfg.DB.Host,
		"database", cfg.DB.DBName,
		"max_conns", pool.Config().MaxConns,
	)

	lc.Append(fx.StopHook(func(context.Context) {
		stat := pool.Stat()
		logger.Info("closing postgres pool",
			"acquired", stat.AcquiredConns(),
			"total_acquires", stat.AcquireCount(),
		)
		closePool()
	}))
	return pool, nil
}
