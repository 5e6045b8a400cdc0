package bootstrap

import (
	"context"
	"log/slog"

	"booking-engine/internal/infra/outbox"
	"booking-engine/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewEventPublisher,
	),
)

// NewEventPublisher publishes to a Redis Stream when REDIS_ADDR is set and
// to the log otherwise.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) outbox.Publisher {
	if cfg.Redis.Addr == "" {
		logger.Info("REDIS_ADDR not set, outbox events go to the log")
		return outbox.NewLogPublisher(logger)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				// the relay keeps events pending until Redis is reachable
				logger.Warn("redis ping failed", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return outbox.NewRedisStreamPublisher(client, cfg.Redis.EventStream)
}
