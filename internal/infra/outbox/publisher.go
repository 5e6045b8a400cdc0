package outbox

import (
	"context"
	"log/slog"
	"time"

	"booking-engine/internal/domain/shared/event"

	"github.com/redis/go-redis/v9"
)

// Publisher delivers one encoded event to external consumers.
type Publisher interface {
	Publish(ctx context.Context, env event.Envelope) error
}

// RedisStreamPublisher appends events to a Redis Stream, one entry per event.
type RedisStreamPublisher struct {
	client *redis.Client
	stream string
}

func NewRedisStreamPublisher(client *redis.Client, stream string) *RedisStreamPublisher {
	return &RedisStreamPublisher{client: client, stream: stream}
}

func (p *RedisStreamPublisher) Publish(ctx context.Context, env event.Envelope) error {
	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{
			"event":        env.Name,
			"aggregate_id": env.AggregateID,
			"occurred_at":  env.OccurredAt.UTC().Format(time.RFC3339Nano),
			"payload":      string(env.Payload),
		},
	}).Err()
}

// LogPublisher writes events to the structured log. Used when no Redis
// address is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, env event.Envelope) error {
	p.logger.InfoContext(ctx, "event published",
		"event", env.Name,
		"aggregate_id", env.AggregateID,
		"occurred_at", env.OccurredAt,
		"payload", string(env.Payload))
	return nil
}
