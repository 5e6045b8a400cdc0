// Package outbox moves events committed alongside state changes to external
// consumers. Delivery is at least once: an event is marked published only
// after its publisher call succeeds.
package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"booking-engine/internal/domain/shared/event"
	"booking-engine/internal/pkg/config"
)

// Source hands batches of unpublished events to publish and records the ids
// publish reports as delivered.
type Source interface {
	Drain(ctx context.Context, limit int, publish func(ctx context.Context, batch []event.Envelope) ([]int64, error)) (int, error)
}

type Relay struct {
	source    Source
	publisher Publisher
	interval  time.Duration
	batchSize int
	logger    *slog.Logger

	stop chan struct{}
	done sync.WaitGroup
}

func NewRelay(source Source, publisher Publisher, cfg config.OutboxConfig, logger *slog.Logger) *Relay {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 100
	}
	return &Relay{
		source:    source,
		publisher: publisher,
		interval:  interval,
		batchSize: batch,
		logger:    logger,
	}
}

// RunOnce publishes one batch. Events after the first failure in a batch
// stay pending so per-aggregate order is preserved.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	return r.source.Drain(ctx, r.batchSize, func(ctx context.Context, batch []event.Envelope) ([]int64, error) {
		delivered := make([]int64, 0, len(batch))
		for _, env := range batch {
			if err := r.publisher.Publish(ctx, env); err != nil {
				return delivered, err
			}
			delivered = append(delivered, env.ID)
		}
		return delivered, nil
	})
}

func (r *Relay) Start() {
	r.stop = make(chan struct{})
	r.done.Add(1)
	go func() {
		defer r.done.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				r.tick()
			}
		}
	}()
}

func (r *Relay) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), r.interval)
	defer cancel()
	n, err := r.RunOnce(ctx)
	if err != nil {
		r.logger.Warn("outbox publish failed", "published", n, "error", err.Error())
		return
	}
	if n > 0 {
		r.logger.Debug("outbox batch published", "published", n)
	}
}

func (r *Relay) Stop() {
	if r.stop == nil {
		return
	}
	close(r.stop)
	r.done.Wait()
}
