package outbox

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"booking-engine/internal/domain/shared/event"
	"booking-engine/internal/infra/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource claims rows with SKIP LOCKED so several relays can share
// one outbox table.
type PostgresSource struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresSource(pool *pgxpool.Pool, logger *slog.Logger) *PostgresSource {
	return &PostgresSource{pool: pool, logger: logger}
}

func (s *PostgresSource) Drain(ctx context.Context, limit int, publish func(ctx context.Context, batch []event.Envelope) ([]int64, error)) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.logger.Warn("outbox rollback failed", "error", rbErr.Error())
		}
	}()

	repo := repository.NewOutboxRepository(tx, s.logger)
	batch, err := repo.ClaimBatch(ctx, limit)
	if err != nil || len(batch) == 0 {
		return 0, err
	}

	delivered, pubErr := publish(ctx, batch)
	if err = repo.MarkPublished(ctx, delivered, time.Now()); err != nil {
		return 0, err
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, err
	}
	return len(delivered), pubErr
}
