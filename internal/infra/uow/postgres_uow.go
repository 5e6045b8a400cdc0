package uow

import (
	"context"
	"errors"
	"log/slog"

	"booking-engine/internal/domain/availability"
	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/resource"
	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/db"
	"booking-engine/internal/infra/repository"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

type PostgresUoW struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresUoW(pool *pgxpool.Pool, logger *slog.Logger) *PostgresUoW {
	return &PostgresUoW{pool: pool, logger: logger}
}

// Within runs fn in one ReadCommitted transaction. Failures are surfaced to
// the caller as-is; serialization failures and deadlocks come back as
// conflicts instead of being replayed, so a mutating call never runs twice.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return errs.Mark(infra.WrapRepoErr(u.logger, infra.KindOf(err), "begin transaction", err), errTransactionBegin)
	}

	defer func() {
		// Rollback after a successful commit returns ErrTxClosed.
		if rollbackErr := pgxTx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.Warn("rollback failed", "error", rollbackErr.Error())
			}
		}
	}()

	if err = fn(ctx, &pgTx{dbtx: pgxTx, logger: u.logger}); err != nil {
		return err
	}
	if err = pgxTx.Commit(ctx); err != nil {
		return errs.Mark(infra.WrapRepoErr(u.logger, infra.KindOf(err), "commit transaction", err), errTransactionCommit)
	}
	return nil
}

func (u *PostgresUoW) Reads() shared.Reads {
	return &poolReads{
		resources:    repository.NewResourceRepository(u.pool, u.logger),
		bookings:     repository.NewBookingRepository(u.pool, u.logger),
		availability: repository.NewAvailabilityRepository(u.pool, u.logger),
		idempotency:  repository.NewIdempotencyRepository(u.pool, u.logger),
	}
}

type pgTx struct {
	dbtx   db.DBTX
	logger *slog.Logger

	// Lazy-initialized repositories
	resourceRepo     *repository.ResourceRepository
	bookingRepo      *repository.BookingRepository
	availabilityRepo *repository.AvailabilityRepository
	reviewRepo       *repository.ReviewRepository
	voteRepo         *repository.VoteRepository
	summaryRepo      *repository.RatingSummaryRepository
	outboxRepo       *repository.OutboxRepository
	idempotencyRepo  *repository.IdempotencyRepository
}

// LockResource takes a transaction-scoped advisory lock keyed by the
// resource id. Writers on other resources never wait on it.
func (t *pgTx) LockResource(ctx context.Context, resourceID uuid.UUID) error {
	_, err := t.dbtx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, resourceID.String())
	if err != nil {
		return infra.WrapRepoErr(t.logger, infra.KindOf(err), "failed to lock resource", err)
	}
	return nil
}

func (t *pgTx) Resources() shared.ResourceRepository {
	if t.resourceRepo == nil {
		t.resourceRepo = repository.NewResourceRepository(t.dbtx, t.logger)
	}
	return t.resourceRepo
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx, t.logger)
	}
	return t.bookingRepo
}

func (t *pgTx) Availability() shared.AvailabilityRepository {
	if t.availabilityRepo == nil {
		t.availabilityRepo = repository.NewAvailabilityRepository(t.dbtx, t.logger)
	}
	return t.availabilityRepo
}

func (t *pgTx) Reviews() shared.ReviewRepository {
	if t.reviewRepo == nil {
		t.reviewRepo = repository.NewReviewRepository(t.dbtx, t.logger)
	}
	return t.reviewRepo
}

func (t *pgTx) Votes() shared.VoteRepository {
	if t.voteRepo == nil {
		t.voteRepo = repository.NewVoteRepository(t.dbtx, t.logger)
	}
	return t.voteRepo
}

func (t *pgTx) RatingSummaries() shared.RatingSummaryRepository {
	if t.summaryRepo == nil {
		t.summaryRepo = repository.NewRatingSummaryRepository(t.dbtx, t.logger)
	}
	return t.summaryRepo
}

func (t *pgTx) Outbox() shared.OutboxRepository {
	if t.outboxRepo == nil {
		t.outboxRepo = repository.NewOutboxRepository(t.dbtx, t.logger)
	}
	return t.outboxRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.dbtx, t.logger)
	}
	return t.idempotencyRepo
}

// poolReads runs single statements on the pool, outside any transaction.
type poolReads struct {
	resources    *repository.ResourceRepository
	bookings     *repository.BookingRepository
	availability *repository.AvailabilityRepository
	idempotency  *repository.IdempotencyRepository
}

func (r *poolReads) ResourceByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	return r.resources.FindByID(ctx, id)
}

func (r *poolReads) ResourceIDs(ctx context.Context) ([]uuid.UUID, error) {
	return r.resources.ListIDs(ctx)
}

func (r *poolReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.bookings.FindByID(ctx, id)
}

func (r *poolReads) ActiveAvailability(ctx context.Context, resourceID uuid.UUID, window daterange.DateRange) ([]availability.Record, error) {
	return r.availability.ListActive(ctx, resourceID, window)
}

func (r *poolReads) IdempotencyByKey(ctx context.Context, key string, customerID uuid.UUID) (*shared.IdempotencyRecord, error) {
	return r.idempotency.FindByKey(ctx, key, customerID)
}
