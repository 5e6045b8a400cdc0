package components

import (
	"booking-engine/internal/infra/db"
	"booking-engine/internal/infra/memory"
	"booking-engine/internal/infra/outbox"
	"booking-engine/internal/infra/readstore"
	"booking-engine/internal/infra/uow"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/usecase/queries"
	"booking-engine/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// PersistenceModule wires the unit of work, read stores and outbox source for
// the configured store driver. The postgres variant expects a *pgxpool.Pool.
func PersistenceModule(driver string) fx.Option {
	if driver == config.StoreDriverMemory {
		return memoryModule
	}
	return postgresModule
}

var postgresModule = fx.Module("persistence/postgres",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Read side
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			readstore.NewResourceReadStore,
			fx.As(new(queries.ResourceReadStore)),
		),
		fx.Annotate(
			readstore.NewReviewReadStore,
			fx.As(new(queries.ReviewReadStore)),
		),
		// Outbox
		fx.Annotate(
			outbox.NewPostgresSource,
			fx.As(new(outbox.Source)),
		),
	),
)

var memoryModule = fx.Module("persistence/memory",
	fx.Provide(
		memory.NewStore,
		func(s *memory.Store) shared.UnitOfWork { return s },
		func(s *memory.Store) outbox.Source { return s },
		fx.Annotate(
			memory.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			memory.NewResourceReadStore,
			fx.As(new(queries.ResourceReadStore)),
		),
		fx.Annotate(
			memory.NewReviewReadStore,
			fx.As(new(queries.ReviewReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
