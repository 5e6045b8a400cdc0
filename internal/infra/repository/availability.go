package repository

import (
	"context"
	"log/slog"

	"booking-engine/internal/domain/availability"
	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/db"
	"booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AvailabilityRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewAvailabilityRepository(dbtx db.DBTX, logger *slog.Logger) *AvailabilityRepository {
	return &AvailabilityRepository{db: dbtx, logger: logger}
}

// ListActive returns the active records of a resource overlapping window,
// using the half-open test start < window.end AND window.start < end.
func (r *AvailabilityRepository) ListActive(ctx context.Context, resourceID uuid.UUID, window daterange.DateRange) ([]availability.Record, error) {
	rows, err := r.db.Query(ctx, `
		SELECT resource_id, booking_id, start_date, end_date, units, state
		FROM availability_records
		WHERE resource_id = $1 AND state = 'active' AND start_date < $3 AND $2 < end_date
		ORDER BY start_date, booking_id`,
		resourceID, pgconv.DateToPgtype(window.Start()), pgconv.DateToPgtype(window.End()),
	)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to list availability", err)
	}
	defer rows.Close()

	var out []availability.Record
	for rows.Next() {
		var (
			rec        availability.Record
			start, end pgtype.Date
			state      string
		)
		if err := rows.Scan(&rec.ResourceID, &rec.BookingID, &start, &end, &rec.Units, &state); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan availability record", err)
		}
		rec.Range = daterange.Reconstruct(pgconv.DateFromPgtype(start), pgconv.DateFromPgtype(end))
		rec.State = availability.State(state)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to list availability", err)
	}
	return out, nil
}

// Insert reactivates a stale record for the same booking instead of failing.
func (r *AvailabilityRepository) Insert(ctx context.Context, rec availability.Record) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO availability_records (booking_id, resource_id, start_date, end_date, units, state)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (booking_id) DO UPDATE
		SET resource_id = EXCLUDED.resource_id, start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date, units = EXCLUDED.units, state = EXCLUDED.state`,
		rec.BookingID, rec.ResourceID,
		pgconv.DateToPgtype(rec.Range.Start()), pgconv.DateToPgtype(rec.Range.End()),
		rec.Units, string(rec.State),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to insert availability record", err)
	}
	return nil
}

func (r *AvailabilityRepository) SetState(ctx context.Context, bookingID uuid.UUID, state availability.State) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE availability_records SET state = $2
		WHERE booking_id = $1 AND state = 'active'`,
		bookingID, string(state),
	)
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to update availability record", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AvailabilityRepository) DeleteByResource(ctx context.Context, resourceID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM availability_records WHERE resource_id = $1 AND state = 'active'`, resourceID)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to clear availability records", err)
	}
	return nil
}
