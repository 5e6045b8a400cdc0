package repository

import (
	"context"
	"log/slog"
	"time"

	"booking-engine/internal/domain/resource"
	"booking-engine/internal/domain/shared/money"
	"booking-engine/internal/infra"
	"booking-engine/internal/infra/db"
	"booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const resourceColumns = `id, name, kind, capacity, max_party_size, unit_rate::text, currency, timezone, created_at, updated_at`

type ResourceRepository struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewResourceRepository(dbtx db.DBTX, logger *slog.Logger) *ResourceRepository {
	return &ResourceRepository{db: dbtx, logger: logger}
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO resources (id, name, kind, capacity, max_party_size, unit_rate, currency, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		res.ID(), res.Name(), string(res.Kind()), res.Capacity(), res.MaxPartySize(),
		res.UnitRate().Amount().String(), res.UnitRate().Currency(), res.Timezone(),
		res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to create resource", err)
	}
	return nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id)
	res, err := scanResource(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "resource not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to get resource", err)
	}
	return res, nil
}

func (r *ResourceRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM resources ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to list resources", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan resource id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to list resources", err)
	}
	return ids, nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE resources
		SET name = $2, capacity = $3, max_party_size = $4, unit_rate = $5, currency = $6, timezone = $7, updated_at = $8
		WHERE id = $1`,
		res.ID(), res.Name(), res.Capacity(), res.MaxPartySize(),
		res.UnitRate().Amount().String(), res.UnitRate().Currency(), res.Timezone(), res.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "resource not found", nil)
	}
	return nil
}

func scanResource(row rowScanner) (*resource.Resource, error) {
	var (
		id                     uuid.UUID
		name, kind, rate, cur  string
		timezone               string
		capacity, maxPartySize int
		createdAt, updatedAt   time.Time
	)
	if err := row.Scan(&id, &name, &kind, &capacity, &maxPartySize, &rate, &cur, &timezone, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	unitRate, err := money.Parse(rate, cur)
	if err != nil {
		return nil, err
	}
	return resource.Reconstruct(id, resource.Params{
		Name:         name,
		Kind:         resource.Kind(kind),
		Capacity:     capacity,
		MaxPartySize: maxPartySize,
		UnitRate:     unitRate,
		Timezone:     timezone,
	}, createdAt, updatedAt), nil
}

// rowScanner is satisfied by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
