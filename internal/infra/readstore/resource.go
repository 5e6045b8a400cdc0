package readstore

import (
	"context"
	"log/slog"

	"booking-engine/internal/infra"
	"booking-engine/internal/infra/db"
	"booking-engine/internal/pkg/pgconv"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewResourceReadStore(dbtx db.DBTX, logger *slog.Logger) *ResourceReadStore {
	return &ResourceReadStore{db: dbtx, logger: logger}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	var v queries.ResourceView
	err := r.db.QueryRow(ctx, `
		SELECT id, name, kind, capacity, max_party_size, to_char(unit_rate, 'FM999999999990.00'),
			currency, timezone, created_at, updated_at
		FROM resources WHERE id = $1`, id,
	).Scan(&v.ID, &v.Name, &v.Kind, &v.Capacity, &v.MaxPartySize, &v.UnitRate,
		&v.Currency, &v.Timezone, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "resource not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindOf(err), "failed to get resource view", err)
	}
	return &v, nil
}
