package queries

import (
	"context"

	"github.com/google/uuid"
)

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
}

type ResourceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
}

type resourceQueriesImpl struct {
	store ResourceReadStore
}

func NewResourceQueries(store ResourceReadStore) ResourceQueries {
	return &resourceQueriesImpl{store: store}
}

func (q *resourceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	return q.store.FindByID(ctx, id)
}
