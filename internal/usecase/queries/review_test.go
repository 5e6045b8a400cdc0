//go:build unit

package queries_test

import (
	"context"
	"testing"

	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/queries"
	"booking-engine/tests/common/authtest"
	queriesmock "booking-engine/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReviewQueries_GetByID(t *testing.T) {
	ctx := context.Background()
	author := authtest.Customer()

	cases := []struct {
		name    string
		status  string
		visible bool
	}{
		{name: "approved is public", status: "approved", visible: true},
		{name: "pending hidden from strangers", status: "pending", visible: false},
		{name: "rejected hidden from strangers", status: "rejected", visible: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := queriesmock.NewMockReviewReadStore(ctrl)
			view := &queries.ReviewView{ID: uuid.New(), CustomerID: author.ID, Status: tc.status}
			store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil).Times(3)
			q := queries.NewReviewQueries(store)

			_, err := q.GetByID(ctx, view.ID, authtest.Customer())
			if tc.visible {
				assert.NoError(t, err)
			} else {
				assert.True(t, errs.Is(err, errs.ErrNotFound))
			}

			_, err = q.GetByID(ctx, view.ID, author)
			assert.NoError(t, err, "authors always see their review")
			_, err = q.GetByID(ctx, view.ID, authtest.Operator())
			assert.NoError(t, err, "staff always see reviews")
		})
	}
}

func TestReviewQueries_ListByResource(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := queriesmock.NewMockReviewReadStore(ctrl)
	resourceID := uuid.New()
	rows := []*queries.ReviewView{{ID: uuid.New()}, {ID: uuid.New()}}

	store.EXPECT().FindApprovedByResource(gomock.Any(), resourceID, (*queries.Keyset)(nil), int32(6)).Return(rows, nil)

	got, next, err := queries.NewReviewQueries(store).ListByResource(context.Background(), resourceID, nil, 5)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.Nil(t, next)
}
