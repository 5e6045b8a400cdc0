//go:build unit

package review_test

import (
	"testing"

	"booking-engine/internal/domain/review"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewFor(t *testing.T, resourceID uuid.UUID, status review.Status, ratings map[review.Category]int, overall float64) *review.Review {
	t.Helper()
	return review.Reconstruct(review.Snapshot{
		ID:         uuid.New(),
		ResourceID: resourceID,
		CustomerID: uuid.New(),
		Ratings:    ratings,
		Overall:    overall,
		Content:    "Quiet room, friendly staff and a great view.",
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

func TestRecount(t *testing.T) {
	resourceID := uuid.New()

	t.Run("no approved reviews yields an empty summary", func(t *testing.T) {
		s := review.Recount(resourceID, []*review.Review{
			reviewFor(t, resourceID, review.StatusPending, map[review.Category]int{review.CategoryValue: 5}, 5),
			reviewFor(t, resourceID, review.StatusRejected, map[review.Category]int{review.CategoryValue: 1}, 1),
		}, now)

		assert.Zero(t, s.TotalReviews)
		assert.Zero(t, s.AverageRating)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, s.Distribution)
		assert.Empty(t, s.CategoryAverages)
	})

	t.Run("only approved reviews of this resource count", func(t *testing.T) {
		s := review.Recount(resourceID, []*review.Review{
			reviewFor(t, resourceID, review.StatusApproved, map[review.Category]int{review.CategoryValue: 5, review.CategoryLocation: 4}, 4.5),
			reviewFor(t, resourceID, review.StatusApproved, map[review.Category]int{review.CategoryValue: 3}, 3),
			reviewFor(t, resourceID, review.StatusFlagged, map[review.Category]int{review.CategoryValue: 1}, 1),
			reviewFor(t, uuid.New(), review.StatusApproved, map[review.Category]int{review.CategoryValue: 1}, 1),
		}, now)

		require.Equal(t, 2, s.TotalReviews)
		assert.Equal(t, 3.75, s.AverageRating)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 0, 5: 1}, s.Distribution, "4.5 rounds into the 5 bucket")
		assert.Equal(t, map[review.Category]float64{review.CategoryValue: 4, review.CategoryLocation: 4}, s.CategoryAverages)
		assert.Equal(t, now, s.UpdatedAt)
	})

	t.Run("averages round to two places", func(t *testing.T) {
		s := review.Recount(resourceID, []*review.Review{
			reviewFor(t, resourceID, review.StatusApproved, map[review.Category]int{review.CategoryService: 5}, 5),
			reviewFor(t, resourceID, review.StatusApproved, map[review.Category]int{review.CategoryService: 4}, 4),
			reviewFor(t, resourceID, review.StatusApproved, map[review.Category]int{review.CategoryService: 4}, 4),
		}, now)

		assert.Equal(t, 4.33, s.AverageRating)
		assert.Equal(t, 4.33, s.CategoryAverages[review.CategoryService])
	})
}
