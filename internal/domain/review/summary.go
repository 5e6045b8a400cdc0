package review

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// RatingSummary is derived data: it is always the result of a full recount
// over the approved reviews of one resource.
type RatingSummary struct {
	ResourceID       uuid.UUID
	AverageRating    float64
	TotalReviews     int
	Distribution     map[int]int
	CategoryAverages map[Category]float64
	UpdatedAt        time.Time
}

func EmptySummary(resourceID uuid.UUID, now time.Time) *RatingSummary {
	return &RatingSummary{
		ResourceID:       resourceID,
		Distribution:     map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
		CategoryAverages: map[Category]float64{},
		UpdatedAt:        now,
	}
}

// Recount ignores anything that is not approved.
func Recount(resourceID uuid.UUID, reviews []*Review, now time.Time) *RatingSummary {
	s := EmptySummary(resourceID, now)

	var total float64
	catSum := map[Category]int{}
	catCount := map[Category]int{}
	for _, r := range reviews {
		if r.Status() != StatusApproved || r.ResourceID() != resourceID {
			continue
		}
		s.TotalReviews++
		total += r.Overall()
		s.Distribution[star(r.Overall())]++
		for c, v := range r.Ratings().Map() {
			catSum[c] += v
			catCount[c]++
		}
	}
	if s.TotalReviews == 0 {
		return s
	}

	s.AverageRating = round2(total / float64(s.TotalReviews))
	for c, n := range catCount {
		s.CategoryAverages[c] = round2(float64(catSum[c]) / float64(n))
	}
	return s
}

func star(overall float64) int {
	v := int(math.Round(overall))
	return min(max(v, MinRating), MaxRating)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
