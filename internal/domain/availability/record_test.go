//go:build unit

package availability_test

import (
	"testing"

	"booking-engine/internal/domain/availability"
	"booking-engine/internal/domain/shared/daterange"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var resourceID = uuid.New()

func rng(start, end string) daterange.DateRange {
	r, err := daterange.Parse(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func hold(start, end string) availability.Record {
	return availability.NewRecord(resourceID, uuid.New(), rng(start, end), 1)
}

func released(start, end string) availability.Record {
	rec := hold(start, end)
	rec.State = availability.StateReleased
	return rec
}

func TestPeakOccupancy(t *testing.T) {
	window := rng("2026-03-10", "2026-03-15")

	cases := []struct {
		name    string
		records []availability.Record
		want    int
	}{
		{name: "empty", want: 0},
		{name: "one hold", records: []availability.Record{hold("2026-03-11", "2026-03-12")}, want: 1},
		{
			name: "disjoint holds never stack",
			records: []availability.Record{
				hold("2026-03-10", "2026-03-12"),
				hold("2026-03-12", "2026-03-14"),
			},
			want: 1,
		},
		{
			name: "overlapping holds stack",
			records: []availability.Record{
				hold("2026-03-10", "2026-03-13"),
				hold("2026-03-12", "2026-03-14"),
			},
			want: 2,
		},
		{
			name: "peak is on one night, not summed over the window",
			records: []availability.Record{
				hold("2026-03-10", "2026-03-11"),
				hold("2026-03-12", "2026-03-13"),
				hold("2026-03-14", "2026-03-15"),
			},
			want: 1,
		},
		{
			name: "released and historical records are ignored",
			records: []availability.Record{
				released("2026-03-10", "2026-03-15"),
				func() availability.Record {
					rec := hold("2026-03-10", "2026-03-15")
					rec.State = availability.StateHistorical
					return rec
				}(),
			},
			want: 0,
		},
		{
			name:    "holds outside the window are ignored",
			records: []availability.Record{hold("2026-03-15", "2026-03-20"), hold("2026-03-01", "2026-03-10")},
			want:    0,
		},
		{
			name: "multi-unit records",
			records: []availability.Record{
				availability.NewRecord(resourceID, uuid.New(), rng("2026-03-10", "2026-03-12"), 2),
				hold("2026-03-11", "2026-03-13"),
			},
			want: 3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, availability.PeakOccupancy(tc.records, window))
		})
	}
}

func TestCheckAvailable(t *testing.T) {
	records := []availability.Record{hold("2026-03-10", "2026-03-13")}

	t.Run("single-unit resource is full on overlapping nights", func(t *testing.T) {
		assert.False(t, availability.CheckAvailable(records, 1, rng("2026-03-12", "2026-03-14"), 1))
	})

	t.Run("back-to-back stay fits", func(t *testing.T) {
		assert.True(t, availability.CheckAvailable(records, 1, rng("2026-03-13", "2026-03-15"), 1))
	})

	t.Run("second unit available on a capacity-two resource", func(t *testing.T) {
		assert.True(t, availability.CheckAvailable(records, 2, rng("2026-03-11", "2026-03-12"), 1))
		assert.False(t, availability.CheckAvailable(records, 2, rng("2026-03-11", "2026-03-12"), 2))
	})

	t.Run("zero units is treated as one", func(t *testing.T) {
		assert.False(t, availability.CheckAvailable(records, 1, rng("2026-03-10", "2026-03-11"), 0))
	})
}

func TestRemaining(t *testing.T) {
	records := []availability.Record{hold("2026-03-10", "2026-03-13"), hold("2026-03-10", "2026-03-13")}

	assert.Equal(t, 1, availability.Remaining(records, 3, rng("2026-03-10", "2026-03-11")))
	assert.Equal(t, 0, availability.Remaining(records, 1, rng("2026-03-10", "2026-03-11")), "never negative")
	assert.Equal(t, 3, availability.Remaining(records, 3, rng("2026-03-20", "2026-03-21")))
}

func TestNewRecord_DefaultsToOneActiveUnit(t *testing.T) {
	rec := availability.NewRecord(resourceID, uuid.New(), rng("2026-03-10", "2026-03-11"), 0)
	assert.Equal(t, 1, rec.Units)
	assert.True(t, rec.IsActive())
}
