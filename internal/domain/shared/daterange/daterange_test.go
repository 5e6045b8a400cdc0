//go:build unit

package daterange_test

import (
	"testing"
	"time"

	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := daterange.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func mustRange(t *testing.T, start, end string) daterange.DateRange {
	t.Helper()
	r, err := daterange.Parse(start, end)
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	t.Run("valid range keeps civil bounds", func(t *testing.T) {
		r := mustRange(t, "2026-03-10", "2026-03-13")
		assert.Equal(t, day("2026-03-10"), r.Start())
		assert.Equal(t, day("2026-03-13"), r.End())
		assert.Equal(t, "[2026-03-10,2026-03-13)", r.String())
	})

	t.Run("end equal to start is an invalid range", func(t *testing.T) {
		_, err := daterange.Parse("2026-03-10", "2026-03-10")
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrInvalidRange))
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("end before start is an invalid range", func(t *testing.T) {
		_, err := daterange.Parse("2026-03-13", "2026-03-10")
		assert.True(t, errs.Is(err, errs.ErrInvalidRange))
	})

	t.Run("malformed date is a validation error", func(t *testing.T) {
		_, err := daterange.Parse("2026-3-10", "2026-03-13")
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.False(t, errs.Is(err, errs.ErrInvalidRange))
	})

	t.Run("time of day is dropped", func(t *testing.T) {
		start := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC)
		end := time.Date(2026, 3, 11, 0, 15, 0, 0, time.UTC)
		r, err := daterange.New(start, end)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{day("2026-03-10")}, r.Days())
	})

	t.Run("bounds normalize in the given location", func(t *testing.T) {
		tokyo, err := time.LoadLocation("Asia/Tokyo")
		require.NoError(t, err)
		// 2026-03-10 16:00 UTC is already 2026-03-11 in Tokyo
		start := time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)
		end := time.Date(2026, 3, 12, 16, 0, 0, 0, time.UTC)
		r, err := daterange.NewIn(start, end, tokyo)
		require.NoError(t, err)
		assert.Equal(t, day("2026-03-11"), r.Start())
		assert.Equal(t, day("2026-03-13"), r.End())
	})
}

func TestOverlaps(t *testing.T) {
	base := mustRange(t, "2026-03-10", "2026-03-13")

	cases := []struct {
		name  string
		other daterange.DateRange
		want  bool
	}{
		{name: "identical", other: mustRange(t, "2026-03-10", "2026-03-13"), want: true},
		{name: "contained", other: mustRange(t, "2026-03-11", "2026-03-12"), want: true},
		{name: "overlaps the tail", other: mustRange(t, "2026-03-12", "2026-03-15"), want: true},
		{name: "overlaps the head", other: mustRange(t, "2026-03-08", "2026-03-11"), want: true},
		{name: "back-to-back after", other: mustRange(t, "2026-03-13", "2026-03-15"), want: false},
		{name: "back-to-back before", other: mustRange(t, "2026-03-08", "2026-03-10"), want: false},
		{name: "disjoint", other: mustRange(t, "2026-04-01", "2026-04-02"), want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestDaysAndContains(t *testing.T) {
	r := mustRange(t, "2026-02-27", "2026-03-02")

	assert.Equal(t, []time.Time{day("2026-02-27"), day("2026-02-28"), day("2026-03-01")}, r.Days())
	assert.True(t, r.Contains(day("2026-02-27")))
	assert.True(t, r.Contains(day("2026-03-01")))
	assert.False(t, r.Contains(day("2026-03-02")), "end is exclusive")
	assert.Equal(t, 3*daterange.Day, r.Duration())
}

func TestMarshalJSON(t *testing.T) {
	r := mustRange(t, "2026-03-10", "2026-03-13")
	b, err := r.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2026-03-10","end":"2026-03-13"}`, string(b))
}
