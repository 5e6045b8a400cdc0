// Package availability holds the per-resource reservation index entries and
// the occupancy arithmetic used to decide whether a range can still be booked.
package availability

import (
	"sort"
	"time"

	"booking-engine/internal/domain/shared/daterange"

	"github.com/google/uuid"
)

type State string

const (
	StateActive     State = "active"
	StateReleased   State = "released"
	StateHistorical State = "historical"
)

// Record is one booking's hold on a resource. It is an index entry derived
// from the booking, never a source of truth.
type Record struct {
	ResourceID uuid.UUID
	BookingID  uuid.UUID
	Range      daterange.DateRange
	Units      int
	State      State
}

func NewRecord(resourceID, bookingID uuid.UUID, r daterange.DateRange, units int) Record {
	if units < 1 {
		units = 1
	}
	return Record{
		ResourceID: resourceID,
		BookingID:  bookingID,
		Range:      r,
		Units:      units,
		State:      StateActive,
	}
}

func (r Record) IsActive() bool {
	return r.State == StateActive
}

type edge struct {
	at    time.Time
	delta int
}

// PeakOccupancy is the largest number of units held by active records on any
// single night inside window.
func PeakOccupancy(records []Record, window daterange.DateRange) int {
	edges := make([]edge, 0, len(records)*2)
	for _, rec := range records {
		if !rec.IsActive() || !rec.Range.Overlaps(window) {
			continue
		}
		start := maxTime(rec.Range.Start(), window.Start())
		end := minTime(rec.Range.End(), window.End())
		edges = append(edges, edge{at: start, delta: rec.Units}, edge{at: end, delta: -rec.Units})
	}

	// a range ending on a day frees it before another starting that day claims it
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].at.Equal(edges[j].at) {
			return edges[i].delta < edges[j].delta
		}
		return edges[i].at.Before(edges[j].at)
	})

	peak, current := 0, 0
	for _, e := range edges {
		current += e.delta
		if current > peak {
			peak = current
		}
	}
	return peak
}

// CheckAvailable reports whether requiredUnits more units fit on every night
// of window without exceeding capacity.
func CheckAvailable(records []Record, capacity int, window daterange.DateRange, requiredUnits int) bool {
	if requiredUnits < 1 {
		requiredUnits = 1
	}
	return PeakOccupancy(records, window)+requiredUnits <= capacity
}

func Remaining(records []Record, capacity int, window daterange.DateRange) int {
	left := capacity - PeakOccupancy(records, window)
	if left < 0 {
		return 0
	}
	return left
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
