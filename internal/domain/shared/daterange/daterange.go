// Package daterange is the single civil-date abstraction used for pricing and
// availability. Dates carry no time of day: every boundary is stored as
// midnight UTC of the civil date it represents, so nights are whole days and
// comparisons never cross a timezone boundary.
package daterange

import (
	"fmt"
	"time"

	"booking-engine/internal/pkg/errs"
)

const (
	DateLayout = "2006-01-02"
	Day        = 24 * time.Hour
)

type DateRange struct {
	start time.Time
	end   time.Time
}

// ParseDate reads a civil date in YYYY-MM-DD form.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, errs.Validation("date", fmt.Sprintf("%q is not a YYYY-MM-DD date", s))
	}
	return t, nil
}

// Normalize returns the civil date that t falls on in loc.
func Normalize(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// New builds the half-open range [start, end). Both bounds are normalized as
// UTC civil dates.
func New(start, end time.Time) (DateRange, error) {
	return NewIn(start, end, time.UTC)
}

// NewIn normalizes start and end to civil dates in loc before building the range.
func NewIn(start, end time.Time, loc *time.Location) (DateRange, error) {
	s := Normalize(start, loc)
	e := Normalize(end, loc)
	if !s.Before(e) {
		return DateRange{}, errs.InvalidRange("dateRange", "end must be after start")
	}
	return DateRange{start: s, end: e}, nil
}

func Parse(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return New(s, e)
}

// Reconstruct restores a range from persisted bounds without validation.
func Reconstruct(start, end time.Time) DateRange {
	return DateRange{start: Normalize(start, time.UTC), end: Normalize(end, time.UTC)}
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

func (r DateRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

func (r DateRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

// Overlaps reports whether [s1,e1) and [s2,e2) share at least one night.
func (r DateRange) Overlaps(o DateRange) bool {
	return r.start.Before(o.end) && o.start.Before(r.end)
}

func (r DateRange) Contains(day time.Time) bool {
	d := Normalize(day, time.UTC)
	return !d.Before(r.start) && d.Before(r.end)
}

// Days lists each night of the range by its civil date.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.start; d.Before(r.end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (r DateRange) Equal(o DateRange) bool {
	return r.start.Equal(o.start) && r.end.Equal(o.end)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(DateLayout), r.end.Format(DateLayout))
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"start":%q,"end":%q}`, r.start.Format(DateLayout), r.end.Format(DateLayout))), nil
}
