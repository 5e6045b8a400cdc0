package resource

import (
	"strings"
	"time"

	"booking-engine/internal/domain/shared/money"
	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxResourceNameLength = 255
)

// maxUnitRate is the largest rate a NUMERIC(12,2) column holds.
var maxUnitRate = decimal.RequireFromString("9999999999.99")

type Kind string

const (
	KindHotelRoom Kind = "hotel_room"
	KindTour      Kind = "tour"
	KindVehicle   Kind = "vehicle"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindHotelRoom, KindTour, KindVehicle:
		return true
	default:
		return false
	}
}

type Resource struct {
	id           uuid.UUID
	name         string
	kind         Kind
	capacity     int
	maxPartySize int
	unitRate     money.Money
	timezone     string
	location     *time.Location
	createdAt    time.Time
	updatedAt    time.Time
}

type Params struct {
	Name         string
	Kind         Kind
	Capacity     int
	MaxPartySize int
	UnitRate     money.Money
	Timezone     string
}

func NewResource(p Params, now time.Time) (*Resource, error) {
	var fields []errs.FieldError

	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		fields = append(fields, errs.FieldError{Field: "name", Reason: "is required"})
	case len(name) > MaxResourceNameLength:
		fields = append(fields, errs.FieldError{Field: "name", Reason: "is too long"})
	}
	if !p.Kind.IsValid() {
		fields = append(fields, errs.FieldError{Field: "kind", Reason: "must be hotel_room, tour or vehicle"})
	}
	if p.Capacity < 1 {
		fields = append(fields, errs.FieldError{Field: "capacity", Reason: "must be at least 1"})
	}
	if p.MaxPartySize < 1 {
		fields = append(fields, errs.FieldError{Field: "maxPartySize", Reason: "must be at least 1"})
	}
	if reason := checkRate(p.UnitRate); reason != "" {
		fields = append(fields, errs.FieldError{Field: "unitRate", Reason: reason})
	}
	loc, err := loadLocation(p.Timezone)
	if err != nil {
		fields = append(fields, errs.FieldError{Field: "timezone", Reason: "unknown IANA timezone"})
	}
	if len(fields) > 0 {
		return nil, errs.NewValidation(fields...)
	}

	return &Resource{
		id:           uuid.New(),
		name:         name,
		kind:         p.Kind,
		capacity:     p.Capacity,
		maxPartySize: p.MaxPartySize,
		unitRate:     p.UnitRate,
		timezone:     loc.String(),
		location:     loc,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func Reconstruct(id uuid.UUID, p Params, createdAt, updatedAt time.Time) *Resource {
	loc, err := loadLocation(p.Timezone)
	if err != nil {
		loc = time.UTC
	}
	return &Resource{
		id:           id,
		name:         p.Name,
		kind:         p.Kind,
		capacity:     p.Capacity,
		maxPartySize: p.MaxPartySize,
		unitRate:     p.UnitRate,
		timezone:     loc.String(),
		location:     loc,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ChangeRate affects future quotes only; bookings keep the rate they captured.
func (r *Resource) ChangeRate(rate money.Money, now time.Time) error {
	if reason := checkRate(rate); reason != "" {
		return errs.InvalidInput("unitRate", reason)
	}
	r.unitRate = rate
	r.updatedAt = now
	return nil
}

// checkRate rejects rates the store would round, so a quote always matches
// the persisted rate.
func checkRate(rate money.Money) string {
	switch {
	case !rate.IsPositive():
		return "must be positive"
	case !rate.IsWholeCents():
		return "must have at most 2 decimal places"
	case rate.Amount().GreaterThan(maxUnitRate):
		return "exceeds 9999999999.99"
	}
	return ""
}

func (r *Resource) ValidatePartySize(size int) error {
	if size < 1 {
		return errs.Validation("partySize", "must be at least 1")
	}
	if size > r.maxPartySize {
		return errs.Validation("partySize", "exceeds the resource's maximum party size")
	}
	return nil
}

// StartsAt is the instant a stay on the given civil date begins, in the
// resource's own timezone.
func (r *Resource) StartsAt(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, r.location)
}

func loadLocation(tz string) (*time.Location, error) {
	if strings.TrimSpace(tz) == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(tz)
}

func (r *Resource) ID() uuid.UUID            { return r.id }
func (r *Resource) Name() string             { return r.name }
func (r *Resource) Kind() Kind               { return r.kind }
func (r *Resource) Capacity() int            { return r.capacity }
func (r *Resource) MaxPartySize() int        { return r.maxPartySize }
func (r *Resource) UnitRate() money.Money    { return r.unitRate }
func (r *Resource) Timezone() string         { return r.timezone }
func (r *Resource) Location() *time.Location { return r.location }
func (r *Resource) CreatedAt() time.Time     { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time     { return r.updatedAt }
