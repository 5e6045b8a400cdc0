//go:build unit || e2e

package builder

import (
	"time"

	"booking-engine/internal/domain/resource"
	"booking-engine/internal/domain/shared/money"
	reqdto "booking-engine/internal/handler/dto/request"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceBuilder struct {
	ID           uuid.UUID
	Name         string
	Kind         resource.Kind
	Capacity     int
	MaxPartySize int
	UnitRate     string
	Currency     string
	Timezone     string
	CreatedAt    time.Time
}

func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{
		ID:           uuid.New(),
		Name:         "Harbour View Double",
		Kind:         resource.KindHotelRoom,
		Capacity:     1,
		MaxPartySize: 4,
		UnitRate:     "120.00",
		Currency:     "USD",
		Timezone:     "UTC",
		CreatedAt:    time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(b)
	return b
}

func (b *ResourceBuilder) WithCapacity(capacity int) *ResourceBuilder {
	b.Capacity = capacity
	return b
}

func (b *ResourceBuilder) Params() resource.Params {
	rate, err := money.Parse(b.UnitRate, b.Currency)
	if err != nil {
		panic(err)
	}
	return resource.Params{
		Name:         b.Name,
		Kind:         b.Kind,
		Capacity:     b.Capacity,
		MaxPartySize: b.MaxPartySize,
		UnitRate:     rate,
		Timezone:     b.Timezone,
	}
}

func (b *ResourceBuilder) BuildDomain() *resource.Resource {
	return resource.Reconstruct(b.ID, b.Params(), b.CreatedAt, b.CreatedAt)
}

func (b *ResourceBuilder) BuildCreateRequestDTO() reqdto.CreateResourceRequest {
	return reqdto.CreateResourceRequest{
		Name:         b.Name,
		Kind:         string(b.Kind),
		Capacity:     b.Capacity,
		MaxPartySize: b.MaxPartySize,
		UnitRate:     b.UnitRate,
		Currency:     b.Currency,
		Timezone:     b.Timezone,
	}
}

func (b *ResourceBuilder) BuildView() *queries.ResourceView {
	return queries.NewResourceView(b.BuildDomain())
}
