package request

import (
	"booking-engine/internal/usecase/commands"
)

type CreateResourceRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	Kind         string `json:"kind" binding:"required,oneof=hotel_room tour vehicle"`
	Capacity     int    `json:"capacity" binding:"required,min=1"`
	MaxPartySize int    `json:"max_party_size" binding:"required,min=1"`
	UnitRate     string `json:"unit_rate" binding:"required,numeric"`
	Currency     string `json:"currency" binding:"required,len=3,uppercase"`
	Timezone     string `json:"timezone" binding:"required,timezone"`
}

func (r CreateResourceRequest) ToCommand() commands.CreateResourceRequest {
	return commands.CreateResourceRequest{
		Name:         r.Name,
		Kind:         r.Kind,
		Capacity:     r.Capacity,
		MaxPartySize: r.MaxPartySize,
		UnitRate:     r.UnitRate,
		Currency:     r.Currency,
		Timezone:     r.Timezone,
	}
}

type UpdateRateRequest struct {
	UnitRate string `json:"unit_rate" binding:"required,numeric"`
	Currency string `json:"currency" binding:"required,len=3,uppercase"`
}
