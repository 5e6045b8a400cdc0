package response

import (
	"time"

	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Kind         string    `json:"kind"`
	Capacity     int       `json:"capacity"`
	MaxPartySize int       `json:"max_party_size"`
	UnitRate     string    `json:"unit_rate"`
	Currency     string    `json:"currency"`
	Timezone     string    `json:"timezone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromResourceView(v *queries.ResourceView) *ResourceResponse {
	return copyView[ResourceResponse](v)
}

type AvailabilityResponse struct {
	ResourceID     uuid.UUID `json:"resource_id"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	Capacity       int       `json:"capacity"`
	RequiredUnits  int       `json:"required_units"`
	RemainingUnits int       `json:"remaining_units"`
	Available      bool      `json:"available"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	return copyView[AvailabilityResponse](v)
}

type RebuildResponse struct {
	ResourceID uuid.UUID `json:"resource_id"`
	Records    int       `json:"records"`
}

func FromRebuildResults(results []commands.RebuildResult) []RebuildResponse {
	out := make([]RebuildResponse, len(results))
	for i, r := range results {
		out[i] = RebuildResponse{ResourceID: r.ResourceID, Records: r.Records}
	}
	return out
}
