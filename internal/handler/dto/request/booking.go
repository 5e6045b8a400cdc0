package request

import (
	"booking-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type ContactInfoRequest struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email,max=255"`
	Phone string `json:"phone" binding:"omitempty,max=32"`
}

type CreateBookingRequest struct {
	ResourceID      uuid.UUID          `json:"resource_id" binding:"required"`
	StartDate       string             `json:"start_date" binding:"required,civildate"`
	EndDate         string             `json:"end_date" binding:"required,civildate"`
	PartySize       int                `json:"party_size" binding:"required,min=1"`
	ContactInfo     ContactInfoRequest `json:"contact_info" binding:"required"`
	SpecialRequests string             `json:"special_requests" binding:"max=500"`
}

func (r CreateBookingRequest) ToCommand(idempotencyKey string) commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ResourceID: r.ResourceID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		PartySize:  r.PartySize,
		Contact: commands.ContactInput{
			Name:  r.ContactInfo.Name,
			Email: r.ContactInfo.Email,
			Phone: r.ContactInfo.Phone,
		},
		SpecialRequests: r.SpecialRequests,
		IdempotencyKey:  idempotencyKey,
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed no_show"`
	Reason string `json:"reason" binding:"max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=unpaid partially_paid paid refunded failed"`
}
