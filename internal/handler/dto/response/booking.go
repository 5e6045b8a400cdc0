package response

import (
	"time"

	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type ContactInfoResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type BookingResponse struct {
	ID                 uuid.UUID           `json:"id"`
	Reference          string              `json:"reference"`
	ResourceID         uuid.UUID           `json:"resource_id"`
	ResourceName       string              `json:"resource_name"`
	CustomerID         uuid.UUID           `json:"customer_id"`
	StartDate          string              `json:"start_date"`
	EndDate            string              `json:"end_date"`
	Nights             int                 `json:"nights"`
	PartySize          int                 `json:"party_size"`
	UnitRate           string              `json:"unit_rate"`
	TotalAmount        string              `json:"total_amount"`
	Currency           string              `json:"currency"`
	Status             string              `json:"status"`
	PaymentStatus      string              `json:"payment_status"`
	Contact            ContactInfoResponse `json:"contact_info"`
	SpecialRequests    string              `json:"special_requests,omitempty"`
	CancellationReason *string             `json:"cancellation_reason,omitempty"`
	RefundAmount       *string             `json:"refund_amount,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return copyView[BookingResponse](v)
}

type BookingListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	Reference     string    `json:"reference"`
	ResourceID    uuid.UUID `json:"resource_id"`
	ResourceName  string    `json:"resource_name"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   string    `json:"total_amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromBookingList(items []*queries.BookingListItem, next *queries.Cursor) *Page[BookingListItemResponse] {
	page := &Page[BookingListItemResponse]{Items: copyList[BookingListItemResponse](items)}
	if next != nil {
		page.NextCursor = next.After
	}
	return page
}

type StatusChangeResponse struct {
	BookingID    uuid.UUID `json:"booking_id"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	RefundAmount *string   `json:"refund_amount,omitempty"`
	RefundIssued bool      `json:"refund_issued"`
}

func FromStatusChange(r *commands.UpdateStatusResult) *StatusChangeResponse {
	resp := &StatusChangeResponse{
		BookingID:    r.BookingID,
		From:         r.From.String(),
		To:           r.To.String(),
		RefundIssued: r.RefundIssued,
	}
	if r.RefundAmount != nil {
		amount := r.RefundAmount.Amount().StringFixed(2)
		resp.RefundAmount = &amount
	}
	return resp
}
