package request

import (
	"booking-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type SubmitReviewRequest struct {
	BookingID uuid.UUID      `json:"booking_id" binding:"required"`
	Ratings   map[string]int `json:"ratings" binding:"required,min=1,dive,keys,required,endkeys,min=1,max=5"`
	Content   string         `json:"content" binding:"required,min=10,max=1000"`
}

func (r SubmitReviewRequest) ToCommand() commands.SubmitReviewRequest {
	return commands.SubmitReviewRequest{
		BookingID: r.BookingID,
		Ratings:   r.Ratings,
		Content:   r.Content,
	}
}

type ModerateReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject flag"`
	Reason string `json:"reason" binding:"max=500"`
}

type VoteReviewRequest struct {
	Action string `json:"action" binding:"required,oneof=like dislike"`
}

type ReplyRequest struct {
	Text string `json:"text" binding:"required,max=1000"`
}
