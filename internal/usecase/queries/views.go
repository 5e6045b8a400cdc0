package queries

import (
	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/resource"
	"booking-engine/internal/domain/review"
	"booking-engine/internal/domain/shared/daterange"
)

// Builders from domain aggregates, used by stores that keep aggregates rather
// than rows.

func NewBookingView(b *booking.Booking, resourceName string) *BookingView {
	v := &BookingView{
		ID:            b.ID(),
		Reference:     b.Reference(),
		ResourceID:    b.ResourceID(),
		ResourceName:  resourceName,
		CustomerID:    b.CustomerID(),
		StartDate:     b.DateRange().Start().Format(daterange.DateLayout),
		EndDate:       b.DateRange().End().Format(daterange.DateLayout),
		Nights:        b.Nights(),
		PartySize:     b.PartySize(),
		UnitRate:      b.UnitRate().Amount().StringFixed(2),
		TotalAmount:   b.TotalAmount().Amount().StringFixed(2),
		Currency:      b.TotalAmount().Currency(),
		Status:        b.Status().String(),
		PaymentStatus: b.PaymentStatus().String(),
		Contact: ContactView{
			Name:  b.Contact().Name,
			Email: b.Contact().Email,
			Phone: b.Contact().Phone,
		},
		SpecialRequests:    b.SpecialRequests().String(),
		CancellationReason: b.CancellationReason(),
		CreatedAt:          b.CreatedAt(),
		UpdatedAt:          b.UpdatedAt(),
	}
	if r := b.RefundAmount(); r != nil {
		s := r.Amount().StringFixed(2)
		v.RefundAmount = &s
	}
	return v
}

func NewBookingListItem(b *booking.Booking, resourceName string) *BookingListItem {
	return &BookingListItem{
		ID:            b.ID(),
		Reference:     b.Reference(),
		ResourceID:    b.ResourceID(),
		ResourceName:  resourceName,
		StartDate:     b.DateRange().Start().Format(daterange.DateLayout),
		EndDate:       b.DateRange().End().Format(daterange.DateLayout),
		Status:        b.Status().String(),
		PaymentStatus: b.PaymentStatus().String(),
		TotalAmount:   b.TotalAmount().Amount().StringFixed(2),
		Currency:      b.TotalAmount().Currency(),
		CreatedAt:     b.CreatedAt(),
	}
}

func NewResourceView(r *resource.Resource) *ResourceView {
	return &ResourceView{
		ID:           r.ID(),
		Name:         r.Name(),
		Kind:         string(r.Kind()),
		Capacity:     r.Capacity(),
		MaxPartySize: r.MaxPartySize(),
		UnitRate:     r.UnitRate().Amount().StringFixed(2),
		Currency:     r.UnitRate().Currency(),
		Timezone:     r.Timezone(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

func NewReviewView(r *review.Review) *ReviewView {
	ratings := make(map[string]int, len(review.Categories))
	for c, v := range r.Ratings().Map() {
		ratings[string(c)] = v
	}
	v := &ReviewView{
		ID:               r.ID(),
		ResourceID:       r.ResourceID(),
		BookingID:        r.BookingID(),
		CustomerID:       r.CustomerID(),
		Ratings:          ratings,
		OverallRating:    r.Overall(),
		Content:          r.Content().String(),
		Status:           r.Status().String(),
		ModerationReason: r.ModerationReason(),
		Likes:            r.Likes(),
		Dislikes:         r.Dislikes(),
		CreatedAt:        r.CreatedAt(),
		UpdatedAt:        r.UpdatedAt(),
	}
	if reply := r.Reply(); reply != nil {
		v.Reply = &ReplyView{
			AuthorID:  reply.AuthorID,
			Text:      reply.Text,
			CreatedAt: reply.CreatedAt,
			UpdatedAt: reply.UpdatedAt,
		}
	}
	return v
}

func NewRatingSummaryView(s *review.RatingSummary) *RatingSummaryView {
	cats := make(map[string]float64, len(s.CategoryAverages))
	for c, v := range s.CategoryAverages {
		cats[string(c)] = v
	}
	dist := make(map[int]int, len(s.Distribution))
	for star, n := range s.Distribution {
		dist[star] = n
	}
	return &RatingSummaryView{
		ResourceID:       s.ResourceID,
		AverageRating:    s.AverageRating,
		TotalReviews:     s.TotalReviews,
		Distribution:     dist,
		CategoryAverages: cats,
		UpdatedAt:        s.UpdatedAt,
	}
}
