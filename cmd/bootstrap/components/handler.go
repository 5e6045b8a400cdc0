package components

import (
	"booking-engine/internal/handler"
	"booking-engine/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewReviewHandler,
		api.NewResourceHandler,
		api.NewAvailabilityHandler,
		func(b *api.BookingHandler, r *api.ReviewHandler, res *api.ResourceHandler, a *api.AvailabilityHandler) handler.Handlers {
			return handler.Handlers{Booking: b, Review: r, Resource: res, Availability: a}
		},
	),
	fx.Invoke(handler.NewRouter),
)
