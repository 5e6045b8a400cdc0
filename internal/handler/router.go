package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"booking-engine/internal/domain/user"
	"booking-engine/internal/handler/api"
	reqdto "booking-engine/internal/handler/dto/request"
	"booking-engine/internal/handler/middleware"
	"booking-engine/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Booking      *api.BookingHandler
	Review       *api.ReviewHandler
	Resource     *api.ResourceHandler
	Availability *api.AvailabilityHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *slog.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	reqdto.RegisterValidators()
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery(logger))
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS, logger))
	engine.Use(middleware.LoggingMiddleware(logger, cfg.Log))
	engine.Use(middleware.ErrorHandler(logger))
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	staff := []gin.HandlerFunc{authMiddleware.RequireRoleAtLeast(user.RoleOperator)}

	apiGroup := engine.Group("/api")
	{
		resources := apiGroup.Group("/resources")
		{
			addRoutes(resources, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Resource.Get},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: h.Availability.Check},
				{Method: http.MethodGet, Path: "/:id/reviews", Handler: h.Review.ListByResource},
				{Method: http.MethodGet, Path: "/:id/rating-summary", Handler: h.Review.RatingSummary},
			})

			managed := resources.Group("")
			managed.Use(authMiddleware.RequireAuth())
			addRoutes(managed, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Resource.Create, Mw: staff},
				{Method: http.MethodPatch, Path: "/:id/rate", Handler: h.Resource.UpdateRate, Mw: staff},
				{Method: http.MethodPost, Path: "/:id/availability/rebuild", Handler: h.Availability.RebuildResource, Mw: staff},
				{Method: http.MethodPost, Path: "/:id/rating-summary/recompute", Handler: h.Review.RecomputeSummary, Mw: staff},
			})
		}

		availability := apiGroup.Group("/availability")
		availability.Use(authMiddleware.RequireAuth())
		{
			addRoutes(availability, []route{
				{Method: http.MethodPost, Path: "/rebuild", Handler: h.Availability.RebuildAll, Mw: staff},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Booking.Create},
				{Method: http.MethodGet, Path: "", Handler: h.Booking.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: h.Booking.UpdateStatus},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel},
				{Method: http.MethodPatch, Path: "/:id/payment-status", Handler: h.Booking.UpdatePaymentStatus, Mw: staff},
			})
		}

		reviews := apiGroup.Group("/reviews")
		{
			addRoutes(reviews, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: h.Review.Get, Mw: []gin.HandlerFunc{authMiddleware.OptionalAuth()}},
			})

			authRequired := reviews.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Review.Submit},
				{Method: http.MethodPost, Path: "/:id/votes", Handler: h.Review.Vote},
				{Method: http.MethodPost, Path: "/:id/moderation", Handler: h.Review.Moderate, Mw: staff},
				{Method: http.MethodPost, Path: "/:id/reply", Handler: h.Review.PostReply, Mw: staff},
				{Method: http.MethodPut, Path: "/:id/reply", Handler: h.Review.EditReply, Mw: staff},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
