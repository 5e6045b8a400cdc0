package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"booking-engine/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Headers browsers must be able to send and read for booking retries to work.
var (
	engineRequestHeaders = []string{"Authorization", "Content-Type", "Idempotency-Key"}
	engineExposedHeaders = []string{"Location", "Idempotent-Replayed"}
)

func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	allow := withRequired(cfg.AllowHeaders, engineRequestHeaders)
	expose := withRequired(cfg.ExposeHeaders, engineExposedHeaders)

	logger.Info("cors configured",
		"origins", cfg.AllowOrigins,
		"allow_headers", allow,
		"expose_headers", expose,
	)
	return cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     allow,
		ExposeHeaders:    expose,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
}

func withRequired(configured, required []string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(c string) bool { return strings.EqualFold(c, h) }) {
			out = append(out, h)
		}
	}
	return out
}
