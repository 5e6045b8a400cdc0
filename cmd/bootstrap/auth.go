package bootstrap

import (
	"log/slog"

	"booking-engine/internal/handler/middleware"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/jwt"
	"booking-engine/internal/usecase"

	"go.uber.org/fx"
)

// HS256 keys shorter than the hash output are accepted but weak.
const minSecretLength = 32

// AuthModule wires bearer-token verification from the signing key to the
// gin middleware.
var AuthModule = fx.Module("auth",
	fx.Provide(
		NewJWTService,
		usecase.NewTokenValidator,
		middleware.NewAuthMiddleware,
	),
)

func NewJWTService(cfg config.Config, logger *slog.Logger) *jwt.Service {
	if len(cfg.JWT.Secret) < minSecretLength {
		logger.Warn("JWT secret is shorter than recommended", "min_length", minSecretLength)
	}
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenDuration)
}
