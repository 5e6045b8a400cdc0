//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"booking-engine/internal/domain/user"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens the running server accepts.
type JWTHelper struct {
	tokens *jwt.Service
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{tokens: jwt.NewService(cfg.Secret, cfg.AccessTokenDuration)}
}

func (h *JWTHelper) TokenFor(t *testing.T, actor user.Actor) string {
	t.Helper()
	token, err := h.tokens.Issue(actor)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken returns a token that expired well outside the parser's leeway.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, actor user.Actor) string {
	t.Helper()
	token, err := h.tokens.IssueWithTTL(actor, -time.Hour)
	require.NoError(t, err)
	return token
}
