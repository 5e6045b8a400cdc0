package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"booking-engine/internal/domain/user"
	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

var (
	errMissingToken = errors.New("access token required")
	errNoActor      = errors.New("no authenticated actor on context")
	errForbidden    = errors.New("insufficient role")
)

var roleHierarchy = map[user.Role]int{
	user.RoleCustomer: 1,
	user.RoleOperator: 2,
	user.RoleAdmin:    3,
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingToken, "Unauthorized", nil)
			return
		}

		actor, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Unauthorized", nil)
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

func hasMinimumRole(userRole, minRole user.Role) bool {
	userLevel, userExists := roleHierarchy[userRole]
	minLevel, minExists := roleHierarchy[minRole]
	return userExists && minExists && userLevel >= minLevel
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errNoActor, "Internal server error", nil)
			return
		}

		if !hasMinimumRole(role, minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errForbidden, "Forbidden", nil)
			return
		}

		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and lets
// anonymous requests through otherwise.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		actor, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

func SetActor(c *gin.Context, actor user.Actor) {
	c.Set(ctxUserIDKey, actor.ID)
	c.Set(ctxUserRoleKey, actor.Role)
	c.Set("jwt_claims", map[string]any{
		"user_id": actor.ID.String(),
		"role":    string(actor.Role),
	})
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

// GetActor returns the authenticated caller. The zero Actor is returned for
// anonymous requests.
func GetActor(c *gin.Context) (user.Actor, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return user.Actor{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return user.Actor{}, false
	}
	return user.Actor{ID: id, Role: role}, true
}
