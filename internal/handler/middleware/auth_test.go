//go:build unit

package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	nethttptest "net/http/httptest"
	"testing"
	"time"

	"booking-engine/internal/domain/user"
	"booking-engine/internal/handler/middleware"
	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/jwt"
	"booking-engine/internal/usecase"
	"booking-engine/tests/common/authtest"
	"booking-engine/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	jwtHelper *authtest.JWTHelper
	router    *gin.Engine
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	cfg := config.NewTestConfig()
	s.jwtHelper = authtest.NewJWTHelper(cfg.JWT)

	auth := middleware.NewAuthMiddleware(
		usecase.NewTokenValidator(jwt.NewService(cfg.JWT.Secret, cfg.JWT.AccessTokenDuration)),
	)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))

	whoami := func(c *gin.Context) {
		actor, ok := middleware.GetActor(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID.String(), "role": actor.Role.String()})
	}

	s.router.GET("/private", auth.RequireAuth(), whoami)
	s.router.GET("/staff", auth.RequireAuth(), auth.RequireRoleAtLeast(user.RoleOperator), whoami)
	s.router.GET("/public", auth.OptionalAuth(), whoami)
}

func decode(t *testing.T, w *nethttptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
	return body
}

func TestAuthMiddlewareTestSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	customer := authtest.Customer()

	s.Run("valid token sets the actor", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, s.jwtHelper.TokenFor(s.T(), customer))
		require.Equal(s.T(), http.StatusOK, w.Code)

		body := decode(s.T(), w)
		assert.Equal(s.T(), customer.ID.String(), body["id"])
		assert.Equal(s.T(), "customer", body["role"])
	})

	s.Run("missing token", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("expired token", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, s.jwtHelper.CreateExpiredToken(s.T(), customer))
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("token signed with another secret", func() {
		other := authtest.NewJWTHelper(config.JWTConfig{Secret: "other", AccessTokenDuration: time.Hour})
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/private", nil, other.TokenFor(s.T(), customer))
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRoleAtLeast() {
	cases := []struct {
		name   string
		actor  user.Actor
		status int
	}{
		{name: "customer is refused", actor: authtest.Customer(), status: http.StatusForbidden},
		{name: "operator passes", actor: authtest.Operator(), status: http.StatusOK},
		{name: "admin passes", actor: authtest.Admin(), status: http.StatusOK},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/staff", nil, s.jwtHelper.TokenFor(s.T(), tc.actor))
			assert.Equal(s.T(), tc.status, w.Code)
		})
	}
}

func (s *AuthMiddlewareTestSuite) TestOptionalAuth() {
	s.Run("anonymous passes through", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/public", nil, "")
		require.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), true, decode(s.T(), w)["anonymous"])
	})

	s.Run("invalid token is ignored", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/public", nil, "garbage")
		require.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), true, decode(s.T(), w)["anonymous"])
	})

	s.Run("valid token identifies the caller", func() {
		admin := authtest.Admin()
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/public", nil, s.jwtHelper.TokenFor(s.T(), admin))
		require.Equal(s.T(), http.StatusOK, w.Code)
		assert.Equal(s.T(), "admin", decode(s.T(), w)["role"])
	})
}
