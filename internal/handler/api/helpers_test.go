//go:build unit

package api_test

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"booking-engine/internal/domain/user"
	"booking-engine/internal/handler/middleware"
	"booking-engine/tests/common/authtest"

	"github.com/gin-gonic/gin"
)

// test tokens are the actor keys themselves
const (
	customerToken = "customer"
	otherToken    = "other"
	operatorToken = "operator"
)

type testActors map[string]user.Actor

func newTestActors() testActors {
	return testActors{
		customerToken: authtest.Customer(),
		otherToken:    authtest.Customer(),
		operatorToken: authtest.Operator(),
	}
}

// fakeAuth stands in for the JWT middleware: the bearer token names the actor.
func (a testActors) fakeAuth(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		actor, ok := a[token]
		if !ok {
			if required {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
				return
			}
			c.Next()
			return
		}
		middleware.SetActor(c, actor)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return r
}
