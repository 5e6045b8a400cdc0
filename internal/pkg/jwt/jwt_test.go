//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"booking-engine/internal/domain/user"
	"booking-engine/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, claims gojwt.Claims, method gojwt.SigningMethod, key any) string {
	t.Helper()
	token, err := gojwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestService_RoundTrip(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour)
	actor := user.Actor{ID: uuid.New(), Role: user.RoleOperator}

	token, err := svc.Issue(actor)
	require.NoError(t, err)

	got, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestService_Rejects(t *testing.T) {
	svc := jwt.NewService(secret, time.Hour)
	valid := func(mutate func(*jwt.Claims)) jwt.Claims {
		c := jwt.Claims{
			Role: "customer",
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    "booking-engine",
				Subject:   uuid.NewString(),
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		mutate(&c)
		return c
	}

	t.Run("expired", func(t *testing.T) {
		token, err := svc.IssueWithTTL(user.Actor{ID: uuid.New(), Role: user.RoleCustomer}, -time.Minute)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("within leeway", func(t *testing.T) {
		token, err := svc.IssueWithTTL(user.Actor{ID: uuid.New(), Role: user.RoleCustomer}, -time.Second)
		require.NoError(t, err)

		_, err = svc.Parse(token)
		assert.NoError(t, err)
	})

	cases := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{"wrong secret", func(t *testing.T) string {
			return sign(t, valid(func(*jwt.Claims) {}), gojwt.SigningMethodHS256, []byte("another-secret"))
		}},
		{"foreign issuer", func(t *testing.T) string {
			return sign(t, valid(func(c *jwt.Claims) { c.Issuer = "someone-else" }), gojwt.SigningMethodHS256, []byte(secret))
		}},
		{"other hmac algorithm", func(t *testing.T) string {
			return sign(t, valid(func(*jwt.Claims) {}), gojwt.SigningMethodHS512, []byte(secret))
		}},
		{"no expiry", func(t *testing.T) string {
			return sign(t, valid(func(c *jwt.Claims) { c.ExpiresAt = nil }), gojwt.SigningMethodHS256, []byte(secret))
		}},
		{"subject not a uuid", func(t *testing.T) string {
			return sign(t, valid(func(c *jwt.Claims) { c.Subject = "alice" }), gojwt.SigningMethodHS256, []byte(secret))
		}},
		{"nil subject", func(t *testing.T) string {
			return sign(t, valid(func(c *jwt.Claims) { c.Subject = uuid.Nil.String() }), gojwt.SigningMethodHS256, []byte(secret))
		}},
		{"unknown role", func(t *testing.T) string {
			return sign(t, valid(func(c *jwt.Claims) { c.Role = "superuser" }), gojwt.SigningMethodHS256, []byte(secret))
		}},
		{"garbage", func(*testing.T) string { return "not-a-token" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Parse(tc.token(t))
			assert.ErrorIs(t, err, jwt.ErrInvalidToken)
		})
	}
}
