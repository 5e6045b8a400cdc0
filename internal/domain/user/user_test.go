//go:build unit

package user_test

import (
	"strings"
	"testing"

	"booking-engine/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	e, err := user.NewEmail("  Alex.Kim@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "Alex.Kim@example.com", e.Value(), "only the domain is case-folded")

	for _, bad := range []string{"", "alex", "alex@", "@example.com", "alex@example", strings.Repeat("a", 250) + "@example.com"} {
		_, err := user.NewEmail(bad)
		assert.ErrorIs(t, err, user.ErrInvalidEmail, bad)
	}
}

func TestRole(t *testing.T) {
	for _, r := range []string{"customer", "operator", "admin"} {
		role, err := user.NewRole(r)
		require.NoError(t, err)
		assert.Equal(t, r, role.String())
	}
	_, err := user.NewRole("guest")
	assert.ErrorIs(t, err, user.ErrInvalidRole)

	assert.False(t, user.Actor{Role: user.RoleCustomer}.IsStaff())
	assert.True(t, user.Actor{Role: user.RoleOperator}.IsStaff())
	assert.True(t, user.Actor{Role: user.RoleAdmin}.IsStaff())
}
