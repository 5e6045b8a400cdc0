//go:build unit || e2e

package authtest

import (
	"booking-engine/internal/domain/user"

	"github.com/google/uuid"
)

func Customer() user.Actor {
	return user.Actor{ID: uuid.New(), Role: user.RoleCustomer}
}

func Operator() user.Actor {
	return user.Actor{ID: uuid.New(), Role: user.RoleOperator}
}

func Admin() user.Actor {
	return user.Actor{ID: uuid.New(), Role: user.RoleAdmin}
}
