package user

import "github.com/google/uuid"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleOperator, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsStaff covers the roles that manage bookings and reviews on behalf of
// the business.
func (r Role) IsStaff() bool {
	return r == RoleOperator || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Actor is the caller identity handed to the engine by the auth layer.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}
