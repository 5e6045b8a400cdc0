package usecase

import (
	"booking-engine/internal/domain/user"
	"booking-engine/internal/pkg/jwt"
)

// TokenValidator turns a bearer token into the actor the engine authorizes against.
type TokenValidator interface {
	ValidateToken(tokenString string) (user.Actor, error)
}

type jwtTokenValidator struct {
	tokens *jwt.Service
}

func NewTokenValidator(tokens *jwt.Service) TokenValidator {
	return jwtTokenValidator{tokens: tokens}
}

func (v jwtTokenValidator) ValidateToken(tokenString string) (user.Actor, error) {
	return v.tokens.Parse(tokenString)
}
