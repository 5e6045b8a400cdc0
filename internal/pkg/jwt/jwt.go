package jwt

import (
	"errors"
	"time"

	"booking-engine/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer = "booking-engine"
	leeway = 5 * time.Second
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims carries the actor: the subject is the user id, role is the engine role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey []byte
	ttl       time.Duration
	parser    *jwt.Parser
}

func NewService(secretKey string, ttl time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		parser: jwt.NewParser(
			jwt.WithIssuer(issuer),
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(leeway),
		),
	}
}

// Issue signs an access token for actor with the configured lifetime.
func (s *Service) Issue(actor user.Actor) (string, error) {
	return s.IssueWithTTL(actor, s.ttl)
}

func (s *Service) IssueWithTTL(actor user.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: actor.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actor.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
}

// Parse verifies tokenString and returns the actor it names.
func (s *Service) Parse(tokenString string) (user.Actor, error) {
	var claims Claims
	_, err := s.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return user.Actor{}, ErrExpiredToken
		}
		return user.Actor{}, ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil || id == uuid.Nil {
		return user.Actor{}, ErrInvalidToken
	}
	role, err := user.NewRole(claims.Role)
	if err != nil {
		return user.Actor{}, ErrInvalidToken
	}
	return user.Actor{ID: id, Role: role}, nil
}
