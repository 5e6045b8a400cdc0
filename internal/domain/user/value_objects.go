package user

import (
	"regexp"
	"strings"

	"booking-engine/internal/pkg/errs"
)

var (
	ErrInvalidEmail = errs.New("invalid email address")
	ErrInvalidRole  = errs.New("invalid role")
)

// RFC 5321 path limit.
const maxEmailLength = 254

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email is a contact address with its domain lower-cased.
type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxEmailLength || !emailPattern.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	at := strings.LastIndexByte(s, '@')
	return Email{value: s[:at] + "@" + strings.ToLower(s[at+1:])}, nil
}

func (e Email) Value() string {
	return e.value
}
