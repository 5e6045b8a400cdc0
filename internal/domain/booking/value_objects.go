package booking

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"booking-engine/internal/domain/user"
	"booking-engine/internal/pkg/errs"
)

const (
	MaxSpecialRequestsLength    = 500
	MaxCancellationReasonLength = 500
	maxContactFieldLength       = 255
)

type ContactInfo struct {
	Name  string
	Email string
	Phone string
}

func NewContactInfo(name, email, phone string) (ContactInfo, error) {
	c := ContactInfo{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
		Phone: strings.TrimSpace(phone),
	}

	var fields []errs.FieldError
	if c.Name == "" {
		fields = append(fields, errs.FieldError{Field: "contactInfo.name", Reason: "is required"})
	} else if len(c.Name) > maxContactFieldLength {
		fields = append(fields, errs.FieldError{Field: "contactInfo.name", Reason: "is too long"})
	}
	if c.Email == "" {
		fields = append(fields, errs.FieldError{Field: "contactInfo.email", Reason: "is required"})
	} else if email, err := user.NewEmail(c.Email); err != nil {
		fields = append(fields, errs.FieldError{Field: "contactInfo.email", Reason: "is not a valid address"})
	} else {
		c.Email = email.Value()
	}
	if len(c.Phone) > 32 {
		fields = append(fields, errs.FieldError{Field: "contactInfo.phone", Reason: "is too long"})
	}
	if len(fields) > 0 {
		return ContactInfo{}, errs.NewValidation(fields...)
	}
	return c, nil
}

type SpecialRequests struct {
	value string
}

func NewSpecialRequests(s string) (SpecialRequests, error) {
	t := strings.TrimSpace(s)
	if utf8.RuneCountInString(t) > MaxSpecialRequestsLength {
		return SpecialRequests{}, errs.Validation("specialRequests", "exceeds 500 characters")
	}
	return SpecialRequests{value: t}, nil
}

func (s SpecialRequests) String() string { return s.value }

// NewReference builds the human-facing booking code: BK + base36 time + 8 hex chars.
func NewReference(now time.Time) string {
	var buf [4]byte
	_, _ = rand.Read(buf[:])
	return "BK" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)+hex.EncodeToString(buf[:]))
}
