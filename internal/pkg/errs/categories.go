package errs

import "strings"

// Error categories surfaced to callers. Concrete errors are marked with one
// (or more) of these and matched with Is.
var (
	ErrValidation        = New("validation error")
	ErrInvalidRange      = New("invalid date range")
	ErrInvalidInput      = New("invalid input")
	ErrUnavailable       = New("resource unavailable for the requested dates")
	ErrConflict          = New("concurrent modification conflict")
	ErrIllegalTransition = New("illegal status transition")
	ErrAuthorization     = New("actor is not allowed to perform this operation")
	ErrNotFound          = New("not found")
	ErrNotEligible       = New("booking is not eligible for review")
	ErrDuplicateReview   = New("review already exists for this booking")
	ErrTimeout           = New("operation timed out")
	// ErrTransient marks infrastructure failures that may succeed on retry.
	ErrTransient = New("transient infrastructure failure")
)

type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func Validation(field, reason string) error {
	return NewValidation(FieldError{Field: field, Reason: reason})
}

func NewValidation(fields ...FieldError) error {
	return Mark(&ValidationError{Fields: fields}, ErrValidation)
}

// InvalidRange is a validation error that also matches ErrInvalidRange.
func InvalidRange(field, reason string) error {
	return Mark(Validation(field, reason), ErrInvalidRange)
}

// InvalidInput is a validation error that also matches ErrInvalidInput.
func InvalidInput(field, reason string) error {
	return Mark(Validation(field, reason), ErrInvalidInput)
}

func FieldDetails(err error) []FieldError {
	var v *ValidationError
	if As(err, &v) {
		return v.Fields
	}
	return nil
}

// Category wraps a message under one of the sentinel categories.
func Category(category error, msg string) error {
	return Mark(New(msg), category)
}
