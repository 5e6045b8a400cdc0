package review

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"booking-engine/internal/pkg/errs"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MinContentLength = 10
	MaxContentLength = 1000
	MaxReplyLength   = 1000
	MaxReasonLength  = 500
)

var (
	ErrInvalidRating   = errs.New("rating must be between 1 and 5")
	ErrEmptyRatings    = errs.New("at least one category must be rated")
	ErrContentTooShort = errs.New("review content is too short")
	ErrContentTooLong  = errs.New("review content is too long")
)

// Ratings maps each rated category to a value in [1,5]. Categories the
// customer skipped are simply absent.
type Ratings struct {
	values map[Category]int
}

func NewRatings(in map[string]int) (Ratings, error) {
	if len(in) == 0 {
		return Ratings{}, errs.Mark(errs.Validation("ratings", "at least one category must be rated"), ErrEmptyRatings)
	}
	values := make(map[Category]int, len(in))
	for k, v := range in {
		c := Category(strings.ToLower(strings.TrimSpace(k)))
		if !c.IsValid() {
			return Ratings{}, errs.Validation("ratings."+k, "unknown rating category")
		}
		if v < MinRating || v > MaxRating {
			return Ratings{}, errs.Mark(errs.Validation("ratings."+k, "must be between 1 and 5"), ErrInvalidRating)
		}
		values[c] = v
	}
	return Ratings{values: values}, nil
}

func (r Ratings) Get(c Category) (int, bool) {
	v, ok := r.values[c]
	return v, ok
}

func (r Ratings) Map() map[Category]int {
	out := make(map[Category]int, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Overall is the mean of the provided categories rounded to the nearest 0.5.
func (r Ratings) Overall() float64 {
	if len(r.values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range r.values {
		sum += v
	}
	mean := float64(sum) / float64(len(r.values))
	return RoundHalf(mean)
}

func RoundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}

type Content struct {
	text string
}

func NewContent(s string) (Content, error) {
	t := strings.TrimSpace(s)
	n := utf8.RuneCountInString(t)
	if n < MinContentLength {
		return Content{}, errs.Mark(errs.Validation("content", "must be at least 10 characters"), ErrContentTooShort)
	}
	if n > MaxContentLength {
		return Content{}, errs.Mark(errs.Validation("content", "exceeds 1000 characters"), ErrContentTooLong)
	}
	return Content{text: t}, nil
}

func (c Content) String() string { return c.text }

func normalizeReply(s string) (string, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return "", errs.Validation("reply", "cannot be empty")
	}
	if utf8.RuneCountInString(t) > MaxReplyLength {
		return "", errs.Validation("reply", fmt.Sprintf("exceeds %d characters", MaxReplyLength))
	}
	return t, nil
}
