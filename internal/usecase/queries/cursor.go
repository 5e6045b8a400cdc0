package queries

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"booking-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

var ErrInvalidCursor = errs.Validation("cursor", "is malformed")

type Cursor struct {
	After string `json:"after,omitempty"`
}

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	cursorData := fmt.Sprintf("%s:%d-%s", CursorVersionV1, t.UnixMicro(), id.String())
	return base64.URLEncoding.EncodeToString([]byte(cursorData))
}

func DecodeAfterCursor(cursor string) (time.Time, uuid.UUID, error) {
	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}

	micros, rest, ok := strings.Cut(payload, "-")
	if !ok {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}
	ts, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}
	id, err := uuid.Parse(rest)
	if err != nil {
		return time.Time{}, uuid.Nil, ErrInvalidCursor
	}
	return time.UnixMicro(ts), id, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// Keyset is the position after which the next page starts; nil means first page.
type Keyset struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

func decodeKeyset(cursor *Cursor) (*Keyset, error) {
	if cursor == nil || cursor.After == "" {
		return nil, nil
	}
	t, id, err := DecodeAfterCursor(cursor.After)
	if err != nil {
		return nil, err
	}
	return &Keyset{CreatedAt: t, ID: id}, nil
}

// paginate trims the limit+1 probe row and derives the next cursor from the
// last row kept.
func paginate[T any](rows []*T, limit int, key func(*T) (time.Time, uuid.UUID)) ([]*T, *Cursor) {
	if len(rows) <= limit {
		return rows, nil
	}
	rows = rows[:limit]
	t, id := key(rows[limit-1])
	return rows, &Cursor{After: EncodeAfterCursor(t, id)}
}
