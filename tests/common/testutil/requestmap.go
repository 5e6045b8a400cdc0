//go:build unit || e2e

// Package testutil turns request DTOs into JSON maps that table tests can
// bend into invalid shapes.
package testutil

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

// Mutation edits a decoded request body in place.
type Mutation func(m map[string]any)

// Field sets key to value, or removes it when value is nil. Dotted keys
// such as "contact_info.email" reach into nested objects.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		path := strings.Split(key, ".")
		for _, p := range path[:len(path)-1] {
			next, ok := m[p].(map[string]any)
			if !ok {
				next = map[string]any{}
				m[p] = next
			}
			m = next
		}
		last := path[len(path)-1]
		if value == nil {
			delete(m, last)
			return
		}
		m[last] = value
	}
}

// DtoMap round-trips v through JSON and applies muts to the result.
func DtoMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, mut := range muts {
		mut(m)
	}
	return m
}
