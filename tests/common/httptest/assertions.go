//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"booking-engine/internal/pkg/errs"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// errorBody mirrors httperr.Response on the wire.
type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail struct {
		Fields []errs.FieldError `json:"fields"`
	} `json:"detail"`
}

// AssertSuccessResponse checks the status and decodes a 2xx body into target
// when target is non-nil.
func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equalf(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if target == nil || expectedStatus < 200 || expectedStatus >= 300 {
		return
	}
	assert.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), target), "decode body: %s", w.Body.String())
}

// AssertErrorResponse checks the status and that the error message contains
// expectedMsg. An empty expectedMsg only checks the body is an error body.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()

	body := decodeError(t, w)
	assert.Equalf(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	if expectedMsg != "" {
		assert.Contains(t, body.Error.Message, expectedMsg)
	}
}

// AssertValidationFields checks a 400 response names exactly the given
// invalid fields, in order.
func AssertValidationFields(t *testing.T, w *httptest.ResponseRecorder, fields ...errs.FieldError) {
	t.Helper()

	body := decodeError(t, w)
	assert.Equalf(t, 400, w.Code, "unexpected status, body: %s", w.Body.String())
	assert.Equal(t, fields, body.Detail.Fields)
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s", k)
	}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &body), "decode error body: %s", w.Body.String())
	return body
}
