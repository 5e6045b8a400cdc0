//go:build unit || e2e

// Package httptest drives a gin router in-process and asserts on the
// engine's JSON responses.
package httptest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

// PerformRequest sends body as JSON with an optional bearer token.
func PerformRequest(t *testing.T, router *gin.Engine, method, path string, body any, authToken string) *httptest.ResponseRecorder {
	t.Helper()
	return PerformRequestWithHeaders(t, router, method, path, body, authToken, nil)
}

// PerformRequestWithHeaders is PerformRequest plus extra headers such as
// Idempotency-Key. String and []byte bodies are sent verbatim so tests can
// post malformed JSON.
func PerformRequestWithHeaders(t *testing.T, router *gin.Engine, method, path string, body any, authToken string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, encodeBody(t, body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func encodeBody(t *testing.T, body any) io.Reader {
	t.Helper()
	switch b := body.(type) {
	case nil:
		return http.NoBody
	case string:
		return bytes.NewBufferString(b)
	case []byte:
		return bytes.NewBuffer(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err, "encode request body")
		return bytes.NewBuffer(raw)
	}
}

// DecodeResponseBody decodes body into target, failing the test on error.
func DecodeResponseBody(t *testing.T, body *bytes.Buffer, target any) error {
	t.Helper()
	err := json.NewDecoder(body).Decode(target)
	require.NoError(t, err, "decode response body")
	return err
}
