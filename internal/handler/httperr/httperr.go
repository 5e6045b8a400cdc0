package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the logging middleware stores the
// request id under.
const RequestIDKey = "request_id"

// Response is the error body every endpoint returns.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail    any    `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// AbortWithError writes the error body and records err on the context so
// ErrorHandler can log the cause. An empty msg falls back to the status text.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("httperr: AbortWithError called with nil error")
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	resp := Response{Status: status, Detail: detail, RequestID: c.GetString(RequestIDKey)}
	resp.Error.Message = msg

	_ = c.Error(gin.Error{Err: err, Type: gin.ErrorTypePublic, Meta: resp})
	c.AbortWithStatusJSON(status, resp)
}
