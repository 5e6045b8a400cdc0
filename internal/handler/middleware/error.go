package middleware

import (
	"log/slog"
	"net/http"

	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLines = 12

// ErrorHandler logs server-side failures recorded by httperr.AbortWithError
// and writes a body for handlers that aborted without one.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, ginErr := range c.Errors.ByType(gin.ErrorTypePublic) {
			resp, ok := ginErr.Meta.(httperr.Response)
			if !ok || resp.Status < http.StatusInternalServerError {
				continue
			}
			logger.Error("request failed",
				"request_id", resp.RequestID,
				"method", c.Request.Method,
				"path", c.FullPath(),
				"status", resp.Status,
				"error", ginErr.Err,
				"stack", errs.ExtractStackLines(ginErr.Err, stackLines),
			)
		}

		if c.Writer.Written() {
			return
		}
		// newest error wins
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Writer.WriteHeaderNow()
			return
		}
		writeInternal(c)
	}
}

func CustomRecovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("recovered from panic",
					"panic", rec,
					"request_id", c.GetString(httperr.RequestIDKey),
					"path", c.Request.URL.Path,
				)
				writeInternal(c)
				c.Abort()
			}
		}()
		c.Next()
	}
}

func writeInternal(c *gin.Context) {
	resp := httperr.Response{Status: http.StatusInternalServerError, RequestID: c.GetString(httperr.RequestIDKey)}
	resp.Error.Message = "Internal server error"
	c.JSON(resp.Status, resp)
}
