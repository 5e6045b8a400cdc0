package api

import (
	"net/http"

	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type errorRule struct {
	category error
	status   int
	message  string
}

// Order matters: ErrDuplicateReview is also a conflict, ErrInvalidRange is
// also a validation error.
var errorRules = []errorRule{
	{errs.ErrValidation, http.StatusBadRequest, "Invalid request"},
	{errs.ErrAuthorization, http.StatusForbidden, "Forbidden"},
	{errs.ErrNotFound, http.StatusNotFound, "Not found"},
	{errs.ErrUnavailable, http.StatusConflict, "Resource unavailable for the requested dates"},
	{errs.ErrDuplicateReview, http.StatusConflict, "Review already exists for this booking"},
	{errs.ErrIllegalTransition, http.StatusConflict, "Illegal status transition"},
	{errs.ErrConflict, http.StatusConflict, "Conflict"},
	{errs.ErrNotEligible, http.StatusUnprocessableEntity, "Booking is not eligible for review"},
	{errs.ErrTimeout, http.StatusGatewayTimeout, "Operation timed out"},
	{errs.ErrTransient, http.StatusServiceUnavailable, "Service temporarily unavailable"},
}

type fieldsDetail struct {
	Fields []errs.FieldError `json:"fields"`
}

// abortWithUsecaseError translates an engine error category into a response.
func abortWithUsecaseError(c *gin.Context, err error) {
	for _, r := range errorRules {
		if !errs.Is(err, r.category) {
			continue
		}
		var detail any
		if r.category == errs.ErrValidation {
			if fields := errs.FieldDetails(err); len(fields) > 0 {
				detail = fieldsDetail{Fields: fields}
			}
		}
		httperr.AbortWithError(c, r.status, err, r.message, detail)
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
}

func abortInvalidRequest(c *gin.Context, err error) {
	httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
}
