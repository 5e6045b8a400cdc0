package api

import (
	"errors"
	"net/http"
	"strconv"

	"booking-engine/internal/domain/user"
	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/handler/middleware"
	"booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errUnauthenticated = errors.New("no authenticated actor")

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func requireActor(c *gin.Context) (user.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return user.Actor{}, false
	}
	return actor, true
}

// pageParams reads the keyset query parameters shared by list endpoints.
func pageParams(c *gin.Context) (*queries.Cursor, int, bool) {
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			abortInvalidRequest(c, err)
			return nil, 0, false
		}
		limit = queries.ValidateLimit(n)
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}
	return cursor, limit, true
}
