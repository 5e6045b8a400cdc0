package api

import (
	"net/http"
	"strconv"

	resdto "booking-engine/internal/handler/dto/response"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	cmds commands.AvailabilityCommands
	q    queries.AvailabilityQueries
}

func NewAvailabilityHandler(cmds commands.AvailabilityCommands, q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{cmds: cmds, q: q}
}

// @Summary Check availability
// @Description Reports whether the resource has the requested units free on every night of [start_date, end_date).
// @Tags availability
// @Produce json
// @Param id path string true "Resource ID"
// @Param start_date query string true "First night (YYYY-MM-DD)"
// @Param end_date query string true "Checkout date (YYYY-MM-DD)"
// @Param units query int false "Units required (default 1)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/resources/{id}/availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	units := 0
	if v := c.Query("units"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			abortInvalidRequest(c, err)
			return
		}
		units = n
	}
	view, err := h.q.Check(c.Request.Context(), id, c.Query("start_date"), c.Query("end_date"), units)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Rebuild availability for one resource
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {array} resdto.RebuildResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/resources/{id}/availability/rebuild [post]
func (h *AvailabilityHandler) RebuildResource(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	h.rebuild(c, &id)
}

// @Summary Rebuild availability for every resource
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RebuildResponse
// @Failure 403 {object} httperr.Response
// @Router /api/availability/rebuild [post]
func (h *AvailabilityHandler) RebuildAll(c *gin.Context) {
	h.rebuild(c, nil)
}

func (h *AvailabilityHandler) rebuild(c *gin.Context, resourceID *uuid.UUID) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	results, err := h.cmds.Rebuild(c.Request.Context(), resourceID, actor)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRebuildResults(results))
}
