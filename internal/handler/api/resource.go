package api

import (
	"net/http"

	reqdto "booking-engine/internal/handler/dto/request"
	resdto "booking-engine/internal/handler/dto/response"
	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	cmds commands.ResourceCommands
	q    queries.ResourceQueries
}

func NewResourceHandler(cmds commands.ResourceCommands, q queries.ResourceQueries) *ResourceHandler {
	return &ResourceHandler{cmds: cmds, q: q}
}

// @Summary Create resource
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateResourceRequest true "Resource"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	id, err := h.cmds.CreateResource(c.Request.Context(), req.ToCommand(), actor)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load resource", nil)
		return
	}
	c.Header("Location", "/api/resources/"+id.String())
	c.JSON(http.StatusCreated, resdto.FromResourceView(view))
}

// @Summary Get resource
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/resources/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// @Summary Update unit rate
// @Description New bookings use the new rate; existing bookings keep the rate they captured.
// @Tags resources
// @Accept json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateRateRequest true "Rate"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/resources/{id}/rate [patch]
func (h *ResourceHandler) UpdateRate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	if err := h.cmds.UpdateRate(c.Request.Context(), id, req.UnitRate, req.Currency, actor); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
