package api

import (
	"context"
	"net/http"

	domreview "booking-engine/internal/domain/review"
	"booking-engine/internal/domain/user"
	reqdto "booking-engine/internal/handler/dto/request"
	resdto "booking-engine/internal/handler/dto/response"
	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/handler/middleware"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	cmds commands.ReviewCommands
	q    queries.ReviewQueries
}

func NewReviewHandler(cmds commands.ReviewCommands, q queries.ReviewQueries) *ReviewHandler {
	return &ReviewHandler{cmds: cmds, q: q}
}

// @Summary Submit review
// @Description Review a completed booking. New reviews start pending moderation.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitReviewRequest true "Review"
// @Success 201 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req reqdto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	result, err := h.cmds.SubmitReview(c.Request.Context(), req.ToCommand(), actor)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), result.ReviewID, actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load review", nil)
		return
	}
	c.Header("Location", "/api/reviews/"+result.ReviewID.String())
	c.JSON(http.StatusCreated, resdto.FromReviewView(view))
}

// @Summary Get review
// @Description Approved reviews are public; others are visible to their author and staff.
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	actor, _ := middleware.GetActor(c)
	view, err := h.q.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewView(view))
}

// @Summary Moderate review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body reqdto.ModerateReviewRequest true "Moderation action"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reviews/{id}/moderation [post]
func (h *ReviewHandler) Moderate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	if _, err := h.cmds.ModerateReview(c.Request.Context(), id, domreview.ModerationAction(req.Action), req.Reason, actor); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	h.respondWithReview(c, http.StatusOK, id, actor)
}

// @Summary Vote on review
// @Description Like or dislike an approved review. Repeating a vote is a no-op; switching moves the count.
// @Tags reviews
// @Accept json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body reqdto.VoteReviewRequest true "Vote"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reviews/{id}/votes [post]
func (h *ReviewHandler) Vote(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.VoteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	if err := h.cmds.Rate(c.Request.Context(), id, domreview.VoteAction(req.Action), actor); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reply to review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body reqdto.ReplyRequest true "Reply"
// @Success 201 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reviews/{id}/reply [post]
func (h *ReviewHandler) PostReply(c *gin.Context) {
	h.reply(c, http.StatusCreated, h.cmds.PostReply)
}

// @Summary Edit review reply
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body reqdto.ReplyRequest true "Reply"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reviews/{id}/reply [put]
func (h *ReviewHandler) EditReply(c *gin.Context) {
	h.reply(c, http.StatusOK, h.cmds.EditReply)
}

func (h *ReviewHandler) reply(c *gin.Context, status int, apply func(context.Context, uuid.UUID, string, user.Actor) error) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	if err := apply(c.Request.Context(), id, req.Text, actor); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	h.respondWithReview(c, status, id, actor)
}

func (h *ReviewHandler) respondWithReview(c *gin.Context, status int, id uuid.UUID, actor user.Actor) {
	view, err := h.q.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load review", nil)
		return
	}
	c.JSON(status, resdto.FromReviewView(view))
}

// @Summary List resource reviews
// @Description Approved reviews for a resource, newest first, with keyset pagination.
// @Tags reviews
// @Produce json
// @Param id path string true "Resource ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.Page[resdto.ReviewResponse]
// @Failure 400 {object} httperr.Response
// @Router /api/resources/{id}/reviews [get]
func (h *ReviewHandler) ListByResource(c *gin.Context) {
	resourceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	cursor, limit, ok := pageParams(c)
	if !ok {
		return
	}
	items, next, err := h.q.ListByResource(c.Request.Context(), resourceID, cursor, limit)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewList(items, next))
}

// @Summary Resource rating summary
// @Tags reviews
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.RatingSummaryResponse
// @Failure 400 {object} httperr.Response
// @Router /api/resources/{id}/rating-summary [get]
func (h *ReviewHandler) RatingSummary(c *gin.Context) {
	resourceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	summary, err := h.q.GetRatingSummary(c.Request.Context(), resourceID)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRatingSummaryView(summary))
}

// @Summary Recompute rating summary
// @Description Rebuilds the summary from approved reviews.
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.RatingSummaryResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/resources/{id}/rating-summary/recompute [post]
func (h *ReviewHandler) RecomputeSummary(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	resourceID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	summary, err := h.cmds.RecomputeSummary(c.Request.Context(), resourceID, actor)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRatingSummaryView(queries.NewRatingSummaryView(summary)))
}
