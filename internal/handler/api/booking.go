package api

import (
	"errors"
	"net/http"

	"booking-engine/internal/domain/booking"
	reqdto "booking-engine/internal/handler/dto/request"
	resdto "booking-engine/internal/handler/dto/response"
	"booking-engine/internal/handler/httperr"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "Idempotent-Replayed"
	maxIdempotencyKeyLen = 255
)

var errIdempotencyKeyTooLong = errors.New("idempotency key exceeds 255 characters")

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Reserve a resource for a date range. Repeating a request with the same Idempotency-Key replays the original booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Success 200 {object} resdto.BookingResponse "replayed"
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	key := c.GetHeader(idempotencyKeyHeader)
	if len(key) > maxIdempotencyKeyLen {
		abortInvalidRequest(c, errIdempotencyKeyTooLong)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}

	result, err := h.cmds.CreateBooking(c.Request.Context(), req.ToCommand(key), actor)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.BookingID, actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}

	c.Header("Location", "/api/bookings/"+result.BookingID.String())
	status := http.StatusCreated
	if result.Replayed {
		c.Header(replayedHeader, "true")
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id, actor)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description Lists the caller's bookings newest first. Staff may pass customer_id.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param customer_id query string false "Customer ID (staff only)"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.Page[resdto.BookingListItemResponse]
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /api/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	customerID := actor.ID
	if v := c.Query("customer_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			abortInvalidRequest(c, err)
			return
		}
		customerID = id
	}
	cursor, limit, ok := pageParams(c)
	if !ok {
		return
	}
	items, next, err := h.q.ListByCustomer(c.Request.Context(), customerID, actor, cursor, limit)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingList(items, next))
}

// @Summary Update booking status
// @Description Staff move a booking through its lifecycle; customers may only cancel their own.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingStatusRequest true "Target status"
// @Success 200 {object} resdto.StatusChangeResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	result, err := h.cmds.UpdateStatus(c.Request.Context(), commands.UpdateStatusRequest{
		BookingID: id,
		Target:    booking.Status(req.Status),
		Reason:    req.Reason,
	}, actor)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStatusChange(result))
}

// @Summary Cancel booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Cancellation reason"
// @Success 200 {object} resdto.StatusChangeResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortInvalidRequest(c, err)
			return
		}
	}
	result, err := h.cmds.CancelBooking(c.Request.Context(), id, req.Reason, actor)
	if err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStatusChange(result))
}

// @Summary Update payment status
// @Tags bookings
// @Accept json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdatePaymentStatusRequest true "Target payment status"
// @Success 204 "No Content"
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/bookings/{id}/payment-status [patch]
func (h *BookingHandler) UpdatePaymentStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortInvalidRequest(c, err)
		return
	}
	if err := h.cmds.UpdatePaymentStatus(c.Request.Context(), id, booking.PaymentStatus(req.PaymentStatus), actor); err != nil {
		abortWithUsecaseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
