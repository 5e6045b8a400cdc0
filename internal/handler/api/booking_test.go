//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"booking-engine/internal/domain/booking"
	"booking-engine/internal/domain/shared/money"
	"booking-engine/internal/handler/api"
	reqdto "booking-engine/internal/handler/dto/request"
	resdto "booking-engine/internal/handler/dto/response"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/commands"
	"booking-engine/internal/usecase/queries"
	"booking-engine/tests/common/builder"
	"booking-engine/tests/common/httptest"
	"booking-engine/tests/common/testutil"
	commandsmock "booking-engine/tests/mock/commands"
	queriesmock "booking-engine/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	actors       testActors
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	reqdto.RegisterValidators()
	s.router = newTestRouter()
	s.actors = newTestActors()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	auth := s.actors.fakeAuth(true)
	s.router.POST("/bookings", auth, s.handler.Create)
	s.router.GET("/bookings", auth, s.handler.List)
	s.router.GET("/bookings/:id", auth, s.handler.Get)
	s.router.PATCH("/bookings/:id/status", auth, s.handler.UpdateStatus)
	s.router.POST("/bookings/:id/cancel", auth, s.handler.Cancel)
	s.router.PATCH("/bookings/:id/payment-status", auth, s.handler.UpdatePaymentStatus)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     testutil.Mutation
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildView()
	created := &commands.CreateBookingResult{BookingID: returnView.ID}

	bound := []testCaseBooking{
		{name: "party_size boundary OK (1)", mutate: testutil.Field("party_size", 1), expectCode: http.StatusCreated},
		{name: "party_size boundary invalid (0)", mutate: testutil.Field("party_size", 0), expectCode: http.StatusBadRequest},
		{name: "special_requests OK (500 chars)", mutate: testutil.Field("special_requests", strings.Repeat("a", 500)), expectCode: http.StatusCreated},
		{name: "special_requests invalid (501 chars)", mutate: testutil.Field("special_requests", strings.Repeat("a", 501)), expectCode: http.StatusBadRequest},
	}

	missing := []testCaseBooking{
		{name: "missing field: resource_id (required)", mutate: testutil.Field("resource_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: start_date (required)", mutate: testutil.Field("start_date", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: end_date (required)", mutate: testutil.Field("end_date", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: party_size (required)", mutate: testutil.Field("party_size", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: contact_info.name (required)", mutate: testutil.Field("contact_info.name", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: contact_info.email (required)", mutate: testutil.Field("contact_info.email", nil), expectCode: http.StatusBadRequest},
		{name: "optional field: contact_info.phone", mutate: testutil.Field("contact_info.phone", nil), expectCode: http.StatusCreated},
	}

	malformed := []testCaseBooking{
		{name: "start_date not a civil date", mutate: testutil.Field("start_date", "2026-03-10T00:00:00Z"), expectCode: http.StatusBadRequest},
		{name: "end_date impossible day", mutate: testutil.Field("end_date", "2026-02-30"), expectCode: http.StatusBadRequest},
		{name: "contact email malformed", mutate: testutil.Field("contact_info.email", "not-an-email"), expectCode: http.StatusBadRequest},
	}

	allValidationTestCases := [][]testCaseBooking{bound, missing, malformed}

	s.Run("success: returns 201 Created with Location", func() {
		actor := s.actors[customerToken]
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody.ToCommand(""), actor).
			Return(created, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID, actor).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal("720.00", body.TotalAmount)
		s.Equal("pending", body.Status)
		s.Equal("unpaid", body.PaymentStatus)
		s.Equal(returnView.Contact.Email, body.Contact.Email)
		httptest.AssertHeaders(s.T(), rec, map[string]string{
			"Location":            "/api/bookings/" + returnView.ID.String(),
			"Idempotent-Replayed": "",
		})
	})

	s.Run("success: replay returns 200 OK with the original booking", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody.ToCommand("key-1"), gomock.Any()).
			Return(&commands.CreateBookingResult{BookingID: returnView.ID, Replayed: true}, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID, gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, customerToken,
			map[string]string{"Idempotency-Key": "key-1"})

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("error: 400 Bad Request for an oversized idempotency key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, customerToken,
			map[string]string{"Idempotency-Key": strings.Repeat("k", 256)})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, testCaseGroup := range allValidationTestCases {
			for _, tc := range testCaseGroup {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

					if tc.expectCode == http.StatusCreated {
						s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
							Return(created, nil).Times(1)
						s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID, gomock.Any()).
							Return(returnView, nil).Times(1)
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, customerToken)
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
					}
				})
			}
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "inverted date range",
				commandsError:  errs.InvalidRange("dateRange", "end must be after start"),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid request",
			},
			{
				name:           "resource not found",
				commandsError:  errs.Category(errs.ErrNotFound, "resource not found"),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Not found",
			},
			{
				name:           "no capacity left",
				commandsError:  errs.Category(errs.ErrUnavailable, "fully booked"),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Resource unavailable",
			},
			{
				name:           "idempotency key reused with a different payload",
				commandsError:  errs.Category(errs.ErrConflict, "idempotency key reused"),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Conflict",
			},
			{
				name:           "deadline exceeded",
				commandsError:  errs.Category(errs.ErrTimeout, "create booking timed out"),
				expectedStatus: http.StatusGatewayTimeout,
				expectedMsg:    "Operation timed out",
			},
			{
				name:           "store unavailable",
				commandsError:  errs.Category(errs.ErrTransient, "connection reset"),
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "temporarily unavailable",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody.ToCommand(""), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: validation details list the offending fields", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Validation("partySize", "exceeds the resource maximum of 4")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, customerToken)

		httptest.AssertValidationFields(s.T(), rec, errs.FieldError{Field: "partySize", Reason: "exceeds the resource maximum of 4"})
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	returnView := builder.NewBookingBuilder().BuildView()
	url := "/bookings/" + returnView.ID.String()

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID, s.actors[customerToken]).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, customerToken)

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.Reference, response.Reference)
		s.Equal(returnView.StartDate, response.StartDate)
		s.Equal(returnView.Nights, response.Nights)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/invalid-uuid", nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 404 Not Found for someone else's booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID, s.actors[otherToken]).
			Return(nil, errs.Category(errs.ErrNotFound, "booking not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, otherToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	item := &queries.BookingListItem{ID: uuid.New(), Reference: "BKTEST0001", Status: "pending"}

	s.Run("success: defaults to the caller's own bookings", func() {
		actor := s.actors[customerToken]
		s.mockQueries.EXPECT().
			ListByCustomer(gomock.Any(), actor.ID, actor, (*queries.Cursor)(nil), queries.DefaultListLimit).
			Return([]*queries.BookingListItem{item}, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, customerToken)

		var page resdto.Page[resdto.BookingListItemResponse]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &page)
		s.Require().Len(page.Items, 1)
		s.Equal(item.ID, page.Items[0].ID)
		s.Empty(page.NextCursor)
	})

	s.Run("success: staff can list another customer", func() {
		customerID := uuid.New()
		s.mockQueries.EXPECT().
			ListByCustomer(gomock.Any(), customerID, s.actors[operatorToken], gomock.Any(), 5).
			Return(nil, &queries.Cursor{After: "more"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings?limit=5&customer_id="+customerID.String(), nil, operatorToken)

		var page resdto.Page[resdto.BookingListItemResponse]
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &page)
		s.Equal("more", page.NextCursor)
	})

	s.Run("error: 403 Forbidden for a customer listing someone else", func() {
		s.mockQueries.EXPECT().ListByCustomer(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil, errs.Category(errs.ErrAuthorization, "not your bookings")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings?customer_id="+uuid.NewString(), nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 400 Bad Request for a malformed customer_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?customer_id=abc", nil, operatorToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdateStatus() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/status"

	s.Run("success: returns the transition", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), commands.UpdateStatusRequest{
			BookingID: bookingID,
			Target:    booking.StatusConfirmed,
		}, s.actors[operatorToken]).
			Return(&commands.UpdateStatusResult{
				BookingID: bookingID,
				From:      booking.StatusPending,
				To:        booking.StatusConfirmed,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "confirmed"}, operatorToken)

		var response resdto.StatusChangeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("pending", response.From)
		s.Equal("confirmed", response.To)
		s.Nil(response.RefundAmount)
		s.False(response.RefundIssued)
	})

	s.Run("error: 400 Bad Request for an unknown status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "archived"}, operatorToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 409 Conflict for an illegal transition", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, booking.IllegalTransition("completed", "pending")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "pending"}, operatorToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Illegal status transition")
	})

	s.Run("error: 403 Forbidden when a customer confirms", func() {
		s.mockCommands.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), s.actors[customerToken]).
			Return(nil, errs.Category(errs.ErrAuthorization, "staff only")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"status": "confirmed"}, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestCancel() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"
	refund := money.New(decimal.RequireFromString("540"), "USD")

	s.Run("success: reports the refund", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, "change of plans", s.actors[customerToken]).
			Return(&commands.UpdateStatusResult{
				BookingID:    bookingID,
				From:         booking.StatusConfirmed,
				To:           booking.StatusCancelled,
				RefundAmount: &refund,
				RefundIssued: true,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"reason": "change of plans"}, customerToken)

		var response resdto.StatusChangeResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cancelled", response.To)
		s.Require().NotNil(response.RefundAmount)
		s.Equal("540.00", *response.RefundAmount)
		s.True(response.RefundIssued)
	})

	s.Run("success: the body is optional", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, "", gomock.Any()).
			Return(&commands.UpdateStatusResult{
				BookingID: bookingID,
				From:      booking.StatusPending,
				To:        booking.StatusCancelled,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, customerToken)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 409 Conflict when already cancelled", func() {
		s.mockCommands.EXPECT().CancelBooking(gomock.Any(), bookingID, gomock.Any(), gomock.Any()).
			Return(nil, booking.IllegalTransition("cancelled", "cancelled")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, customerToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Illegal status transition")
	})
}

// ================================================================================
// TestUpdatePaymentStatus
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdatePaymentStatus() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/payment-status"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().UpdatePaymentStatus(gomock.Any(), bookingID, booking.PaymentPaid, s.actors[operatorToken]).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"payment_status": "paid"}, operatorToken)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for an unknown payment status", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url,
			map[string]any{"payment_status": "comped"}, operatorToken)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
