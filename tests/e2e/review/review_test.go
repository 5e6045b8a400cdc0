//go:build e2e

package review_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"booking-engine/internal/domain/shared/daterange"
	"booking-engine/internal/domain/user"
	"booking-engine/internal/handler/dto/request"
	"booking-engine/internal/handler/dto/response"
	"booking-engine/tests/common/authtest"
	"booking-engine/tests/common/builder"
	"booking-engine/tests/common/dbtest"
	"booking-engine/tests/common/httptest"
	"booking-engine/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reviewsURL         = "/api/reviews"
	reviewURL          = "/api/reviews/%s"
	moderationURL      = "/api/reviews/%s/moderation"
	votesURL           = "/api/reviews/%s/votes"
	replyURL           = "/api/reviews/%s/reply"
	resourceReviewsURL = "/api/resources/%s/reviews"
	ratingSummaryURL   = "/api/resources/%s/rating-summary"
)

type ReviewSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *ReviewSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func TestReviewSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReviewSuite))
}

// completedStay books, pays, confirms and completes a stay for customer.
func (s *ReviewSuite) completedStay(t *testing.T, customer user.Actor, resourceID uuid.UUID) uuid.UUID {
	t.Helper()
	start := time.Now().UTC().AddDate(0, 0, 10)
	body := builder.NewBookingBuilder().
		ForResource(resourceID).
		Dates(start.Format(daterange.DateLayout), start.AddDate(0, 0, 2).Format(daterange.DateLayout)).
		BuildCreateRequestDTO()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings", body, s.jwt.TokenFor(t, customer))
	var created response.BookingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)

	staff := s.jwt.TokenFor(t, authtest.Operator())
	w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf("/api/bookings/%s/payment-status", created.ID),
		request.UpdatePaymentStatusRequest{PaymentStatus: "paid"}, staff)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	for _, status := range []string{"confirmed", "completed"} {
		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf("/api/bookings/%s/status", created.ID),
			request.UpdateBookingStatusRequest{Status: status}, staff)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}
	return created.ID
}

func (s *ReviewSuite) submit(t *testing.T, customer user.Actor, bookingID uuid.UUID, ratings map[string]int) response.ReviewResponse {
	t.Helper()
	body := builder.NewReviewBuilder().ForBooking(bookingID).WithRatings(ratings).BuildSubmitRequestDTO()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, body, s.jwt.TokenFor(t, customer))
	var created response.ReviewResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	return created
}

func (s *ReviewSuite) moderate(t *testing.T, reviewID uuid.UUID, action, reason string) {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(moderationURL, reviewID),
		request.ModerateReviewRequest{Action: action, Reason: reason}, s.jwt.TokenFor(t, authtest.Operator()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func (s *ReviewSuite) summary(t *testing.T, resourceID uuid.UUID) response.RatingSummaryResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(ratingSummaryURL, resourceID), nil, "")
	var got response.RatingSummaryResponse
	httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
	return got
}

func (s *ReviewSuite) TestSubmitReview() {
	s.Run("completed stay creates a pending review", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, builder.NewResourceBuilder())
		customer := authtest.Customer()
		bookingID := s.completedStay(t, customer, resourceID)

		created := s.submit(t, customer, bookingID, map[string]int{"cleanliness": 5, "location": 4, "value": 4})

		expected := response.ReviewResponse{
			ResourceID:    resourceID,
			BookingID:     &bookingID,
			CustomerID:    customer.ID,
			Ratings:       map[string]int{"cleanliness": 5, "location": 4, "value": 4},
			OverallRating: 4.5,
			Content:       "Quiet room, friendly staff and a great view.",
			Status:        "pending",
		}
		opts := cmp.Options{cmpopts.IgnoreFields(response.ReviewResponse{}, "ID", "CreatedAt", "UpdatedAt")}
		if diff := cmp.Diff(expected, created, opts); diff != "" {
			t.Errorf("review mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 1, dbtest.CountOutboxEvents(t, s.DB, "review.submitted"))

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(reviewURL, created.ID), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Not found")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(reviewURL, created.ID), nil, s.jwt.TokenFor(t, customer))
		assert.Equal(t, http.StatusOK, w.Code, "authors see their pending review")
	})

	s.Run("one review per booking", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, builder.NewResourceBuilder())
		customer := authtest.Customer()
		bookingID := s.completedStay(t, customer, resourceID)
		s.submit(t, customer, bookingID, map[string]int{"value": 4})

		body := builder.NewReviewBuilder().ForBooking(bookingID).BuildSubmitRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, body, s.jwt.TokenFor(t, customer))
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Review already exists")
	})

	s.Run("stay must be completed and owned", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, builder.NewResourceBuilder().WithCapacity(3))
		customer := authtest.Customer()
		bookingID := s.completedStay(t, customer, resourceID)

		body := builder.NewReviewBuilder().ForBooking(bookingID).BuildSubmitRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, body, s.jwt.TokenFor(t, authtest.Customer()))
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "not eligible")

		body = builder.NewReviewBuilder().ForBooking(uuid.New()).BuildSubmitRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, body, s.jwt.TokenFor(t, customer))
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "not eligible")
	})

	s.Run("invalid ratings", func() {
		t := s.T()
		body := builder.NewReviewBuilder().WithRatings(map[string]int{"value": 7}).BuildSubmitRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL, body, s.jwt.TokenFor(t, authtest.Customer()))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request")
	})
}

func (s *ReviewSuite) TestModerationKeepsSummaryInStep() {
	s.Run("approve then reject", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, builder.NewResourceBuilder().WithCapacity(3))

		first := authtest.Customer()
		second := authtest.Customer()
		r1 := s.submit(t, first, s.completedStay(t, first, resourceID), map[string]int{"cleanliness": 5, "value": 4})
		r2 := s.submit(t, second, s.completedStay(t, second, resourceID), map[string]int{"cleanliness": 3})

		assert.Zero(t, s.summary(t, resourceID).TotalReviews, "pending reviews do not count")

		s.moderate(t, r1.ID, "approve", "")
		s.moderate(t, r2.ID, "approve", "")

		got := s.summary(t, resourceID)
		assert.Equal(t, 2, got.TotalReviews)
		assert.Equal(t, 3.75, got.AverageRating)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 0, 5: 1}, got.Distribution)
		assert.Equal(t, map[string]float64{"cleanliness": 4, "value": 4}, got.CategoryAverages)

		s.moderate(t, r2.ID, "reject", "not about the stay")
		got = s.summary(t, resourceID)
		assert.Equal(t, 1, got.TotalReviews)
		assert.Equal(t, 4.5, got.AverageRating)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(resourceReviewsURL, resourceID), nil, "")
		var page response.Page[response.ReviewResponse]
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		require.Len(t, page.Items, 1)
		assert.Equal(t, r1.ID, page.Items[0].ID)
	})

	s.Run("reject needs a reason", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, builder.NewResourceBuilder())
		customer := authtest.Customer()
		created := s.submit(t, customer, s.completedStay(t, customer, resourceID), map[string]int{"value": 2})

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(moderationURL, created.ID),
			request.ModerateReviewRequest{Action: "reject"}, s.jwt.TokenFor(t, authtest.Operator()))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request")
	})

	s.Run("customers cannot moderate", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(moderationURL, uuid.New()),
			request.ModerateReviewRequest{Action: "approve"}, s.jwt.TokenFor(t, authtest.Customer()))
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "Forbidden")
	})
}

func (s *ReviewSuite) TestVotesAndReplies() {
	s.Run("votes count once per voter", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, builder.NewResourceBuilder())
		customer := authtest.Customer()
		created := s.submit(t, customer, s.completedStay(t, customer, resourceID), map[string]int{"value": 5})
		voter := s.jwt.TokenFor(t, authtest.Customer())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(votesURL, created.ID),
			request.VoteReviewRequest{Action: "like"}, voter)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Not found")

		s.moderate(t, created.ID, "approve", "")

		for range 2 {
			w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(votesURL, created.ID),
				request.VoteReviewRequest{Action: "like"}, voter)
			require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
		}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(votesURL, created.ID),
			request.VoteReviewRequest{Action: "dislike"}, s.jwt.TokenFor(t, authtest.Customer()))
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(reviewURL, created.ID), nil, "")
		var got response.ReviewResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		assert.Equal(t, 1, got.Likes)
		assert.Equal(t, 1, got.Dislikes)
	})

	s.Run("one staff reply that can be edited", func() {
		t := s.T()
		resourceID := dbtest.CreateTestResource(t, s.DB, builder.NewResourceBuilder())
		customer := authtest.Customer()
		created := s.submit(t, customer, s.completedStay(t, customer, resourceID), map[string]int{"value": 5})
		staff := s.jwt.TokenFor(t, authtest.Operator())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(replyURL, created.ID), request.ReplyRequest{Text: "Thank you!"}, staff)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(replyURL, created.ID), request.ReplyRequest{Text: "Again"}, staff)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Conflict")

		w = httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(replyURL, created.ID), request.ReplyRequest{Text: "Thanks again!"}, staff)
		var got response.ReviewResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.NotNil(t, got.Reply)
		assert.Equal(t, "Thanks again!", got.Reply.Text)
	})
}
