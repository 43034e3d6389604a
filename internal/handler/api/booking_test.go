//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"spotstay/internal/handler/api"
	resdto "spotstay/internal/handler/dto/response"
	"spotstay/internal/usecase/commands"
	"spotstay/internal/usecase/queries"
	"spotstay/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubBookingCommands struct {
	createView *queries.BookingView
	createErr  error
	cancelErr  error

	lastCreate commands.CreateBookingParams
	lastCancel commands.CancelBookingParams
}

func (s *stubBookingCommands) CreateBooking(_ context.Context, params commands.CreateBookingParams) (*queries.BookingView, error) {
	s.lastCreate = params
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.createView, nil
}

func (s *stubBookingCommands) CancelBooking(_ context.Context, params commands.CancelBookingParams) error {
	s.lastCancel = params
	return s.cancelErr
}

type stubBookingQueries struct {
	getView *queries.BookingView
	getErr  error
	items   []*queries.BookingListItem
	listErr error
}

func (s *stubBookingQueries) GetBooking(_ context.Context, _, _ uuid.UUID) (*queries.BookingView, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.getView, nil
}

func (s *stubBookingQueries) ListGuestBookings(_ context.Context, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return s.items, s.listErr
}

func (s *stubBookingQueries) ListSpotBookings(_ context.Context, _, _ uuid.UUID) ([]*queries.BookingListItem, error) {
	return s.items, s.listErr
}

func (s *stubBookingQueries) SpotStats(_ context.Context, _, _ uuid.UUID) (*queries.SpotBookingStats, error) {
	return nil, s.listErr
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubBookingCommands
	queries  *stubBookingQueries
	userID   uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.commands = &stubBookingCommands{}
	s.queries = &stubBookingQueries{}
	s.userID = uuid.New()

	handler := api.NewBookingHandler(s.commands, s.queries)

	// Stand-in for the auth middleware: inject the caller identity.
	withUser := func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Next()
	}

	s.router.POST("/bookings", withUser, handler.CreateBooking)
	s.router.GET("/bookings/:id", withUser, handler.GetBooking)
	s.router.DELETE("/bookings/:id", withUser, handler.CancelBooking)
	s.router.GET("/bookings", withUser, handler.ListMyBookings)
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) validBody() map[string]any {
	return map[string]any{
		"spot_id":   uuid.New().String(),
		"date_from": "2026-06-20",
		"date_to":   "2026-06-23",
	}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	s.Run("201 on success", func() {
		bookingID := uuid.New()
		s.commands.createErr = nil
		s.commands.createView = &queries.BookingView{
			ID:       bookingID,
			GuestID:  s.userID,
			DateFrom: time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
			DateTo:   time.Date(2026, 6, 23, 0, 0, 0, 0, time.UTC),
			Nights:   3,
		}

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", s.validBody(), "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.Equal(bookingID, resp.ID)
		s.Equal("2026-06-20", resp.DateFrom)
		s.Equal("2026-06-23", resp.DateTo)
		s.Equal(s.userID, s.commands.lastCreate.GuestID)
	})

	s.Run("400 on malformed date", func() {
		body := s.validBody()
		body["date_from"] = "20-06-2026"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "YYYY-MM-DD")
	})

	s.Run("error taxonomy mapping", func() {
		cases := []struct {
			err    error
			status int
		}{
			{commands.ErrInvalidDateRange, http.StatusBadRequest},
			{commands.ErrPastCheckIn, http.StatusBadRequest},
			{commands.ErrSpotNotFound, http.StatusNotFound},
			{commands.ErrGuestNotFound, http.StatusForbidden},
			{commands.ErrDateConflict, http.StatusConflict},
			{commands.ErrStoreUnavailable, http.StatusServiceUnavailable},
			{commands.ErrStoreFailure, http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.commands.createErr = tc.err
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", s.validBody(), "")
			s.Equal(tc.status, rec.Code, "error %v", tc.err)
		}
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	s.Run("200 on success", func() {
		s.commands.cancelErr = nil
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusOK, rec.Code)
		s.Equal(bookingID, s.commands.lastCancel.BookingID)
		s.Equal(s.userID, s.commands.lastCancel.RequesterID)
	})

	s.Run("400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/not-a-uuid", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error taxonomy mapping", func() {
		cases := []struct {
			err    error
			status int
		}{
			{commands.ErrBookingNotFound, http.StatusNotFound},
			{commands.ErrNotBookingGuest, http.StatusForbidden},
			{commands.ErrCancelTooLate, http.StatusBadRequest},
			{commands.ErrStoreUnavailable, http.StatusServiceUnavailable},
			{commands.ErrStoreFailure, http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.commands.cancelErr = tc.err
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
			s.Equal(tc.status, rec.Code, "error %v", tc.err)
		}
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	s.Run("200 on success", func() {
		s.queries.getErr = nil
		s.queries.getView = &queries.BookingView{ID: bookingID, GuestID: s.userID}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(bookingID, resp.ID)
	})

	s.Run("404 when missing", func() {
		s.queries.getErr = queries.ErrBookingNotFound
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("403 when denied", func() {
		s.queries.getErr = queries.ErrAccessDenied
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestListMyBookings() {
	s.Run("200 with items", func() {
		s.queries.listErr = nil
		s.queries.items = []*queries.BookingListItem{
			{ID: uuid.New(), DateFrom: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), DateTo: time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)},
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "")

		var resp []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp, 1)
		s.Equal("2026-07-01", resp[0].DateFrom)
	})

	s.Run("200 with empty list", func() {
		s.queries.items = nil
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "")

		var resp []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Empty(resp)
	})
}
