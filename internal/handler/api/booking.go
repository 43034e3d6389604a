package api

import (
	"errors"
	"net/http"

	reqdto "spotstay/internal/handler/dto/request"
	resdto "spotstay/internal/handler/dto/response"
	"spotstay/internal/handler/httperr"
	"spotstay/internal/handler/middleware"
	"spotstay/internal/usecase/commands"
	"spotstay/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Reserve a spot for a half-open date range [dateFrom, dateTo)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	guestID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", errMissingIdentity, "Internal server error")
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "validation", err, "Invalid request format")
		return
	}

	dateFrom, dateTo, err := req.ParseDates()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "invalid_range", err, "Dates must use the YYYY-MM-DD format")
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), commands.CreateBookingParams{
		SpotID:   req.SpotID,
		GuestID:  guestID,
		DateFrom: dateFrom,
		DateTo:   dateTo,
	})
	if err != nil {
		h.renderCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

func (h *BookingHandler) renderCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidDateRange):
		httperr.AbortWithError(c, http.StatusBadRequest, "invalid_range", err, "Check-out must be after check-in")
	case errors.Is(err, commands.ErrPastCheckIn):
		httperr.AbortWithError(c, http.StatusBadRequest, "past_date", err, "Check-in date is in the past")
	case errors.Is(err, commands.ErrSpotNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, "spot_not_found", err, "Spot not found")
	case errors.Is(err, commands.ErrGuestNotFound):
		httperr.AbortWithError(c, http.StatusForbidden, "forbidden", err, "Guest account not found or inactive")
	case errors.Is(err, commands.ErrDateConflict):
		httperr.AbortWithError(c, http.StatusConflict, "conflict", err, "Spot is already booked for the selected dates")
	case errors.Is(err, commands.ErrStoreUnavailable):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, "store_unavailable", err, "Service temporarily unavailable, please retry")
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", err, "Internal server error")
	}
}

// @Summary Cancel booking
// @Description Cancel a booking at least 24 hours before check-in
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	requesterID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", errMissingIdentity, "Internal server error")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "validation", err, "Invalid booking ID")
		return
	}

	err = h.bookingCommands.CancelBooking(c.Request.Context(), commands.CancelBookingParams{
		BookingID:   bookingID,
		RequesterID: requesterID,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, "not_found", err, "Booking not found")
		case errors.Is(err, commands.ErrNotBookingGuest):
			httperr.AbortWithError(c, http.StatusForbidden, "forbidden", err, "Booking belongs to another guest")
		case errors.Is(err, commands.ErrCancelTooLate):
			httperr.AbortWithError(c, http.StatusBadRequest, "too_late_to_cancel", err, "Bookings can only be cancelled at least 24 hours before check-in")
		case errors.Is(err, commands.ErrStoreUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, "store_unavailable", err, "Service temporarily unavailable, please retry")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, "internal", err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

// @Summary Get booking
// @Description Fetch one booking; visible to the booking guest and the spot owner
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", errMissingIdentity, "Internal server error")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "validation", err, "Invalid booking ID")
		return
	}

	view, err := h.bookingQueries.GetBooking(c.Request.Context(), actorID, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, "not_found", err, "Booking not found")
		case errors.Is(err, queries.ErrAccessDenied):
			httperr.AbortWithError(c, http.StatusForbidden, "forbidden", err, "Access denied")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, "internal", err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List my bookings
// @Description List the authenticated guest's bookings, newest check-in first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BookingListResponse
// @Failure 401 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	guestID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", errMissingIdentity, "Internal server error")
		return
	}

	items, err := h.bookingQueries.ListGuestBookings(c.Request.Context(), guestID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingListItems(items))
}
