package api

import (
	"errors"
	"net/http"

	resdto "spotstay/internal/handler/dto/response"
	"spotstay/internal/handler/httperr"
	"spotstay/internal/handler/middleware"
	"spotstay/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SpotHandler struct {
	spotQueries    queries.SpotQueries
	bookingQueries queries.BookingQueries
}

func NewSpotHandler(spotQueries queries.SpotQueries, bookingQueries queries.BookingQueries) *SpotHandler {
	return &SpotHandler{
		spotQueries:    spotQueries,
		bookingQueries: bookingQueries,
	}
}

// @Summary List spots
// @Description List all bookable spots
// @Tags spots
// @Produce json
// @Success 200 {array} resdto.SpotResponse
// @Router /spots [get]
func (h *SpotHandler) ListSpots(c *gin.Context) {
	spots, err := h.spotQueries.ListSpots(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromSpotViews(spots))
}

// @Summary Get spot
// @Description Fetch one spot by ID
// @Tags spots
// @Produce json
// @Param id path string true "Spot ID"
// @Success 200 {object} resdto.SpotResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /spots/{id} [get]
func (h *SpotHandler) GetSpot(c *gin.Context) {
	spotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "validation", err, "Invalid spot ID")
		return
	}

	spot, err := h.spotQueries.GetSpot(c.Request.Context(), spotID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrSpotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, "spot_not_found", err, "Spot not found")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, "internal", err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSpotView(spot))
}

// @Summary List my spots
// @Description List the spots owned by the current user
// @Tags spots
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.SpotResponse
// @Router /spots/mine [get]
func (h *SpotHandler) ListMySpots(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", errMissingIdentity, "Internal server error")
		return
	}

	spots, err := h.spotQueries.ListOwnerSpots(c.Request.Context(), actorID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", err, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, resdto.FromSpotViews(spots))
}

// @Summary List spot bookings
// @Description List bookings for an owned spot, earliest check-in first
// @Tags spots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 200 {array} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /spots/{id}/bookings [get]
func (h *SpotHandler) ListSpotBookings(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", errMissingIdentity, "Internal server error")
		return
	}

	spotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "validation", err, "Invalid spot ID")
		return
	}

	items, err := h.bookingQueries.ListSpotBookings(c.Request.Context(), actorID, spotID)
	if err != nil {
		h.renderOwnerError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingListItems(items))
}

// @Summary Spot booking stats
// @Description Booking counts and next check-in for an owned spot
// @Tags spots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 200 {object} resdto.SpotStatsResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /spots/{id}/stats [get]
func (h *SpotHandler) SpotStats(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", errMissingIdentity, "Internal server error")
		return
	}

	spotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, "validation", err, "Invalid spot ID")
		return
	}

	stats, err := h.bookingQueries.SpotStats(c.Request.Context(), actorID, spotID)
	if err != nil {
		h.renderOwnerError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSpotStats(stats))
}

func (h *SpotHandler) renderOwnerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrSpotNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, "spot_not_found", err, "Spot not found")
	case errors.Is(err, queries.ErrAccessDenied):
		httperr.AbortWithError(c, http.StatusForbidden, "forbidden", err, "Access denied")
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, "internal", err, "Internal server error")
	}
}
