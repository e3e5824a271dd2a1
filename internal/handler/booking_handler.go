package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/models"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
	"github.com/aseerhc/physio-booking-api/pkg/response"
)

// BookingService is the surface the booking endpoints depend on.
type BookingService interface {
	Book(ctx context.Context, req dto.BookingRequest) (*dto.BookingResult, error)
	BookManual(ctx context.Context, req dto.ManualBookingRequest) (*dto.BookingResult, error)
	BookEmergency(ctx context.Context, req dto.EmergencyBookingRequest) (*dto.BookingResult, error)
	Cancel(ctx context.Context, id string) (*dto.CancelResult, error)
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, *models.Pagination, error)
}

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	service BookingService
}

// NewBookingHandler constructs a booking handler.
func NewBookingHandler(svc BookingService) *BookingHandler {
	return &BookingHandler{service: svc}
}

// Book godoc
// @Summary Find and book the first available slot
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body dto.BookingRequest true "Booking request"
// @Success 200 {object} response.Envelope
// @Router /bookings [post]
func (h *BookingHandler) Book(c *gin.Context) {
	var req dto.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.Book(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusCreated
	if !result.Found {
		status = http.StatusOK
	}
	response.JSON(c, status, result, nil)
}

// BookManual godoc
// @Summary Book an explicit provider, date and time
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body dto.ManualBookingRequest true "Manual booking request"
// @Success 201 {object} response.Envelope
// @Router /bookings/manual [post]
func (h *BookingHandler) BookManual(c *gin.Context) {
	var req dto.ManualBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.BookManual(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// BookEmergency godoc
// @Summary Place an urgent case past all capacity ceilings
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body dto.EmergencyBookingRequest true "Emergency booking request"
// @Success 200 {object} response.Envelope
// @Router /bookings/emergency [post]
func (h *BookingHandler) BookEmergency(c *gin.Context) {
	var req dto.EmergencyBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.BookEmergency(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusCreated
	if !result.Found {
		status = http.StatusOK
	}
	response.JSON(c, status, result, nil)
}

// Cancel godoc
// @Summary Cancel an appointment
// @Tags Bookings
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Envelope
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	result, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List appointments
// @Tags Bookings
// @Produce json
// @Param providerId query string false "Filter by provider"
// @Param fileNo query string false "Filter by patient file number"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var filter models.AppointmentFilter
	filter.ProviderID = c.Query("providerId")
	filter.FileNo = strings.TrimSpace(c.Query("fileNo"))
	if raw := c.Query("from"); raw != "" {
		date, err := models.ParseCivilDate(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid from date"))
			return
		}
		filter.From = &date
	}
	if raw := c.Query("to"); raw != "" {
		date, err := models.ParseCivilDate(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid to date"))
			return
		}
		filter.To = &date
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = limit
	}

	appointments, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appointments, pagination)
}
