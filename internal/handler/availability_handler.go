package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/models"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
	"github.com/aseerhc/physio-booking-api/pkg/response"
)

// AvailabilityService is the surface the availability endpoints depend on.
type AvailabilityService interface {
	Day(ctx context.Context, query dto.AvailabilityQuery) (*dto.DayAvailability, error)
	Week(ctx context.Context, start models.CivilDate, query dto.AvailabilityQuery) (*dto.RangeAvailability, error)
	Month(ctx context.Context, anchor models.CivilDate, query dto.AvailabilityQuery) (*dto.RangeAvailability, error)
	DaySheet(ctx context.Context, providerID string, date models.CivilDate) (*dto.DaySheet, error)
}

// AvailabilityHandler handles calendar availability endpoints.
type AvailabilityHandler struct {
	service AvailabilityService
}

// NewAvailabilityHandler constructs an availability handler.
func NewAvailabilityHandler(svc AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc}
}

func availabilityQuery(c *gin.Context) (dto.AvailabilityQuery, error) {
	var query dto.AvailabilityQuery
	raw := c.Query("date")
	if raw == "" {
		return query, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	date, err := models.ParseCivilDate(raw)
	if err != nil {
		return query, appErrors.Clone(appErrors.ErrValidation, "invalid date")
	}
	query.Date = date
	query.ProviderID = c.Query("providerId")
	query.Specialty = models.Specialty(c.Query("specialty"))
	return query, nil
}

// Day godoc
// @Summary Availability of a single date
// @Tags Availability
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param providerId query string false "Filter by provider"
// @Param specialty query string false "Filter by specialty"
// @Success 200 {object} response.Envelope
// @Router /availability/day [get]
func (h *AvailabilityHandler) Day(c *gin.Context) {
	query, err := availabilityQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	day, err := h.service.Day(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, day, nil)
}

// Week godoc
// @Summary Availability of the seven days starting at a date
// @Tags Availability
// @Produce json
// @Param date query string true "Start date (YYYY-MM-DD)"
// @Param providerId query string false "Filter by provider"
// @Param specialty query string false "Filter by specialty"
// @Success 200 {object} response.Envelope
// @Router /availability/week [get]
func (h *AvailabilityHandler) Week(c *gin.Context) {
	query, err := availabilityQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	week, err := h.service.Week(c.Request.Context(), query.Date, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, week, nil)
}

// Month godoc
// @Summary Availability of a calendar month
// @Tags Availability
// @Produce json
// @Param date query string true "Any date inside the month (YYYY-MM-DD)"
// @Param providerId query string false "Filter by provider"
// @Param specialty query string false "Filter by specialty"
// @Success 200 {object} response.Envelope
// @Router /availability/month [get]
func (h *AvailabilityHandler) Month(c *gin.Context) {
	query, err := availabilityQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	month, err := h.service.Month(c.Request.Context(), query.Date, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, month, nil)
}

// Slots godoc
// @Summary Full slot grid for one provider on one date
// @Tags Availability
// @Produce json
// @Param providerId query string true "Provider ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /slots [get]
func (h *AvailabilityHandler) Slots(c *gin.Context) {
	providerID := c.Query("providerId")
	if providerID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "providerId is required"))
		return
	}
	date, err := models.ParseCivilDate(c.Query("date"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid date"))
		return
	}
	sheet, err := h.service.DaySheet(c.Request.Context(), providerID, date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sheet, nil)
}
