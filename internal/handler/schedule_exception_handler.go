package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/models"
	"github.com/aseerhc/physio-booking-api/internal/service"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
	"github.com/aseerhc/physio-booking-api/pkg/response"
)

// ScheduleExceptionHandler handles vacation, time-off and extra-capacity
// endpoints.
type ScheduleExceptionHandler struct {
	service *service.ScheduleExceptionService
}

// NewScheduleExceptionHandler constructs a schedule exception handler.
func NewScheduleExceptionHandler(svc *service.ScheduleExceptionService) *ScheduleExceptionHandler {
	return &ScheduleExceptionHandler{service: svc}
}

func dateRange(c *gin.Context) (models.CivilDate, models.CivilDate, error) {
	from, err := models.ParseCivilDate(c.Query("from"))
	if err != nil {
		return models.CivilDate{}, models.CivilDate{}, appErrors.Clone(appErrors.ErrValidation, "invalid from date")
	}
	to, err := models.ParseCivilDate(c.Query("to"))
	if err != nil {
		return models.CivilDate{}, models.CivilDate{}, appErrors.Clone(appErrors.ErrValidation, "invalid to date")
	}
	if to.Before(from) {
		return models.CivilDate{}, models.CivilDate{}, appErrors.Clone(appErrors.ErrValidation, "range end precedes start")
	}
	return from, to, nil
}

// ListVacations godoc
// @Summary List vacations overlapping a date range
// @Tags Schedule
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /vacations [get]
func (h *ScheduleExceptionHandler) ListVacations(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	vacations, err := h.service.ListVacations(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, vacations, nil)
}

// CreateVacation godoc
// @Summary Declare a vacation or global closure
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.VacationRequest true "Vacation payload"
// @Success 201 {object} response.Envelope
// @Router /vacations [post]
func (h *ScheduleExceptionHandler) CreateVacation(c *gin.Context) {
	var req dto.VacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	vacation, err := h.service.CreateVacation(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, vacation)
}

// DeleteVacation godoc
// @Summary Remove a vacation
// @Tags Schedule
// @Param id path string true "Vacation ID"
// @Success 204 {object} nil
// @Router /vacations/{id} [delete]
func (h *ScheduleExceptionHandler) DeleteVacation(c *gin.Context) {
	if err := h.service.DeleteVacation(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListTimeOffs godoc
// @Summary List time-off windows in a date range
// @Tags Schedule
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /time-offs [get]
func (h *ScheduleExceptionHandler) ListTimeOffs(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	timeOffs, err := h.service.ListTimeOffs(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timeOffs, nil)
}

// CreateTimeOff godoc
// @Summary Declare a partial-day block
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.TimeOffRequest true "Time off payload"
// @Success 201 {object} response.Envelope
// @Router /time-offs [post]
func (h *ScheduleExceptionHandler) CreateTimeOff(c *gin.Context) {
	var req dto.TimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	timeOff, err := h.service.CreateTimeOff(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, timeOff)
}

// DeleteTimeOff godoc
// @Summary Remove a time-off window
// @Tags Schedule
// @Param id path string true "Time off ID"
// @Success 204 {object} nil
// @Router /time-offs/{id} [delete]
func (h *ScheduleExceptionHandler) DeleteTimeOff(c *gin.Context) {
	if err := h.service.DeleteTimeOff(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListExtraCapacities godoc
// @Summary List extra capacity grants in a date range
// @Tags Schedule
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /extra-capacities [get]
func (h *ScheduleExceptionHandler) ListExtraCapacities(c *gin.Context) {
	from, to, err := dateRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	extras, err := h.service.ListExtraCapacities(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, extras, nil)
}

// CreateExtraCapacity godoc
// @Summary Grant extra slots for one provider-date
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body dto.ExtraCapacityRequest true "Extra capacity payload"
// @Success 201 {object} response.Envelope
// @Router /extra-capacities [post]
func (h *ScheduleExceptionHandler) CreateExtraCapacity(c *gin.Context) {
	var req dto.ExtraCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	extra, err := h.service.CreateExtraCapacity(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, extra)
}

// DeleteExtraCapacity godoc
// @Summary Remove an extra capacity grant
// @Tags Schedule
// @Param id path string true "Extra capacity ID"
// @Success 204 {object} nil
// @Router /extra-capacities/{id} [delete]
func (h *ScheduleExceptionHandler) DeleteExtraCapacity(c *gin.Context) {
	if err := h.service.DeleteExtraCapacity(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
