package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/service"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
	"github.com/aseerhc/physio-booking-api/pkg/response"
)

// SettingsHandler handles scheduler settings endpoints.
type SettingsHandler struct {
	service *service.SettingsService
}

// NewSettingsHandler constructs a settings handler.
func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// Get godoc
// @Summary Current scheduler settings
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Update godoc
// @Summary Replace scheduler settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body dto.SettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Router /settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	settings, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}
