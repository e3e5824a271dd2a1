package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aseerhc/physio-booking-api/internal/dto"
	"github.com/aseerhc/physio-booking-api/internal/models"
	"github.com/aseerhc/physio-booking-api/internal/service"
	appErrors "github.com/aseerhc/physio-booking-api/pkg/errors"
	"github.com/aseerhc/physio-booking-api/pkg/response"
)

// ProviderHandler handles provider endpoints.
type ProviderHandler struct {
	service *service.ProviderService
}

// NewProviderHandler constructs a provider handler.
func NewProviderHandler(svc *service.ProviderService) *ProviderHandler {
	return &ProviderHandler{service: svc}
}

// List godoc
// @Summary List providers
// @Tags Providers
// @Produce json
// @Param specialty query string false "Filter by specialty"
// @Param active query bool false "Filter by active flag"
// @Param search query string false "Search keyword"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /providers [get]
func (h *ProviderHandler) List(c *gin.Context) {
	var filter models.ProviderFilter
	filter.Specialty = models.Specialty(c.Query("specialty"))
	filter.Search = strings.TrimSpace(c.Query("search"))
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid active flag"))
			return
		}
		filter.Active = &active
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}

	providers, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, providers, pagination)
}

// Get godoc
// @Summary Get provider by id
// @Tags Providers
// @Produce json
// @Param id path string true "Provider ID"
// @Success 200 {object} response.Envelope
// @Router /providers/{id} [get]
func (h *ProviderHandler) Get(c *gin.Context) {
	provider, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, provider, nil)
}

// Create godoc
// @Summary Create provider
// @Tags Providers
// @Accept json
// @Produce json
// @Param payload body dto.ProviderRequest true "Provider payload"
// @Success 201 {object} response.Envelope
// @Router /providers [post]
func (h *ProviderHandler) Create(c *gin.Context) {
	var req dto.ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	provider, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, provider)
}

// Update godoc
// @Summary Update provider
// @Tags Providers
// @Accept json
// @Produce json
// @Param id path string true "Provider ID"
// @Param payload body dto.ProviderRequest true "Provider payload"
// @Success 200 {object} response.Envelope
// @Router /providers/{id} [put]
func (h *ProviderHandler) Update(c *gin.Context) {
	var req dto.ProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	provider, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, provider, nil)
}

// Delete godoc
// @Summary Deactivate provider
// @Tags Providers
// @Produce json
// @Param id path string true "Provider ID"
// @Success 204 {object} nil
// @Router /providers/{id} [delete]
func (h *ProviderHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
