package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aseerhc/physio-booking-api/internal/models"
	"github.com/aseerhc/physio-booking-api/internal/service"
	"github.com/aseerhc/physio-booking-api/pkg/response"
)

// AuditHandler handles audit trail endpoints.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler constructs an audit handler.
func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// List godoc
// @Summary List audit entries
// @Tags Audit
// @Produce json
// @Param action query string false "Filter by action"
// @Param fileNo query string false "Filter by patient file number"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /audit [get]
func (h *AuditHandler) List(c *gin.Context) {
	var filter models.AuditFilter
	filter.Action = models.AuditAction(c.Query("action"))
	filter.FileNo = strings.TrimSpace(c.Query("fileNo"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = limit
	}

	entries, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}
