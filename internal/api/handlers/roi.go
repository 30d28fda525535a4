package handlers

import (
	"net/http"

	"steam-roi/internal/api/models"
	"steam-roi/internal/evaluation"
	"steam-roi/internal/leads"
	"steam-roi/internal/logger"

	"github.com/gin-gonic/gin"
)

// ROIHandler handles evaluation requests and the resulting leads
type ROIHandler struct {
	service *evaluation.Service
	leads   leads.Repository
}

// NewROIHandler creates a new ROI handler
func NewROIHandler(service *evaluation.Service, repo leads.Repository) *ROIHandler {
	return &ROIHandler{service: service, leads: repo}
}

// CalculateROI handles POST /api/calculate-roi
func (h *ROIHandler) CalculateROI(c *gin.Context) {
	var req models.CalculateROIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := logger.With(c.Request.Context(), "company", req.CompanyName)
	ev, err := h.service.Evaluate(ctx, req.ToInputs())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ev.Lead)
}

// ListLeads handles GET /api/leads
func (h *ROIHandler) ListLeads(c *gin.Context) {
	c.JSON(http.StatusOK, models.LeadsResponse{Leads: h.leads.List()})
}
