package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/pkg/response"
)

type dashboardService interface {
	Get(ctx context.Context, identity models.Identity) (*dto.DashboardResponse, error)
}

// DashboardHandler serves the home view.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Get godoc
// @Summary Student dashboard
// @Description Name, semester, GPA summary and the next two scheduled classes
// @Tags Portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /me/dashboard [get]
func (h *DashboardHandler) Get(c *gin.Context) {
	start := time.Now()
	summary, err := h.service.Get(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, map[string]interface{}{
		"processing_time_ms": time.Since(start).Milliseconds(),
	})
}
