package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
	"github.com/noah-isme/campus-portal-api/pkg/response"
)

type marksService interface {
	Courses(ctx context.Context, identity models.Identity) (*dto.MarksCoursesResponse, error)
	Detail(ctx context.Context, identity models.Identity, assignCourseID string) (*dto.MarksDetailResponse, error)
}

// MarksHandler serves assessment breakdowns.
type MarksHandler struct {
	service marksService
}

// NewMarksHandler constructs the handler.
func NewMarksHandler(service marksService) *MarksHandler {
	return &MarksHandler{service: service}
}

// Courses godoc
// @Summary Courses with marks
// @Tags Marks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /me/marks [get]
func (h *MarksHandler) Courses(c *gin.Context) {
	result, err := h.service.Courses(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Detail godoc
// @Summary Weighted marks for a course
// @Tags Marks
// @Produce json
// @Security BearerAuth
// @Param assignCourseId path string true "Course assignment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /me/marks/{assignCourseId} [get]
func (h *MarksHandler) Detail(c *gin.Context) {
	id := strings.TrimSpace(c.Param("assignCourseId"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "assignCourseId is required"))
		return
	}
	result, err := h.service.Detail(c.Request.Context(), identityFromContext(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
