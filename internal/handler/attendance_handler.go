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

type attendanceService interface {
	Courses(ctx context.Context, identity models.Identity) (*dto.AttendanceCoursesResponse, error)
	Detail(ctx context.Context, identity models.Identity, assignCourseID string) (*dto.AttendanceDetailResponse, error)
}

// AttendanceHandler serves attendance summaries.
type AttendanceHandler struct {
	service attendanceService
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// Courses godoc
// @Summary Courses with attendance
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /me/attendance [get]
func (h *AttendanceHandler) Courses(c *gin.Context) {
	result, err := h.service.Courses(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Detail godoc
// @Summary Attendance detail for a course
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param assignCourseId path string true "Course assignment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /me/attendance/{assignCourseId} [get]
func (h *AttendanceHandler) Detail(c *gin.Context) {
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
