package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
	"github.com/noah-isme/campus-portal-api/pkg/response"
)

type enrollmentService interface {
	Options(ctx context.Context, identity models.Identity) (*dto.EnrollmentResponse, error)
	Enroll(ctx context.Context, identity models.Identity, req dto.CourseActionRequest, meta models.RequestMeta) (*dto.CourseActionResponse, error)
}

// EnrollmentHandler exposes course registration.
type EnrollmentHandler struct {
	service enrollmentService
}

// NewEnrollmentHandler constructs the handler.
func NewEnrollmentHandler(service enrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// Options godoc
// @Summary Courses open for registration
// @Tags Enrollment
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /me/enrollment [get]
func (h *EnrollmentHandler) Options(c *gin.Context) {
	options, err := h.service.Options(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}

// Enroll godoc
// @Summary Register for a course
// @Tags Enrollment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CourseActionRequest true "Course assignment"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /me/enrollment [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	var req dto.CourseActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid enrollment payload"))
		return
	}
	result, err := h.service.Enroll(c.Request.Context(), identityFromContext(c), req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
