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

type withdrawalService interface {
	List(ctx context.Context, identity models.Identity) (*dto.WithdrawalResponse, error)
	Withdraw(ctx context.Context, identity models.Identity, req dto.CourseActionRequest, meta models.RequestMeta) (*dto.CourseActionResponse, error)
}

// WithdrawalHandler exposes course withdrawal.
type WithdrawalHandler struct {
	service withdrawalService
}

// NewWithdrawalHandler constructs the handler.
func NewWithdrawalHandler(service withdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{service: service}
}

// List godoc
// @Summary Withdrawable and withdrawn courses
// @Tags Withdrawal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /me/withdrawals [get]
func (h *WithdrawalHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), identityFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Withdraw godoc
// @Summary Withdraw from a current course
// @Tags Withdrawal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CourseActionRequest true "Course assignment"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/withdrawals [post]
func (h *WithdrawalHandler) Withdraw(c *gin.Context) {
	var req dto.CourseActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid withdrawal payload"))
		return
	}
	result, err := h.service.Withdraw(c.Request.Context(), identityFromContext(c), req, requestMeta(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
