package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/pkg/response"
)

type transcriptService interface {
	Export(ctx context.Context, identity models.Identity, format string) (*service.TranscriptFile, error)
}

// TranscriptHandler streams semester results as a downloadable file.
type TranscriptHandler struct {
	service transcriptService
}

// NewTranscriptHandler constructs the handler.
func NewTranscriptHandler(service transcriptService) *TranscriptHandler {
	return &TranscriptHandler{service: service}
}

// Download godoc
// @Summary Download transcript
// @Tags Portal
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /me/transcript [get]
func (h *TranscriptHandler) Download(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), identityFromContext(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
