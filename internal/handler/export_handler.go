package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nasma-hq/nasma-insights-api/internal/models"
	appErrors "github.com/nasma-hq/nasma-insights-api/pkg/errors"
	"github.com/nasma-hq/nasma-insights-api/pkg/response"
)

type exportService interface {
	MessagesCSV(ctx context.Context, window models.TimeRange) ([]byte, error)
	AdoptionPDF(ctx context.Context, window models.TimeRange) ([]byte, error)
}

// ExportHandler serves report downloads.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// MessagesCSV godoc
// @Summary Monthly per-user message breakdown as CSV
// @Tags Export
// @Produce text/csv
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end, inclusive"
// @Success 200 {file} file
// @Router /export/messages.csv [get]
func (h *ExportHandler) MessagesCSV(c *gin.Context) {
	payload, err := h.exports.MessagesCSV(c.Request.Context(), queryWindow(c))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv failed"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="messages.csv"`)
	c.Data(http.StatusOK, "text/csv", payload)
}

// AdoptionPDF godoc
// @Summary Department adoption report as PDF
// @Tags Export
// @Produce application/pdf
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end, inclusive"
// @Success 200 {file} file
// @Router /export/adoption.pdf [get]
func (h *ExportHandler) AdoptionPDF(c *gin.Context) {
	payload, err := h.exports.AdoptionPDF(c.Request.Context(), queryWindow(c))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf failed"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="adoption.pdf"`)
	c.Data(http.StatusOK, "application/pdf", payload)
}
