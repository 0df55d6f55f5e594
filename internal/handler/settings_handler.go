package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/models"
	appErrors "github.com/nasma-hq/nasma-insights-api/pkg/errors"
	"github.com/nasma-hq/nasma-insights-api/pkg/response"
)

type settingsService interface {
	Satisfaction() models.SatisfactionDocument
	SaveSatisfaction(value string) error
	EaseComparison() models.EaseComparisonDocument
	SaveEaseComparison(odoo, nasma []models.EasePoint) error
}

// SettingsHandler exposes the manually curated dashboard documents.
type SettingsHandler struct {
	settings settingsService
}

// NewSettingsHandler constructs the handler.
func NewSettingsHandler(settings settingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetSatisfaction godoc
// @Summary Current overall satisfaction figure
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /satisfaction [get]
func (h *SettingsHandler) GetSatisfaction(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.settings.Satisfaction())
}

// SaveSatisfaction godoc
// @Summary Overwrite the overall satisfaction figure
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body dto.SaveSatisfactionRequest true "New value"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /satisfaction [post]
func (h *SettingsHandler) SaveSatisfaction(c *gin.Context) {
	var req dto.SaveSatisfactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid satisfaction payload"))
		return
	}
	if err := h.settings.SaveSatisfaction(req.Value); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.settings.Satisfaction())
}

// GetEaseComparison godoc
// @Summary Ease-of-use comparison series
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /ease-comparison [get]
func (h *SettingsHandler) GetEaseComparison(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.settings.EaseComparison())
}

// SaveEaseComparison godoc
// @Summary Replace both ease-of-use series
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body dto.SaveEaseComparisonRequest true "Both series"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /ease-comparison [post]
func (h *SettingsHandler) SaveEaseComparison(c *gin.Context) {
	var req dto.SaveEaseComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid ease comparison payload"))
		return
	}
	if err := h.settings.SaveEaseComparison(req.Odoo, req.Nasma); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.settings.EaseComparison())
}
