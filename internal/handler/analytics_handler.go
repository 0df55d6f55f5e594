package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/response"
)

type metricReportService interface {
	RequestCounts(ctx context.Context, window models.TimeRange) []dto.RequestCount
	SuccessRates(ctx context.Context, window models.TimeRange) []dto.RequestSuccessRate
	ActivitiesToday(ctx context.Context, window models.TimeRange) []dto.UserActivity
}

type durationReportService interface {
	RequestDurations(ctx context.Context, window models.TimeRange) []dto.RequestDuration
}

// AnalyticsHandler exposes the metric-event reports.
type AnalyticsHandler struct {
	metrics   metricReportService
	durations durationReportService
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(metrics metricReportService, durations durationReportService) *AnalyticsHandler {
	return &AnalyticsHandler{metrics: metrics, durations: durations}
}

// Requests godoc
// @Summary All-time request counts per metric type
// @Tags Analytics
// @Produce json
// @Param start_date query string false "Window start (YYYY-MM-DD or timestamp)"
// @Param end_date query string false "Window end, inclusive"
// @Success 200 {object} response.Envelope
// @Router /requests [get]
func (h *AnalyticsHandler) Requests(c *gin.Context) {
	result := h.metrics.RequestCounts(c.Request.Context(), queryWindow(c))
	response.JSON(c, http.StatusOK, result)
}

// SuccessRates godoc
// @Summary Success rates per request family
// @Tags Analytics
// @Produce json
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end, inclusive"
// @Success 200 {object} response.Envelope
// @Router /success-rates [get]
func (h *AnalyticsHandler) SuccessRates(c *gin.Context) {
	result := h.metrics.SuccessRates(c.Request.Context(), queryWindow(c))
	response.JSON(c, http.StatusOK, result)
}

// ActivitiesToday godoc
// @Summary Per-user request counts, defaulting to the current UTC day
// @Tags Analytics
// @Produce json
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end, inclusive"
// @Success 200 {object} response.Envelope
// @Router /activities-today [get]
func (h *AnalyticsHandler) ActivitiesToday(c *gin.Context) {
	result := h.metrics.ActivitiesToday(c.Request.Context(), queryWindow(c))
	response.JSON(c, http.StatusOK, result)
}

// RequestDurations godoc
// @Summary Average request duration per family
// @Tags Analytics
// @Produce json
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end, inclusive"
// @Success 200 {object} response.Envelope
// @Router /request-durations [get]
func (h *AnalyticsHandler) RequestDurations(c *gin.Context) {
	result := h.durations.RequestDurations(c.Request.Context(), queryWindow(c))
	response.JSON(c, http.StatusOK, result)
}
