package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/middleware"
	"github.com/nasma-hq/nasma-insights-api/internal/service"
	appErrors "github.com/nasma-hq/nasma-insights-api/pkg/errors"
	"github.com/nasma-hq/nasma-insights-api/pkg/response"
)

// defaultHoursStart pins the worked-hours report to the assistant rollout.
const defaultHoursStart = "2024-09-01"

type coverageReportService interface {
	PlanningCoverage(ctx context.Context, start, end string) (dto.PlanningCoverage, error)
	MonthlyHours(ctx context.Context, startDate string) ([]dto.MonthlyHours, error)
}

// CoverageHandler exposes the ERP reconciliation reports.
type CoverageHandler struct {
	coverage coverageReportService
	cache    *service.CacheService
}

// NewCoverageHandler constructs the handler.
func NewCoverageHandler(coverage coverageReportService, cache *service.CacheService) *CoverageHandler {
	return &CoverageHandler{coverage: coverage, cache: cache}
}

// PlanningCoverage godoc
// @Summary Planned vs logged task-days per month and ISO week
// @Tags Coverage
// @Produce json
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end (YYYY-MM-DD), inclusive"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /planning-coverage [get]
func (h *CoverageHandler) PlanningCoverage(c *gin.Context) {
	start := strings.TrimSpace(c.Query("start_date"))
	end := strings.TrimSpace(c.Query("end_date"))
	if start == "" || end == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "start_date and end_date are required"))
		return
	}

	key := service.ReportKey("planning-coverage", start, end)
	var cached dto.PlanningCoverage
	if hit, err := h.cache.Get(c.Request.Context(), key, &cached); err == nil && hit {
		middleware.SetCacheHit(c, true)
		response.JSON(c, http.StatusOK, cached, middleware.ExtractMeta(c))
		return
	}

	result, err := h.coverage.PlanningCoverage(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	_ = h.cache.Set(c.Request.Context(), key, result, 0)
	middleware.SetCacheHit(c, false)
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}

// MonthlyHours godoc
// @Summary Logged timesheet hours per month, excluding time off
// @Tags Coverage
// @Produce json
// @Param start_date query string false "Start date (YYYY-MM-DD), default 2024-09-01"
// @Success 200 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /monthly-hours [get]
func (h *CoverageHandler) MonthlyHours(c *gin.Context) {
	start := strings.TrimSpace(c.Query("start_date"))
	if start == "" {
		start = defaultHoursStart
	}

	result, err := h.coverage.MonthlyHours(c.Request.Context(), start)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
