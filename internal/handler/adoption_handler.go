package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/middleware"
	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/internal/service"
	"github.com/nasma-hq/nasma-insights-api/pkg/response"
)

type adoptionCountService interface {
	AdoptionCount(ctx context.Context, window models.TimeRange) dto.AdoptionCount
}

type departmentAdoptionService interface {
	AdoptionByDepartment(ctx context.Context, window models.TimeRange) []dto.DepartmentAdoption
}

// AdoptionHandler exposes the adoption reports.
type AdoptionHandler struct {
	counts      adoptionCountService
	departments departmentAdoptionService
	cache       *service.CacheService
}

// NewAdoptionHandler constructs the handler.
func NewAdoptionHandler(counts adoptionCountService, departments departmentAdoptionService, cache *service.CacheService) *AdoptionHandler {
	return &AdoptionHandler{counts: counts, departments: departments, cache: cache}
}

// Count godoc
// @Summary Distinct users who ever authenticated
// @Tags Adoption
// @Produce json
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end, inclusive"
// @Success 200 {object} response.Envelope
// @Router /adoption [get]
func (h *AdoptionHandler) Count(c *gin.Context) {
	result := h.counts.AdoptionCount(c.Request.Context(), queryWindow(c))
	response.JSON(c, http.StatusOK, result)
}

// ByDepartment godoc
// @Summary Adoption rate per department
// @Tags Adoption
// @Produce json
// @Param start_date query string false "Window start"
// @Param end_date query string false "Window end, inclusive"
// @Success 200 {object} response.Envelope
// @Router /adoption-by-department [get]
func (h *AdoptionHandler) ByDepartment(c *gin.Context) {
	window := queryWindow(c)
	key := service.ReportKey("adoption-by-department", window.Start, window.End)

	var cached []dto.DepartmentAdoption
	if hit, err := h.cache.Get(c.Request.Context(), key, &cached); err == nil && hit {
		middleware.SetCacheHit(c, true)
		response.JSON(c, http.StatusOK, cached, middleware.ExtractMeta(c))
		return
	}

	result := h.departments.AdoptionByDepartment(c.Request.Context(), window)
	_ = h.cache.Set(c.Request.Context(), key, result, 0)
	middleware.SetCacheHit(c, false)
	response.JSON(c, http.StatusOK, result, middleware.ExtractMeta(c))
}
