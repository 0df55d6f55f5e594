package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	appErrors "github.com/nasma-hq/nasma-insights-api/pkg/errors"
)

type coverageServiceMock struct {
	coverage dto.PlanningCoverage
	hours    []dto.MonthlyHours
	err      error
	gotStart string
	gotEnd   string
}

func (m *coverageServiceMock) PlanningCoverage(ctx context.Context, start, end string) (dto.PlanningCoverage, error) {
	m.gotStart, m.gotEnd = start, end
	return m.coverage, m.err
}

func (m *coverageServiceMock) MonthlyHours(ctx context.Context, startDate string) ([]dto.MonthlyHours, error) {
	m.gotStart = startDate
	return m.hours, m.err
}

func TestPlanningCoverageRequiresBothDates(t *testing.T) {
	svc := &coverageServiceMock{}
	h := NewCoverageHandler(svc, nil)

	w := getRequest(t, h.PlanningCoverage, "/planning-coverage?start_date=2024-09-01")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, svc.gotStart)
}

func TestPlanningCoverageReturnsPayload(t *testing.T) {
	svc := &coverageServiceMock{coverage: dto.PlanningCoverage{
		Monthly: []dto.CoverageBucket{{Period: "2024-09", PlannedDays: 2, LoggedDays: 1, CoveragePct: 50.0}},
		Weekly:  []dto.CoverageBucket{},
	}}
	h := NewCoverageHandler(svc, nil)

	w := getRequest(t, h.PlanningCoverage, "/planning-coverage?start_date=2024-09-01&end_date=2024-09-30")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-09-01", svc.gotStart)
	assert.Equal(t, "2024-09-30", svc.gotEnd)
	assert.Contains(t, w.Body.String(), "2024-09")
}

func TestPlanningCoverageSurfacesERPAuthFailure(t *testing.T) {
	svc := &coverageServiceMock{err: appErrors.ErrERPAuth}
	h := NewCoverageHandler(svc, nil)

	w := getRequest(t, h.PlanningCoverage, "/planning-coverage?start_date=2024-09-01&end_date=2024-09-30")
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "ERP_AUTH_FAILED")
}

func TestMonthlyHoursDefaultsStartDate(t *testing.T) {
	svc := &coverageServiceMock{hours: []dto.MonthlyHours{{Month: "2024-09", TotalHours: 40}}}
	h := NewCoverageHandler(svc, nil)

	w := getRequest(t, h.MonthlyHours, "/monthly-hours")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-09-01", svc.gotStart)
}

func TestMonthlyHoursHonoursExplicitStartDate(t *testing.T) {
	svc := &coverageServiceMock{}
	h := NewCoverageHandler(svc, nil)

	w := getRequest(t, h.MonthlyHours, "/monthly-hours?start_date=2025-01-01")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-01-01", svc.gotStart)
}
