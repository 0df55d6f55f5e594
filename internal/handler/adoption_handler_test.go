package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/models"
)

type adoptionCountMock struct {
	count dto.AdoptionCount
}

func (m *adoptionCountMock) AdoptionCount(ctx context.Context, window models.TimeRange) dto.AdoptionCount {
	return m.count
}

type departmentAdoptionMock struct {
	rows  []dto.DepartmentAdoption
	calls int
}

func (m *departmentAdoptionMock) AdoptionByDepartment(ctx context.Context, window models.TimeRange) []dto.DepartmentAdoption {
	m.calls++
	return m.rows
}

func TestAdoptionCountEndpoint(t *testing.T) {
	h := NewAdoptionHandler(&adoptionCountMock{count: dto.AdoptionCount{Count: 17}}, &departmentAdoptionMock{}, nil)

	w := getRequest(t, h.Count, "/adoption")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":17`)
}

func TestAdoptionByDepartmentEndpoint(t *testing.T) {
	departments := &departmentAdoptionMock{rows: []dto.DepartmentAdoption{
		{Department: "Engineering", ActiveUsers: 5, TotalEmployees: 10, AdoptionRatePercent: 50},
	}}
	h := NewAdoptionHandler(&adoptionCountMock{}, departments, nil)

	w := getRequest(t, h.ByDepartment, "/adoption-by-department")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, departments.calls)
	assert.Contains(t, w.Body.String(), "Engineering")
}
