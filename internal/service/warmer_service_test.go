package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/pkg/jobs"
)

func TestReportWarmerPrimesAdoptionCache(t *testing.T) {
	adoption := NewAdoptionService(AdoptionServiceParams{
		Employees: &employeeSourceStub{employees: []models.EmployeeRecord{
			{Name: "Alice Smith", Department: "Engineering"},
		}},
		Usage:      &usageSourceStub{names: []string{"Alice Smith"}},
		Exclusions: testExclusions(),
	})
	repo := newCacheRepoStub()
	cacheSvc := NewCacheService(repo, nil, time.Minute, nil, true)

	warmer := NewReportWarmer(ReportWarmerParams{
		Adoption: adoption,
		Cache:    cacheSvc,
	})

	require.NoError(t, warmer.refresh(context.Background(), jobs.Job{Type: "adoption-by-department"}))

	var cached []dto.DepartmentAdoption
	hit, err := cacheSvc.Get(context.Background(), ReportKey("adoption-by-department", "", ""), &cached)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, cached, 1)
	require.Equal(t, "Engineering", cached[0].Department)
}

func TestReportWarmerStartIsNoopWithoutInterval(t *testing.T) {
	warmer := NewReportWarmer(ReportWarmerParams{
		Adoption: NewAdoptionService(AdoptionServiceParams{
			Employees: &employeeSourceStub{},
			Usage:     &usageSourceStub{},
		}),
		Cache: NewCacheService(newCacheRepoStub(), nil, time.Minute, nil, true),
	})

	warmer.Start(context.Background())
	warmer.Stop()
}
