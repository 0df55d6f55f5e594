package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
	"github.com/nasma-hq/nasma-insights-api/internal/models"
	"github.com/nasma-hq/nasma-insights-api/internal/normalize"
)

// Adoption join strategies. Both have shipped historically; roster stays
// the default until product settles which one is authoritative.
const (
	StrategyRoster = "roster"
	StrategyUsage  = "usage"
)

const unknownDepartment = "Unknown"

// EmployeeSource lists the employee roster.
type EmployeeSource interface {
	ListEmployees(ctx context.Context) ([]models.EmployeeRecord, error)
}

// UsageNameSource lists the raw user names carrying any usage signal.
type UsageNameSource interface {
	ListUserNames(ctx context.Context, window models.TimeRange) ([]string, error)
}

// DepartmentAdoptionSQL is the optional server-side join fast path.
type DepartmentAdoptionSQL interface {
	AdoptionByDepartment(ctx context.Context, excludedSubstrings []string) ([]dto.DepartmentAdoption, error)
}

// AdoptionServiceParams bundles dependencies for NewAdoptionService.
type AdoptionServiceParams struct {
	Employees  EmployeeSource
	Usage      UsageNameSource
	FastPath   DepartmentAdoptionSQL
	Exclusions *normalize.Exclusions
	Substrings []string
	Strategy   string
	Logger     *zap.Logger
}

// AdoptionService joins the employee roster against usage signals on
// normalized name, per department.
type AdoptionService struct {
	employees  EmployeeSource
	usage      UsageNameSource
	fastPath   DepartmentAdoptionSQL
	exclusions *normalize.Exclusions
	substrings []string
	strategy   string
	logger     *zap.Logger
}

// NewAdoptionService constructs the service.
func NewAdoptionService(params AdoptionServiceParams) *AdoptionService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Strategy != StrategyUsage {
		params.Strategy = StrategyRoster
	}
	return &AdoptionService{
		employees:  params.Employees,
		usage:      params.Usage,
		fastPath:   params.FastPath,
		exclusions: params.Exclusions,
		substrings: params.Substrings,
		strategy:   params.Strategy,
		logger:     params.Logger,
	}
}

// AdoptionByDepartment reports active/total/rate per department. The SQL
// fast path is tried first when configured; any failure there falls back
// to the scanning join.
func (s *AdoptionService) AdoptionByDepartment(ctx context.Context, window models.TimeRange) []dto.DepartmentAdoption {
	if s.fastPath != nil {
		results, err := s.fastPath.AdoptionByDepartment(ctx, s.substrings)
		if err == nil {
			return results
		}
		s.logger.Warn("adoption fast path failed, falling back to scan", zap.Error(err))
	}

	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		s.logger.Warn("fetch employee roster failed", zap.Error(err))
		return []dto.DepartmentAdoption{}
	}
	usageNames, err := s.usage.ListUserNames(ctx, window)
	if err != nil {
		s.logger.Warn("fetch usage names failed", zap.Error(err))
		return []dto.DepartmentAdoption{}
	}

	if s.strategy == StrategyUsage {
		return s.usageDriven(employees, usageNames)
	}
	return s.rosterDriven(employees, usageNames)
}

// rosterDriven starts from the roster, then checks each employee for any
// usage signal. Sorted by rate descending, active count descending.
func (s *AdoptionService) rosterDriven(employees []models.EmployeeRecord, usageNames []string) []dto.DepartmentAdoption {
	members := s.rosterByDepartment(employees)

	activeKeys := make(map[string]struct{})
	for _, name := range usageNames {
		if key := normalize.Name(name); key != "" {
			activeKeys[key] = struct{}{}
		}
	}

	results := make([]dto.DepartmentAdoption, 0, len(members))
	for department, names := range members {
		active := 0
		for name := range names {
			if _, ok := activeKeys[normalize.Name(name)]; ok {
				active++
			}
		}
		results = append(results, adoptionRow(department, active, len(names)))
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].AdoptionRatePercent != results[j].AdoptionRatePercent {
			return results[i].AdoptionRatePercent > results[j].AdoptionRatePercent
		}
		if results[i].ActiveUsers != results[j].ActiveUsers {
			return results[i].ActiveUsers > results[j].ActiveUsers
		}
		return results[i].Department < results[j].Department
	})
	return results
}

// usageDriven walks the usage records and marks roster employees active as
// they appear. Sorted by rate descending, department ascending.
func (s *AdoptionService) usageDriven(employees []models.EmployeeRecord, usageNames []string) []dto.DepartmentAdoption {
	members := s.rosterByDepartment(employees)

	departmentByKey := make(map[string]string)
	for department, names := range members {
		for name := range names {
			departmentByKey[normalize.Name(name)] = department
		}
	}

	activeByDepartment := make(map[string]map[string]struct{})
	for _, name := range usageNames {
		key := normalize.Name(name)
		if key == "" {
			continue
		}
		department, ok := departmentByKey[key]
		if !ok {
			continue
		}
		set := activeByDepartment[department]
		if set == nil {
			set = make(map[string]struct{})
			activeByDepartment[department] = set
		}
		set[key] = struct{}{}
	}

	results := make([]dto.DepartmentAdoption, 0, len(members))
	for department, names := range members {
		results = append(results, adoptionRow(department, len(activeByDepartment[department]), len(names)))
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].AdoptionRatePercent != results[j].AdoptionRatePercent {
			return results[i].AdoptionRatePercent > results[j].AdoptionRatePercent
		}
		return results[i].Department < results[j].Department
	})
	return results
}

// rosterByDepartment groups roster names per department, dropping blank
// and excluded names. Blank departments collapse into "Unknown".
func (s *AdoptionService) rosterByDepartment(employees []models.EmployeeRecord) map[string]map[string]struct{} {
	members := make(map[string]map[string]struct{})
	for _, employee := range employees {
		name := strings.TrimSpace(employee.Name)
		if name == "" {
			continue
		}
		if s.exclusions.MatchesSubstring(name) {
			continue
		}
		department := strings.TrimSpace(employee.Department)
		if department == "" {
			department = unknownDepartment
		}
		set := members[department]
		if set == nil {
			set = make(map[string]struct{})
			members[department] = set
		}
		set[name] = struct{}{}
	}
	return members
}

func adoptionRow(department string, active, total int) dto.DepartmentAdoption {
	rate := 0.0
	if total > 0 {
		rate = math.Round(float64(active)/float64(total)*1000) / 10
	}
	return dto.DepartmentAdoption{
		Department:          department,
		ActiveUsers:         active,
		TotalEmployees:      total,
		AdoptionRatePercent: rate,
	}
}
