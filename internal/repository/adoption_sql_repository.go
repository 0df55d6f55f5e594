package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nasma-hq/nasma-insights-api/internal/dto"
)

// AdoptionSQLRepository is the optional direct-Postgres fast path for the
// department adoption report. It exists only when a connection string is
// configured; the scanning implementation covers every other deployment.
type AdoptionSQLRepository struct {
	db *sqlx.DB
}

// NewAdoptionSQLRepository constructs the repository.
func NewAdoptionSQLRepository(db *sqlx.DB) *AdoptionSQLRepository {
	return &AdoptionSQLRepository{db: db}
}

// AdoptionByDepartment computes the roster-driven adoption join in one
// server-side query. Exclusion substrings become NOT ILIKE predicates on
// the roster name.
func (r *AdoptionSQLRepository) AdoptionByDepartment(ctx context.Context, excludedSubstrings []string) ([]dto.DepartmentAdoption, error) {
	var builder strings.Builder
	builder.WriteString(`WITH employee_base AS (
  SELECT
    er."Employee Name" AS employee_name,
    er."Department"    AS department
  FROM employees_reference er
  WHERE 1=1`)
	args := make([]interface{}, 0, len(excludedSubstrings))
	for _, sub := range excludedSubstrings {
		args = append(args, "%"+sub+"%")
		builder.WriteString(fmt.Sprintf("\n    AND er.\"Employee Name\" NOT ILIKE $%d", len(args)))
	}
	builder.WriteString(`
),
active_users AS (
  SELECT DISTINCT
    LOWER(sm.user_name) AS employee_name_lc
  FROM session_metrics sm
  WHERE sm.user_name IS NOT NULL
),
adoption AS (
  SELECT
    eb.department,
    COUNT(DISTINCT eb.employee_name) AS total_employees,
    COUNT(
      DISTINCT CASE
        WHEN au.employee_name_lc = LOWER(eb.employee_name) THEN eb.employee_name
      END
    ) AS active_users
  FROM employee_base eb
  LEFT JOIN active_users au
    ON au.employee_name_lc = LOWER(eb.employee_name)
  GROUP BY eb.department
)
SELECT
  department,
  active_users,
  total_employees,
  COALESCE(ROUND((active_users::numeric / NULLIF(total_employees, 0)) * 100, 1), 0) AS adoption_rate_percent
FROM adoption
ORDER BY adoption_rate_percent DESC, active_users DESC`)

	type row struct {
		Department          string  `db:"department"`
		ActiveUsers         int     `db:"active_users"`
		TotalEmployees      int     `db:"total_employees"`
		AdoptionRatePercent float64 `db:"adoption_rate_percent"`
	}

	var rows []row
	if err := r.db.SelectContext(ctx, &rows, builder.String(), args...); err != nil {
		return nil, fmt.Errorf("query adoption by department: %w", err)
	}

	results := make([]dto.DepartmentAdoption, 0, len(rows))
	for _, rr := range rows {
		results = append(results, dto.DepartmentAdoption{
			Department:          rr.Department,
			ActiveUsers:         rr.ActiveUsers,
			TotalEmployees:      rr.TotalEmployees,
			AdoptionRatePercent: rr.AdoptionRatePercent,
		})
	}
	return results, nil
}
