package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdoptionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAdoptionSQLRepositoryQueriesWithExclusions(t *testing.T) {
	db, mock, cleanup := newAdoptionRepoMock(t)
	defer cleanup()

	repo := NewAdoptionSQLRepository(db)

	rows := sqlmock.NewRows([]string{"department", "active_users", "total_employees", "adoption_rate_percent"}).
		AddRow("Engineering", 8, 10, 80.0).
		AddRow("HR", 1, 4, 25.0)
	mock.ExpectQuery("WITH employee_base AS").
		WithArgs("%omar%", "%saba%").
		WillReturnRows(rows)

	results, err := repo.AdoptionByDepartment(context.Background(), []string{"omar", "saba"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Engineering", results[0].Department)
	assert.Equal(t, 8, results[0].ActiveUsers)
	assert.Equal(t, 10, results[0].TotalEmployees)
	assert.InDelta(t, 80.0, results[0].AdoptionRatePercent, 0.001)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdoptionSQLRepositoryPropagatesQueryError(t *testing.T) {
	db, mock, cleanup := newAdoptionRepoMock(t)
	defer cleanup()

	repo := NewAdoptionSQLRepository(db)
	mock.ExpectQuery("WITH employee_base AS").WillReturnError(assert.AnError)

	_, err := repo.AdoptionByDepartment(context.Background(), nil)
	assert.Error(t, err)
}
