package postgres

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/betulabla/foundation/internal/domain/orphan"
	"github.com/betulabla/foundation/internal/domain/user"
	ierr "github.com/betulabla/foundation/internal/errors"
	"github.com/betulabla/foundation/internal/logger"
	"github.com/betulabla/foundation/internal/postgres"
	"github.com/betulabla/foundation/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*postgres.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return postgres.NewFromSQLX(sqlx.NewDb(mockDB, "postgres"), logger.NewNopLogger()), mock
}

func anyArgs(n int) []driver.Value {
	args := make([]driver.Value, n)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	return args
}

var orphanRowColumns = []string{
	"id", "full_name", "date_of_birth", "gender", "address", "guardian_name", "guardian_phone",
	"school_name", "education_level", "health_status", "special_needs", "monthly_allowance",
	"last_payment_date", "photo_key", "status", "created_by", "created_at", "updated_at",
}

func TestOrphanRepository_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrphanRepository(db, logger.NewNopLogger())
	now := time.Now().UTC()

	rows := sqlmock.NewRows(orphanRowColumns).AddRow(
		"orphan_1", "Amina Yusuf", time.Date(2012, 6, 15, 0, 0, 0, 0, time.UTC), "female", "Nairobi", "Halima", "",
		"", "primary", "good", "", "150.00",
		nil, nil, "active", "user_1", now, now,
	)
	mock.ExpectQuery(`SELECT .* FROM orphans WHERE id = \$1`).
		WithArgs("orphan_1").
		WillReturnRows(rows)

	o, err := repo.Get(context.Background(), "orphan_1")
	require.NoError(t, err)
	assert.Equal(t, "Amina Yusuf", o.FullName)
	assert.Equal(t, "2012-06-15", o.DateOfBirth.String())
	assert.True(t, decimal.NewFromInt(150).Equal(o.MonthlyAllowance))
	assert.Nil(t, o.LastPaymentDate)
	assert.Nil(t, o.PhotoKey)
	assert.Equal(t, types.OrphanStatusActive, o.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrphanRepository_GetNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrphanRepository(db, logger.NewNopLogger())

	mock.ExpectQuery(`SELECT .* FROM orphans WHERE id = \$1`).
		WithArgs("orphan_missing").
		WillReturnRows(sqlmock.NewRows(orphanRowColumns))

	o, err := repo.Get(context.Background(), "orphan_missing")
	assert.Nil(t, o)
	assert.True(t, ierr.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrphanRepository_ListAppliesFiltersSearchAndOrdering(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrphanRepository(db, logger.NewNopLogger())

	filter := types.NewDefaultOrphanFilter()
	filter.Status = lo.ToPtr(types.OrphanStatusActive)
	filter.Search = lo.ToPtr("ami")
	filter.Ordering = lo.ToPtr("full_name")
	filter.Limit = lo.ToPtr(10)
	filter.Offset = lo.ToPtr(20)

	mock.ExpectQuery(regexp.QuoteMeta(
		`FROM orphans WHERE status = $1 AND (full_name ILIKE $2 OR guardian_name ILIKE $3 OR address ILIKE $4 OR school_name ILIKE $5) ORDER BY full_name ASC, id ASC LIMIT $6 OFFSET $7`,
	)).
		WithArgs(types.OrphanStatusActive, "%ami%", "%ami%", "%ami%", "%ami%", 10, 20).
		WillReturnRows(sqlmock.NewRows(orphanRowColumns))

	orphans, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrphanRepository_ListUnlimitedHasNoLimitClause(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrphanRepository(db, logger.NewNopLogger())

	mock.ExpectQuery(`FROM orphans ORDER BY created_at DESC, id DESC$`).
		WillReturnRows(sqlmock.NewRows(orphanRowColumns))

	_, err := repo.List(context.Background(), types.NewNoLimitOrphanFilter())
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrphanRepository_SearchEscapesWildcards(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrphanRepository(db, logger.NewNopLogger())

	filter := types.NewDefaultOrphanFilter()
	filter.Search = lo.ToPtr("50%_off")

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orphans WHERE`).
		WithArgs(`%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`, `%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrphanRepository_Stats(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrphanRepository(db, logger.NewNopLogger())

	mock.ExpectQuery(`COUNT\(\*\) FILTER \(WHERE status = 'active'\)`).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_orphans", "active_orphans", "pending_orphans", "inactive_orphans",
			"total_monthly_budget", "avg_monthly_allowance",
		}).AddRow(4, 2, 1, 1, "300.00", "150.000000"))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalOrphans)
	assert.Equal(t, 2, stats.ActiveOrphans)
	assert.True(t, decimal.NewFromInt(300).Equal(stats.TotalMonthlyBudget))
	assert.True(t, decimal.NewFromInt(150).Equal(stats.AvgMonthlyAllowance))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrphanRepository_CreateInsertsAllColumns(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrphanRepository(db, logger.NewNopLogger())

	o := &orphan.Orphan{
		ID:               "orphan_1",
		FullName:         "Amina Yusuf",
		DateOfBirth:      types.NewDate(2012, time.June, 15),
		Gender:           types.GenderFemale,
		Address:          "Nairobi",
		EducationLevel:   types.EducationLevelPrimary,
		HealthStatus:     types.HealthStatusGood,
		MonthlyAllowance: orphan.DefaultMonthlyAllowance,
		Status:           types.OrphanStatusPending,
		BaseModel:        types.GetDefaultBaseModel(types.SetUserID(context.Background(), "user_1")),
	}

	mock.ExpectExec(`INSERT INTO orphans`).
		WithArgs(anyArgs(len(orphanRowColumns))...).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), o))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrphanRepository_DeleteMissingIsNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrphanRepository(db, logger.NewNopLogger())

	mock.ExpectExec(`DELETE FROM orphans WHERE id = \$1`).
		WithArgs("orphan_missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "orphan_missing")
	assert.True(t, ierr.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateDuplicateUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db, logger.NewNopLogger())

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(anyArgs(10)...).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_users_username"})

	err := repo.Create(context.Background(), user.NewUser("amina", "amina@example.org", types.UserRoleStaff))
	assert.True(t, ierr.IsAlreadyExists(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteWithOwnedRecords(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db, logger.NewNopLogger())

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("user_1").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "orphans_created_by_fkey"})

	err := repo.Delete(context.Background(), "user_1")
	assert.True(t, ierr.IsReferentialIntegrity(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListByRole(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db, logger.NewNopLogger())
	now := time.Now().UTC()

	filter := types.NewDefaultUserFilter()
	filter.Role = lo.ToPtr(types.UserRoleAdmin)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE role = $1 ORDER BY created_at DESC, id DESC LIMIT $2`)).
		WithArgs(types.UserRoleAdmin, 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "email", "role", "phone_number", "full_name", "location", "is_active", "created_at", "updated_at",
		}).AddRow("user_1", "root", "root@example.org", "admin", "", "Root", "", true, now, now))

	users, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsAdmin())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_StatsBoundsCurrentMonth(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReportRepository(db, logger.NewNopLogger())
	monthStart := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`COUNT(*) FILTER (WHERE created_at >= $1) AS reports_this_month`)).
		WithArgs(monthStart).
		WillReturnRows(sqlmock.NewRows([]string{
			"total_reports", "draft_reports", "published_reports", "reports_this_month",
		}).AddRow(5, 2, 1, 3))

	stats, err := repo.Stats(context.Background(), monthStart)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalReports)
	assert.Equal(t, 3, stats.ReportsThisMonth)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_ListFiltersByOrphan(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReportRepository(db, logger.NewNopLogger())

	filter := types.NewDefaultReportFilter()
	filter.OrphanID = lo.ToPtr("orphan_1")
	filter.Ordering = lo.ToPtr("-published_at")

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE r.orphan_id = $1 ORDER BY r.published_at DESC, r.id DESC LIMIT $2`)).
		WithArgs("orphan_1", 50).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.List(context.Background(), filter)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxUsesTransactionForRepositoryCalls(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrphanRepository(db, logger.NewNopLogger())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM orphans`).WithArgs("orphan_1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		return repo.Delete(ctx, "orphan_1")
	})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewOrphanRepository(db, logger.NewNopLogger())

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM orphans`).WithArgs("orphan_1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := db.WithTx(context.Background(), func(ctx context.Context) error {
		return repo.Delete(ctx, "orphan_1")
	})
	assert.True(t, ierr.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}
