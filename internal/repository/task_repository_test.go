package repository

import (
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"tasktracker/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestTaskRepositoryList_OrdersByCreatedAtDesc(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `tasks` ORDER BY tasks.created_at DESC",
	)).WillReturnRows(sqlmock.NewRows([]string{"id", "employee_id", "description", "status", "created_at", "updated_at"}))

	tasks, err := repo.List(TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepositoryList_AppliesStatusAndSearchFilters(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTaskRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `tasks` WHERE tasks.status = ? AND tasks.status LIKE ? ORDER BY tasks.created_at DESC",
	)).WithArgs("pending", "%pen%").
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "employee_id", "description", "status", "created_at", "updated_at"}).
			AddRow(1, 5, "write report", "pending", now, now))

	// Preload of the owning employee for the returned row
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `employees` WHERE `employees`.`id` = ?",
	)).WithArgs(5).
		WillReturnRows(sqlmock.
			NewRows([]string{"id", "name", "email", "phone", "role", "is_active"}).
			AddRow(5, "Bob", "bob@x.com", "555", "employee", true))

	status := models.TaskStatusPending
	tasks, err := repo.List(TaskFilter{Status: &status, Search: "pen"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, uint64(1), tasks[0].ID)
	assert.Equal(t, "Bob", tasks[0].Employee.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
