package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tasktracker/internal/config"
	"tasktracker/internal/models"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Employee{}, &models.Task{}, &models.TaskEditLog{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func seedConfig() *config.Config {
	return &config.Config{
		SuperadminName:     "superadmin",
		SuperadminEmail:    "superadmin@example.com",
		SuperadminPhone:    "123456789",
		SuperadminPassword: "superadminpassword",
	}
}

func TestEnsureSuperadmin_CreatesWhenAbsent(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, EnsureSuperadmin(db, seedConfig()))

	var superadmin models.Employee
	require.NoError(t, db.Where("role = ?", models.RoleSuperadmin).First(&superadmin).Error)
	assert.Equal(t, "superadmin@example.com", superadmin.Email)
	assert.True(t, superadmin.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(superadmin.PasswordHash), []byte("superadminpassword")))
}

func TestEnsureSuperadmin_Idempotent(t *testing.T) {
	db := setupSeedTestDB(t)

	require.NoError(t, EnsureSuperadmin(db, seedConfig()))
	require.NoError(t, EnsureSuperadmin(db, seedConfig()))

	var count int64
	db.Model(&models.Employee{}).Where("role = ?", models.RoleSuperadmin).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEnsureSuperadmin_GuardIsRoleNotEmail(t *testing.T) {
	db := setupSeedTestDB(t)

	// A superadmin under a different email still suppresses seeding.
	existing := models.Employee{
		Name:  "boss",
		Email: "boss@other.com",
		Phone: "999",
		Role:  models.RoleSuperadmin,
	}
	require.NoError(t, db.Create(&existing).Error)

	require.NoError(t, EnsureSuperadmin(db, seedConfig()))

	var count int64
	db.Model(&models.Employee{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
