package database

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktracker/internal/config"
	"tasktracker/internal/logger"
	"tasktracker/internal/models"
)

// EnsureSuperadmin seeds the bootstrap superadmin. It is idempotent: the
// guard is the presence of any superadmin-role row, never an insertion-order
// id, so re-running it against a populated database is a no-op.
func EnsureSuperadmin(db *gorm.DB, cfg *config.Config) error {
	var existing models.Employee
	err := db.Where("role = ?", models.RoleSuperadmin).First(&existing).Error
	if err == nil {
		log := logger.Get()
		log.Debug().Uint64("id", existing.ID).Msg("superadmin already present, skipping seed")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for existing superadmin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.SuperadminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash superadmin password: %w", err)
	}

	superadmin := models.Employee{
		Name:         cfg.SuperadminName,
		Email:        cfg.SuperadminEmail,
		Phone:        cfg.SuperadminPhone,
		Role:         models.RoleSuperadmin,
		IsActive:     true,
		PasswordHash: string(hash),
	}
	if err := db.Create(&superadmin).Error; err != nil {
		return fmt.Errorf("failed to create superadmin: %w", err)
	}

	log := logger.Get()
	log.Info().Str("email", superadmin.Email).Msg("superadmin seeded")
	return nil
}
