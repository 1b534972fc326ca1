package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"tasktracker/internal/config"
	"tasktracker/internal/logger"
	"tasktracker/internal/models"
)

var DB *gorm.DB

// Connect opens the database selected by cfg.DBDriver (mysql or postgres).
func Connect(cfg *config.Config) error {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		dialector = postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBName,
		)
		dialector = mysql.Open(dsn)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log := logger.Get()
	log.Info().Str("driver", cfg.DBDriver).Msg("database connection established")
	return nil
}

// Migrate creates or updates the schema for all models.
func Migrate() error {
	err := DB.AutoMigrate(
		&models.Employee{},
		&models.Task{},
		&models.TaskEditLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log := logger.Get()
	log.Info().Msg("database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (used for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
