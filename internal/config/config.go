package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port    string `env:"PORT,    default=8080"`
	GinMode string `env:"GIN_MODE, default=debug"`

	LogLevel string `env:"LOG_LEVEL, default=info"`

	DBDriver   string `env:"DB_DRIVER,   default=mysql"`
	DBHost     string `env:"DB_HOST,     default=localhost"`
	DBPort     string `env:"DB_PORT,     default=3306"`
	DBUser     string `env:"DB_USER,     default=taskuser"`
	DBPassword string `env:"DB_PASSWORD, default=taskpassword"`
	DBName     string `env:"DB_NAME,     default=task_tracker"`

	// RedisAddr selects the refresh-token store. When empty the server
	// falls back to an in-process store.
	RedisAddr string `env:"REDIS_ADDR"`
	RedisDB   int    `env:"REDIS_DB, default=0"`

	JWTSecret       string        `env:"JWT_SECRET, default=default-secret-key-change-me"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,  default=60m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`

	// Seed values for the bootstrap superadmin.
	SuperadminName     string `env:"SUPERADMIN_NAME,     default=superadmin"`
	SuperadminEmail    string `env:"SUPERADMIN_EMAIL,    default=superadmin@example.com"`
	SuperadminPhone    string `env:"SUPERADMIN_PHONE,    default=123456789"`
	SuperadminPassword string `env:"SUPERADMIN_PASSWORD, default=superadminpassword"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
