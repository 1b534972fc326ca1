package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"tasktracker/internal/config"
	"tasktracker/internal/database"
	"tasktracker/internal/handlers"
	"tasktracker/internal/logger"
	"tasktracker/internal/middleware"
	"tasktracker/internal/repository"
	"tasktracker/internal/services"
	"tasktracker/internal/token"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.GinMode != "release",
	})

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Seed the bootstrap superadmin (no-op when one already exists)
	if err := database.EnsureSuperadmin(database.GetDB(), cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to seed superadmin")
	}

	// Refresh tokens live in Redis when configured, in process otherwise
	var refreshStore token.RefreshStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		refreshStore = token.NewRedisStore(client)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis refresh-token store")
	} else {
		refreshStore = token.NewMemoryStore()
		log.Warn().Msg("REDIS_ADDR not set, refresh tokens are held in process memory")
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, refreshStore)

	// Initialize repositories and services
	employeeRepo := repository.NewEmployeeRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	authService := services.NewAuthService(employeeRepo, tokens)
	employeeService := services.NewEmployeeService(employeeRepo)
	taskService := services.NewTaskService(taskRepo, employeeRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Public routes
	r.POST("/token/", authHandler.Token)
	r.POST("/token/refresh/", authHandler.Refresh)
	r.POST("/register/", authHandler.Register)

	// Authenticated routes
	auth := r.Group("/", middleware.RequireAuth(tokens, employeeRepo))
	{
		auth.POST("/employees/create/", employeeHandler.Create)
		auth.GET("/employees/", employeeHandler.List)
		auth.GET("/employees/:id/", employeeHandler.Get)
		auth.PUT("/employees/:id/", employeeHandler.Update)
		auth.PATCH("/employees/:id/", employeeHandler.Update)
		auth.DELETE("/employees/:id/", employeeHandler.Delete)
		auth.POST("/employees/:id/promote/", employeeHandler.Promote)

		auth.GET("/tasks/", taskHandler.List)
		auth.POST("/tasks/", taskHandler.Create)
		auth.GET("/tasks/:id/", taskHandler.Get)
		auth.PUT("/tasks/:id/", taskHandler.Update)
		auth.PATCH("/tasks/:id/", taskHandler.Update)
		auth.DELETE("/tasks/:id/", taskHandler.Delete)
		auth.GET("/tasks/:id/logs/", taskHandler.Logs)
	}

	// Start server
	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
