// Package main provides the Recetaria API server
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/recetaria/v1/internal/application/ai"
	"github.com/recetaria/v1/internal/application/recipe"
	"github.com/recetaria/v1/internal/application/user"
	"github.com/recetaria/v1/internal/infrastructure/ai/openai"
	"github.com/recetaria/v1/internal/infrastructure/config"
	"github.com/recetaria/v1/internal/infrastructure/http/server"
	persistence "github.com/recetaria/v1/internal/infrastructure/persistence/gorm"
	"github.com/recetaria/v1/internal/infrastructure/persistence/postgres"
	"github.com/recetaria/v1/internal/infrastructure/persistence/sqlite"
	"github.com/recetaria/v1/internal/infrastructure/security"
	"github.com/recetaria/v1/pkg/healthcheck"
	"github.com/recetaria/v1/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer appLogger.Sync()

	db, err := openDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
	}

	recipeRepo := persistence.NewRecipeRepository(db)
	userRepo := persistence.NewUserRepository(db)

	recipeService := recipe.NewRecipeService(recipeRepo, appLogger)
	userService := user.NewUserService(userRepo, appLogger)
	authService := security.NewAuthService(cfg, appLogger)

	completionClient := openai.NewClient(cfg, nil, appLogger)
	chefService := ai.NewChefService(completionClient, appLogger)

	health := healthcheck.New(cfg.App.Version, appLogger)
	health.Register("database", healthcheck.NewDatabaseChecker(db))
	health.Register("completion_api", healthcheck.NewExternalServiceChecker(
		"completion_api",
		cfg.AI.BaseURL,
		5*time.Second,
	))

	httpServer := server.NewServer(
		cfg,
		appLogger,
		recipeService,
		userService,
		chefService,
		authService,
		health,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		appLogger.Info("Starting Recetaria server",
			zap.Int("port", cfg.Server.Port),
			zap.String("environment", cfg.App.Environment),
		)

		if err := httpServer.Start(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", zap.Error(err))
	}

	appLogger.Info("Server stopped")
}

func openDatabase(cfg *config.Config, appLogger *zap.Logger) (*gorm.DB, error) {
	if cfg.Database.Driver == "sqlite" {
		appLogger.Info("Using SQLite database", zap.String("path", cfg.Database.Database))
		return sqlite.SetupDatabase(cfg.Database.Database, gormlogger.Warn)
	}

	return postgres.Connect(cfg, appLogger)
}
