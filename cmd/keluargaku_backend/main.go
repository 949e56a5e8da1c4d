package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/keluargaku/keluargaku_app/internal/core/services"
	"github.com/keluargaku/keluargaku_app/internal/handlers"
	"github.com/keluargaku/keluargaku_app/internal/middleware"
	"github.com/keluargaku/keluargaku_app/internal/platform/config"
	"github.com/keluargaku/keluargaku_app/internal/repositories/database/pgsql"
	"github.com/keluargaku/keluargaku_app/internal/utils"
	"github.com/keluargaku/keluargaku_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Keluargaku API
// @version 1.0
// @description Family finance tracker: household ledger, business orders, debts and reports.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(&repos, cfg)

	// The listener feeds row-change notifications into the change feed for
	// as long as the server runs.
	listener := pgsql.NewChangeListener(dbPool, cfg.ChangeFeedChannel, serviceContainer.ChangeFeed, logger)
	go listener.Run(ctx)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.AnalyticsMiddleware(posthogClient),
		cors.New(corsConfig(cfg)),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if cfg.FrontendBaseURL != "" {
		corsCfg.AllowOrigins = []string{cfg.FrontendBaseURL}
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowCredentials = !corsCfg.AllowAllOrigins
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	return corsCfg
}

// runMigrations applies all pending up migrations using a short-lived
// database/sql connection over the pgx stdlib driver.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied")
	}
	return nil
}
