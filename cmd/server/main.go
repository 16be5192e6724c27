package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shareit-go/shareit-server/internal/app"
	"github.com/shareit-go/shareit-server/internal/config"
	"github.com/shareit-go/shareit-server/internal/db"
	"github.com/shareit-go/shareit-server/internal/logging"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.Setup("info")
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.Setup(cfg.LogLevel)

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to db")
	}
	defer pool.Close()

	if err := db.MigrateUp(cfg.DBDSN, cfg.MigrationsDir); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}

	container := app.NewContainer(app.Config{
		DBPool:      pool,
		Logger:      logger,
		ProdOrigins: cfg.ProdOrigins,
	})

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("server running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited gracefully")
}
