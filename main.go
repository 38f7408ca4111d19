package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/omimtools/catalog-api/catalogparser"
	"github.com/omimtools/catalog-api/config"
	"github.com/omimtools/catalog-api/data"
	"github.com/omimtools/catalog-api/health"
	"github.com/omimtools/catalog-api/logging"
	"github.com/omimtools/catalog-api/scheduler"
	"github.com/omimtools/catalog-api/server"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Init(cfg.LogDir, cfg.LogLevel, cfg.LogRetentionWeeks)
	defer logging.Close()

	dataStore := data.NewCatalogContainer()
	dataStore.SetServerStartTime(time.Now())

	parser := catalogparser.NewOmimParser(cfg.DataDir, cfg.OmimAPIKey, cfg.DownloadOnStart, logging.Logger())

	sched := scheduler.NewScheduler(dataStore, parser, cfg.UpdateAt)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	checker := health.NewHealthChecker(dataStore, cfg.UpdateAt)
	srv := server.NewServer(cfg, dataStore, checker)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logging.Error("Server error", "error", err)
		os.Exit(1)
	case sig := <-quit:
		logging.Info("Received shutdown signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
