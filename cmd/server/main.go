package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/stockrisk/internal/config"
	"github.com/JonMunkholm/stockrisk/internal/core"
	"github.com/JonMunkholm/stockrisk/internal/inventory"
	"github.com/JonMunkholm/stockrisk/internal/logging"
	"github.com/JonMunkholm/stockrisk/internal/report"
	"github.com/JonMunkholm/stockrisk/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	logger.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"upload_max_file_size", cfg.Upload.MaxFileSize,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"require_api_key", cfg.Security.RequireAPIKey,
		"report_enabled", cfg.Report.Enabled(),
	)
	logger.Debug("effective configuration", "config", cfg.String())

	// A nil *report.Client stored in the interface would not compare equal
	// to nil, so the reporter is only assigned on success.
	var reporter core.Synthesizer
	if cfg.Report.Enabled() {
		client, err := report.NewClient(report.Config{
			Endpoint: cfg.Report.Endpoint,
			APIKey:   cfg.Report.APIKey,
			Model:    cfg.Report.Model,
		}, logger)
		if err != nil {
			logger.Error("failed to create report client", "error", err)
			os.Exit(1)
		}
		reporter = client
		logger.Info("report synthesis enabled", "model", client.Model(), "endpoint", cfg.Report.Endpoint)
	} else {
		logger.Warn("REPORT_API_KEY not set, report synthesis disabled")
	}

	service := core.NewService(core.Config{
		MaxFileSize:     cfg.Upload.MaxFileSize,
		MaxConcurrent:   cfg.Upload.MaxConcurrent,
		MaxWaitTime:     cfg.Upload.MaxWaitTime,
		AnalysisTimeout: cfg.Upload.Timeout,
		ReportTimeout:   cfg.Report.Timeout,
		CriticalLimit:   cfg.Report.CriticalLimit,
	}, inventory.DefaultAnalyzer(logger), reporter, logger)

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		defer close(idle)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Stop accepting requests first; decodes that outlived their request
		// still hold analysis slots.
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}

		if status := service.LimiterStatus(); status.Active > 0 {
			logger.Info("waiting for analyses to complete", "active", status.Active)
			if err := service.WaitForAnalyses(shutdownCtx); err != nil {
				logger.Warn("analyses did not complete in time", "error", err)
			} else {
				logger.Info("all analyses completed")
			}
		}
	}()

	logger.Info("server starting", "addr", cfg.Server.Addr(), "version", web.Version)
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
	<-idle
	logger.Info("server stopped")
}
