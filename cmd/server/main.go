package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/questionnaire/internal/config"
	"github.com/JonMunkholm/questionnaire/internal/core"
	"github.com/JonMunkholm/questionnaire/internal/launch"
	"github.com/JonMunkholm/questionnaire/internal/logging"
	"github.com/JonMunkholm/questionnaire/internal/remote"
	"github.com/JonMunkholm/questionnaire/internal/web"
	"github.com/joho/godotenv"
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

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	converter := core.NewConverter(
		core.WithDetector(core.NewChardetDetector(cfg.Upload.MinConfidence)),
	)

	// A nil submitter keeps the submit route and button off.
	var submitter web.Submitter
	if cfg.Remote.Enabled {
		submitter = remote.NewClient(cfg.Remote.EndpointURL, remote.WithTimeout(cfg.Remote.Timeout))
		slog.Info("remote submission enabled", "endpoint", cfg.Remote.EndpointURL)
	} else {
		slog.Info("remote submission disabled")
	}

	server := web.NewServer(converter, submitter, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Browser.Open {
		launch.AfterStart(ctx, cfg.Server.BaseURL(), cfg.Browser.Delay)
	}

	// Graceful shutdown
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr(), "url", cfg.Server.BaseURL())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}

	// Serve returns as soon as Shutdown starts; wait for in-flight work.
	<-shutdownDone
	slog.Info("server stopped")
}
