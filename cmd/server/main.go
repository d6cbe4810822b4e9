// Solar siting UI server entry point
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sunscout/solar-siting-ui/internal/api"
	"github.com/sunscout/solar-siting-ui/internal/config"
	"github.com/sunscout/solar-siting-ui/internal/engine"
	"github.com/sunscout/solar-siting-ui/internal/templates"
	"github.com/sunscout/solar-siting-ui/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Set up logger
	logger := setupLogger(cfg.Logging.Level, cfg.Logging.Format)

	logger.Info("starting solar siting UI",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"engine", cfg.Engine.BaseURL,
	)

	// Load page and fragment templates
	renderer, err := templates.New(filepath.Join(cfg.UI.WebDir, "templates"))
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	// Create the session store; each session starts at the default map view
	newSession := func() *ui.Session {
		return ui.NewSession(cfg.Map.DefaultCenter(), cfg.Map.DefaultZoom)
	}
	store := ui.NewMemorySessionStore(newSession, cfg.UI.SessionTTL, cfg.UI.SessionCleanup)
	defer store.Stop()
	logger.Info("initialized session store",
		"ttl", cfg.UI.SessionTTL.String(),
		"cleanup_interval", cfg.UI.SessionCleanup.String(),
	)

	// Create analysis backend client
	analyzer := engine.NewClient(cfg.Engine.BaseURL, cfg.Engine.Timeout).WithLogger(logger)

	// Create handlers and router
	handlers := api.NewHandlers(cfg, analyzer, store, renderer, logger)
	router := api.NewRouter(handlers, cfg.UI.WebDir, logger)

	// Create server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info("received shutdown signal", "signal", sig)
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	logger.Info("shutting down server", "timeout", cfg.Server.ShutdownTimeout)
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

func setupLogger(level, format string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
