// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/ansuz/internal/api"
	"github.com/starford/ansuz/internal/mcpserver"
	"github.com/starford/ansuz/internal/notion"
	"github.com/starford/ansuz/internal/pagewriter"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Structured JSON logs go to stderr. In stdio mode stdout carries
	// the MCP protocol frames and must stay clean.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.Bool("http_mode", app.httpMode),
		slog.Bool("api_key_set", cfg.Notion.APIKey != ""),
		slog.Bool("parent_page_set", cfg.Notion.ParentPageID != ""),
		slog.String("log_level", cfg.App.LogLevel.String()))

	if cfg.Notion.ParentPageID == "" {
		logger.Warn("no default parent page configured, page creation needs an explicit parent_id")
	}

	// Initialize the Notion client.
	client, err := notion.NewClient(notion.Options{
		Token:        cfg.Notion.APIKey,
		BaseURL:      cfg.Notion.BaseURL,
		APIVersion:   cfg.Notion.Version,
		Timeout:      time.Duration(cfg.Notion.TimeoutSeconds) * time.Second,
		MaxRetries:   cfg.Notion.MaxRetries,
		MaxBatchSize: cfg.Write.BatchSize,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("init notion client: %w", err)
	}

	writer := pagewriter.NewService(client, pagewriter.Options{
		DefaultParentID: cfg.Notion.ParentPageID,
		ReplaceClears:   cfg.Write.ReplaceClearsExisting,
		Logger:          logger,
	})

	srv := mcpserver.New(writer)

	if !app.httpMode {
		logger.Info("Serving MCP over stdio")
		return srv.ServeStdio()
	}

	return serveHTTP(ctx, cfg, srv, logger)
}

func serveHTTP(ctx context.Context, cfg *Config, srv *mcpserver.Server, logger *slog.Logger) error {
	r := api.NewRouter(srv.HTTPHandler("/mcp"), cfg.Auth.AuthEnabled(), cfg.Auth.Token)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
