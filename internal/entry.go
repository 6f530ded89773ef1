// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/thorcollective/hearth/internal/api"
	"github.com/thorcollective/hearth/internal/catalog"
	"github.com/thorcollective/hearth/internal/chat"
	"github.com/thorcollective/hearth/internal/hubfs"
	"github.com/thorcollective/hearth/internal/index"
	"github.com/thorcollective/hearth/internal/mcpserver"
	"github.com/thorcollective/hearth/internal/sse"
	"github.com/thorcollective/hearth/internal/storage"
)

// Initial catalog load retry policy. After the attempts are exhausted the
// server stays up in degraded mode (503 catalog not ready) and recovers
// on the next successful watcher-driven sync.
const (
	loadAttempts = 3
	loadBackoff  = 2 * time.Second
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

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("hub_repo", cfg.Hub.RepoURL()),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure vault directory exists.
	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return fmt.Errorf("create vault dir: %w", err)
	}

	// Initialize storage over the category directories.
	store, err := storage.NewFS(cfg.Vault.Path, cfg.Vault.EffectiveCategories(), cfg.Vault.Excluded)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// Initialize SQLite index.
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	// Snapshot store starts empty; handlers answer 503 until the first
	// successful load.
	snapshots := catalog.NewStore()

	reload := func() error {
		if _, err := index.Sync(db, store, logger); err != nil {
			return err
		}
		hunts, err := db.Snapshot()
		if err != nil {
			return err
		}
		snapshots.Swap(catalog.NewSnapshot(hunts))
		logger.Info("catalog loaded", slog.Int("hunts", len(hunts)))
		return nil
	}

	// Initial load with bounded retries; failure degrades, never aborts.
	for attempt := 1; ; attempt++ {
		err := reload()
		if err == nil {
			break
		}
		logger.Warn("initial catalog load failed",
			slog.Int("attempt", attempt), slog.String("error", err.Error()))
		if attempt >= loadAttempts {
			logger.Warn("catalog unavailable, serving degraded until next sync")
			break
		}
		select {
		case <-time.After(loadBackoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// SSE broker.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()

	// Upstream repository browser.
	var hubOpts []hubfs.Option
	if cfg.Hub.APIBase != "" && cfg.Hub.RawBase != "" {
		hubOpts = append(hubOpts, hubfs.WithBaseURLs(cfg.Hub.APIBase, cfg.Hub.RawBase))
	}
	hub := hubfs.New(cfg.Hub.Owner, cfg.Hub.Repo, cfg.Hub.Branch, hubOpts...)

	// Build API handlers and router.
	responder := chat.NewResponder(rand.New(rand.NewSource(time.Now().UnixNano())))
	handler := api.NewHandler(snapshots, responder, cfg.Hub.SourceBaseURL(), cfg.Hub.RepoURL())
	apiRouter := api.NewRouter(handler, cfg.Auth.AuthEnabled(), cfg.Auth.Token,
		http.HandlerFunc(broker.ServeHTTP), api.NewBrowseHandler(hub))

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the vault; every sync swaps in a fresh snapshot and feeds the
	// SSE broker.
	g.Go(func() error {
		return index.Watch(gCtx, db, store, cfg.Vault.Path, logger, func(changes []index.Change) {
			hunts, err := db.Snapshot()
			if err != nil {
				logger.Error("snapshot reload failed", slog.String("error", err.Error()))
				return
			}
			snapshots.Swap(catalog.NewSnapshot(hunts))
			broker.PublishChanges(changes)
		})
	})

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Optional MCP stdio server over the same snapshot store.
	if cfg.MCP.Enabled {
		g.Go(func() error {
			logger.Info("Starting MCP stdio server")
			if err := mcpserver.New(snapshots, cfg.Hub.SourceBaseURL()).ServeStdio(); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		})
	}

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
