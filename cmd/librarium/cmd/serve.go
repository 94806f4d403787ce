// cmd/librarium/cmd/serve.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"librarium/internal/catalog"
	"librarium/internal/config"
	"librarium/internal/rest"
	"librarium/internal/snapshot"
	"librarium/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog REST server",
	Long: `Start the REST server. When a snapshot exists at the configured
location it is restored before serving, and a fresh snapshot is saved on
shutdown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	log := newLogger(cfg.LogLevel)

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}

	store, closeStore, err := newSnapshotStore(ctx, cfg.Snapshot)
	if err != nil {
		return err
	}
	defer closeStore()

	svc := catalog.NewService()
	if err := restoreSnapshot(ctx, svc, store, log); err != nil {
		return err
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst)
	router := rest.NewRouter(rest.NewHandler(svc), log, limiter)
	server := rest.NewServer(cfg.Listen, router, log)

	errs := make(chan error, 1)
	go func() { errs <- server.Start() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		return err
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := drainAndSnapshot(shutdownCtx, server, svc, store, log); err != nil {
		return err
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		log.Error("failed to shut down telemetry", "error", err)
	}
	return nil
}

// shutdowner lets the drain sequence be exercised without a live listener.
type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// drainAndSnapshot stops the server first so in-flight requests finish, then
// captures the final state. Saving before the drain would lose mutations
// made by requests completed during shutdown.
func drainAndSnapshot(ctx context.Context, server shutdowner, svc catalog.Service, store snapshot.Store, log *slog.Logger) error {
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := store.Save(ctx, snapshot.Capture(ctx, svc)); err != nil {
		log.Error("failed to save snapshot", "error", err)
	}
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newSnapshotStore(ctx context.Context, cfg config.SnapshotConfig) (snapshot.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		store, err := snapshot.NewPGStore(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return snapshot.NewFileStore(cfg.Path), func() {}, nil
	}
}

func restoreSnapshot(ctx context.Context, svc catalog.Service, store snapshot.Store, log *slog.Logger) error {
	snap, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, snapshot.ErrSnapshotNotFound) {
			log.Info("no snapshot found, starting empty")
			return nil
		}
		return err
	}
	if err := snapshot.Restore(ctx, svc, snap); err != nil {
		return err
	}
	log.Info("snapshot restored",
		"items", len(snap.Items),
		"holders", len(snap.Holders),
		"loans", len(snap.Loans),
	)
	return nil
}
