package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/litemark/litemark/internal/backup"
	"github.com/litemark/litemark/internal/config"
	"github.com/litemark/litemark/internal/httpserver"
	"github.com/litemark/litemark/internal/httpserver/deps"
	"github.com/litemark/litemark/internal/logger"
	"github.com/litemark/litemark/internal/repo"
	"github.com/litemark/litemark/internal/scheduler"
	"github.com/litemark/litemark/internal/store"
	"github.com/litemark/litemark/internal/version"
)

type App struct {
	cfg        *config.Config
	logger     logger.Logger
	server     *httpserver.Server
	repository *repo.Repository
	backups    *scheduler.BackupRunner
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Construct the one storage backend for the process lifetime.
	// Fail fast on unknown drivers or bad credentials shape.
	backend, err := store.NewBackend(cfg.Storage)
	if err != nil {
		loggerClient.Errorf("Failed to initialize storage backend: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("storage backend initialized",
		logger.String("driver", backend.Kind()))

	driver := store.NewDriver(backend, cfg.Storage.BookmarksPath, cfg.Storage.SettingsPath, loggerClient)
	repository := repo.New(driver, cfg.CacheRefresh, loggerClient)

	exporter := backup.NewExporter(repository)

	// Backup scheduler plus its manual trigger (nil when disabled, which
	// makes the /backup/run endpoint answer 409).
	var backups *scheduler.BackupRunner
	var backupTrigger chan struct{}
	if cfg.Backup.Enabled {
		backupTrigger = make(chan struct{}, 1)
		uploader := backup.NewUploader(cfg.Backup, loggerClient)
		backups = scheduler.NewBackupRunner(
			exporter,
			uploader,
			loggerClient,
			cfg.Backup.Interval,
			backupTrigger,
		)
	} else {
		loggerClient.Info("WebDAV backup not configured, scheduler disabled")
	}

	if cfg.AdminToken == "" {
		loggerClient.Warn("LITEMARK_ADMIN_TOKEN is empty, mutating routes are unauthenticated")
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		Repo:          repository,
		Exporter:      exporter,
		BackupTrigger: backupTrigger,
		AdminToken:    cfg.AdminToken,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:        cfg,
		logger:     loggerClient,
		server:     server,
		repository: repository,
		backups:    backups,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting LiteMark v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("LiteMark %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the caches so the first request does not pay the storage
	// round-trip. Failure is non-fatal; reads degrade to fallbacks.
	if _, err := a.repository.ForceRefreshBookmarks(ctx); err != nil {
		a.logger.Warn("bookmarks cache warm-up failed", logger.Error(err))
	}
	if _, err := a.repository.ForceRefreshSettings(ctx); err != nil {
		a.logger.Warn("settings cache warm-up failed", logger.Error(err))
	}

	if a.backups != nil {
		a.backups.Start(ctx)
		a.logger.Info("backup scheduler started",
			logger.Duration("interval", a.cfg.Backup.Interval),
			logger.Int("keep", a.cfg.Backup.Keep))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.backups != nil {
		a.backups.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.repository.Close()

	a.logger.Info("✅ LiteMark stopped cleanly")
	return nil
}
