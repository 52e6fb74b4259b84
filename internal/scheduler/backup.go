package scheduler

import (
	"context"
	"time"

	"github.com/litemark/litemark/internal/backup"
	"github.com/litemark/litemark/internal/logger"
)

// BackupRunner periodically snapshots the full document set and uploads it
// to the WebDAV backup target.
type BackupRunner struct {
	exporter      *backup.Exporter
	uploader      *backup.Uploader
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewBackupRunner creates a new backup runner.
func NewBackupRunner(
	exporter *backup.Exporter,
	uploader *backup.Uploader,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *BackupRunner {
	return &BackupRunner{
		exporter:      exporter,
		uploader:      uploader,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start begins the periodic backup loop. Unlike a data reload there is no
// immediate run on boot; the first backup happens on the first tick or
// manual trigger.
func (br *BackupRunner) Start(ctx context.Context) {
	ticker := time.NewTicker(br.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := br.Run(ctx); err != nil {
					br.logger.Error("scheduled backup failed", logger.Error(err))
				}
			case <-br.manualTrigger:
				br.logger.Info("manual backup triggered")
				if err := br.Run(ctx); err != nil {
					br.logger.Error("manual backup failed", logger.Error(err))
				}
			case <-br.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the runner.
func (br *BackupRunner) Stop() {
	close(br.stopCh)
}

// Run performs one snapshot-upload-prune cycle.
func (br *BackupRunner) Run(ctx context.Context) error {
	snap, err := br.exporter.Snapshot(ctx)
	if err != nil {
		return err
	}

	remote, err := br.uploader.Upload(ctx, snap)
	if err != nil {
		return err
	}

	br.logger.Info("backup complete",
		logger.String("file", remote),
		logger.Int("bookmarks", len(snap.Bookmarks)))

	deleted, err := br.uploader.Prune(ctx)
	if err != nil {
		// Pruning is best effort; the snapshot is already safe.
		br.logger.Warn("failed to prune old backups", logger.Error(err))
		return nil
	}
	if deleted > 0 {
		br.logger.Info("pruned old backups", logger.Int("deleted", deleted))
	}
	return nil
}
