package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/studio-b12/gowebdav"

	"github.com/litemark/litemark/internal/config"
	"github.com/litemark/litemark/internal/logger"
)

const (
	uploadTimeout  = 60 * time.Second
	uploadAttempts = 3
	// backoffStep grows linearly: 3s, 6s, 9s between attempts.
	backoffStep = 3 * time.Second
)

var snapshotName = regexp.MustCompile(`^litemark-backup-(\d{4}-\d{2}-\d{2})\.json$`)

// davClient is the slice of gowebdav.Client the uploader needs; tests
// substitute a fake.
type davClient interface {
	Write(path string, data []byte, mode os.FileMode) error
	ReadDir(path string) ([]os.FileInfo, error)
	Remove(path string) error
	MkdirAll(path string, mode os.FileMode) error
}

// Uploader pushes snapshots to the configured WebDAV target and prunes
// snapshots beyond the retention count.
type Uploader struct {
	client davClient
	cfg    config.BackupConfig
	log    logger.Logger
	sleep  func(time.Duration)
}

func NewUploader(cfg config.BackupConfig, log logger.Logger) *Uploader {
	client := gowebdav.NewClient(cfg.URL, cfg.Username, cfg.Password)
	client.SetTimeout(uploadTimeout)
	return &Uploader{
		client: client,
		cfg:    cfg,
		log:    log,
		sleep:  time.Sleep,
	}
}

// SnapshotFilename returns the date-stamped name for a snapshot file.
func SnapshotFilename(t time.Time) string {
	return fmt.Sprintf("litemark-backup-%s.json", t.Format("2006-01-02"))
}

func (u *Uploader) dir() string {
	dir := strings.TrimSuffix(u.cfg.Path, "/")
	if dir == "" {
		dir = "litemark-backup"
	}
	return dir
}

// Upload serializes the snapshot and writes it to a date-stamped file,
// retrying transient failures with linearly increasing delay.
func (u *Uploader) Upload(ctx context.Context, snap Snapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := u.dir()
	remote := path.Join(dir, SnapshotFilename(snap.ExportedAt))

	// Some servers refuse a PUT into a missing collection; creating an
	// existing one is harmless.
	if err := u.client.MkdirAll(dir, 0o755); err != nil {
		u.log.Debug("webdav mkdir failed (directory may exist)",
			logger.String("dir", dir), logger.Error(err))
	}

	var lastErr error
	for attempt := 1; attempt <= uploadAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if err := u.client.Write(remote, data, 0o644); err != nil {
			lastErr = err
			if attempt < uploadAttempts {
				wait := time.Duration(attempt) * backoffStep
				u.log.Warn("webdav upload failed, retrying",
					logger.String("file", remote),
					logger.Int("attempt", attempt),
					logger.Duration("wait", wait),
					logger.Error(err))
				u.sleep(wait)
			}
			continue
		}
		u.log.Info("snapshot uploaded",
			logger.String("file", remote),
			logger.Int("bytes", len(data)))
		return remote, nil
	}
	return "", fmt.Errorf("webdav upload failed after %d attempts: %w", uploadAttempts, lastErr)
}

// Prune deletes snapshot files beyond the retention count, newest first by
// the date embedded in the filename. Keep <= 0 disables pruning. Failures
// on individual files are logged and do not abort the batch.
func (u *Uploader) Prune(ctx context.Context) (int, error) {
	if u.cfg.Keep <= 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	dir := u.dir()
	infos, err := u.client.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, info := range infos {
		if !info.IsDir() && snapshotName.MatchString(info.Name()) {
			names = append(names, info.Name())
		}
	}
	if len(names) <= u.cfg.Keep {
		return 0, nil
	}

	// The embedded date sorts lexicographically; newest first.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	deleted := 0
	for _, name := range names[u.cfg.Keep:] {
		if err := u.client.Remove(path.Join(dir, name)); err != nil {
			u.log.Warn("failed to delete old snapshot",
				logger.String("file", name), logger.Error(err))
			continue
		}
		deleted++
	}
	return deleted, nil
}
