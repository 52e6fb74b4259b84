package deps

import (
	"time"

	"github.com/litemark/litemark/internal/backup"
	"github.com/litemark/litemark/internal/logger"
	"github.com/litemark/litemark/internal/repo"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Repo          *repo.Repository // cached document repository
	Exporter      *backup.Exporter // snapshot assembly for /backup/export
	BackupTrigger chan struct{}    // channel to trigger a manual backup run (nil if backup disabled)
	AdminToken    string           // bearer token required on mutating routes; empty disables auth
}
