package backup

import (
	"context"
	"time"

	"github.com/litemark/litemark/internal/domain"
	"github.com/litemark/litemark/internal/repo"
)

// FormatVersion tags the snapshot layout.
const FormatVersion = "1.0"

// Snapshot is the full exported state at one point in time, used for
// backup and restore.
type Snapshot struct {
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	Settings   domain.Settings   `json:"settings"`
	Bookmarks  []domain.Bookmark `json:"bookmarks"`
}

// Exporter assembles snapshots from the repository. Pure read: no side
// effects, independent of the configured storage backend.
type Exporter struct {
	repo *repo.Repository
	now  func() time.Time
}

func NewExporter(r *repo.Repository) *Exporter {
	return &Exporter{repo: r, now: time.Now}
}

// Snapshot reads bookmarks and settings and stamps the result.
func (e *Exporter) Snapshot(ctx context.Context) (Snapshot, error) {
	bookmarks, err := e.repo.ListBookmarks(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	settings, err := e.repo.GetSettings(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		Version:    FormatVersion,
		ExportedAt: e.now().UTC(),
		Settings:   settings,
		Bookmarks:  bookmarks,
	}, nil
}
