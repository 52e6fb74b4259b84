package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/litemark/litemark/internal/backup"
	"github.com/litemark/litemark/internal/domain"
	"github.com/litemark/litemark/internal/httpserver/deps"
	"github.com/litemark/litemark/internal/logger"
)

type importResponse struct {
	Imported  int               `json:"imported"`
	Bookmarks []domain.Bookmark `json:"bookmarks"`
}

// ExportBackup streams a snapshot of the full document set as a download.
func ExportBackup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := d.Exporter.Snapshot(r.Context())
		if err != nil {
			d.Logger.Error("failed to build snapshot", logger.Error(err))
			writeOpError(w, err)
			return
		}

		filename := backup.SnapshotFilename(snap.ExportedAt)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", filename))
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		_ = enc.Encode(snap)
	}
}

// ImportBackup restores bookmarks (and settings when present) from an
// uploaded snapshot. ?overwrite=true replaces the existing collection
// instead of extending it.
func ImportBackup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var snap backup.Snapshot
		if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
			writeError(w, http.StatusBadRequest, "invalid snapshot body")
			return
		}

		overwrite := r.URL.Query().Get("overwrite") == "true"

		inputs := make([]domain.BookmarkInput, 0, len(snap.Bookmarks))
		for _, b := range snap.Bookmarks {
			inputs = append(inputs, domain.BookmarkInput{
				Title:       b.Title,
				URL:         b.URL,
				Category:    b.Category,
				Description: b.Description,
				Visible:     b.Visible,
			})
		}

		bookmarks, imported, err := d.Repo.ImportBookmarks(r.Context(), inputs, overwrite)
		if err != nil {
			d.Logger.Error("failed to import bookmarks", logger.Error(err))
			writeOpError(w, err)
			return
		}

		// A snapshot with no theme predates settings or was hand-stripped;
		// leave the current settings alone in that case.
		if snap.Settings.Theme != "" {
			patch := domain.SettingsPatch{
				Theme:     &snap.Settings.Theme,
				SiteTitle: &snap.Settings.SiteTitle,
				SiteIcon:  &snap.Settings.SiteIcon,
			}
			if _, err := d.Repo.UpdateSettings(r.Context(), patch); err != nil {
				d.Logger.Warn("snapshot settings not applied", logger.Error(err))
			}
		}

		d.Logger.Info("snapshot imported",
			logger.Int("imported", imported),
			logger.String("remote_ip", r.RemoteAddr))
		writeJSON(w, http.StatusOK, importResponse{Imported: imported, Bookmarks: bookmarks})
	}
}

// RunBackup triggers an immediate backup run on the scheduler.
func RunBackup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.BackupTrigger == nil {
			writeError(w, http.StatusConflict, "backup is not enabled")
			return
		}

		select {
		case d.BackupTrigger <- struct{}{}:
			d.Logger.Info("manual backup triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, map[string]string{"status": "backup triggered"})
		default:
			d.Logger.Warn("backup already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			writeError(w, http.StatusTooManyRequests, "backup already in progress")
		}
	}
}
