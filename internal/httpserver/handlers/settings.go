package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/litemark/litemark/internal/domain"
	"github.com/litemark/litemark/internal/httpserver/deps"
	"github.com/litemark/litemark/internal/logger"
)

// GetSettings returns the site settings, defaults included on first run.
func GetSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := d.Repo.GetSettings(r.Context())
		if err != nil {
			d.Logger.Error("failed to read settings", logger.Error(err))
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	}
}

// UpdateSettings applies a partial settings update.
func UpdateSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch domain.SettingsPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		settings, err := d.Repo.UpdateSettings(r.Context(), patch)
		if err != nil {
			d.Logger.Error("failed to update settings", logger.Error(err))
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	}
}

// RefreshSettings re-reads settings from storage, bypassing the cache.
func RefreshSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := d.Repo.ForceRefreshSettings(r.Context())
		if err != nil {
			d.Logger.Error("failed to refresh settings", logger.Error(err))
			writeOpError(w, err)
			return
		}
		d.Logger.Info("settings cache refreshed via endpoint",
			logger.String("remote_ip", r.RemoteAddr))
		writeJSON(w, http.StatusOK, settings)
	}
}
