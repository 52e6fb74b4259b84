package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/litemark/litemark/internal/httpserver/deps"
	"github.com/litemark/litemark/internal/httpserver/handlers"
	"github.com/litemark/litemark/internal/httpserver/mw"
)

func init() { Register(registerBackup) }

func registerBackup(r chi.Router, d deps.Deps) {
	auth := mw.RequireToken(d.AdminToken, d.Logger)
	r.With(auth).Get("/api/backup/export", handlers.ExportBackup(d))
	r.With(auth).Post("/api/backup/import", handlers.ImportBackup(d))
	r.With(auth).Post("/api/backup/run", handlers.RunBackup(d))
}
