package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/litemark/litemark/internal/httpserver/deps"
	"github.com/litemark/litemark/internal/httpserver/handlers"
	"github.com/litemark/litemark/internal/httpserver/mw"
)

func init() { Register(registerSettings) }

func registerSettings(r chi.Router, d deps.Deps) {
	r.Get("/api/settings", handlers.GetSettings(d))

	auth := mw.RequireToken(d.AdminToken, d.Logger)
	r.With(auth).Put("/api/settings", handlers.UpdateSettings(d))
	r.With(auth).Post("/api/settings/refresh", handlers.RefreshSettings(d))
}
