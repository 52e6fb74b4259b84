package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/litemark/litemark/internal/httpserver/deps"
	"github.com/litemark/litemark/internal/httpserver/handlers"
)

func init() { Register(registerHealthz) }

func registerHealthz(r chi.Router, d deps.Deps) {
	r.Get("/api/healthz", handlers.Healthz(d))
}
