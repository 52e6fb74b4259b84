package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/litemark/litemark/internal/httpserver/deps"
	"github.com/litemark/litemark/internal/httpserver/handlers"
	"github.com/litemark/litemark/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	r.Get("/api/bookmarks", handlers.ListBookmarks(d))

	auth := mw.RequireToken(d.AdminToken, d.Logger)
	r.With(auth).Post("/api/bookmarks", handlers.CreateBookmark(d))
	r.With(auth).Put("/api/bookmarks/{id}", handlers.UpdateBookmark(d))
	r.With(auth).Delete("/api/bookmarks/{id}", handlers.DeleteBookmark(d))
	r.With(auth).Post("/api/bookmarks/reorder", handlers.ReorderBookmarks(d))
	r.With(auth).Post("/api/bookmarks/reorder-categories", handlers.ReorderCategories(d))
}
