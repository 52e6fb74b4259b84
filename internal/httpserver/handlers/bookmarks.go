package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/litemark/litemark/internal/domain"
	"github.com/litemark/litemark/internal/httpserver/deps"
	"github.com/litemark/litemark/internal/logger"
)

type reorderRequest struct {
	Order []string `json:"order"`
}

// ListBookmarks returns the full collection in display order.
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookmarks, err := d.Repo.ListBookmarks(r.Context())
		if err != nil {
			d.Logger.Error("failed to list bookmarks", logger.Error(err))
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookmarks)
	}
}

// CreateBookmark creates a bookmark at the end of its category.
func CreateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input domain.BookmarkInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		bookmark, err := d.Repo.CreateBookmark(r.Context(), input)
		if err != nil {
			d.Logger.Error("failed to create bookmark", logger.Error(err))
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, bookmark)
	}
}

// UpdateBookmark replaces a bookmark's mutable fields.
func UpdateBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var input domain.BookmarkInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		bookmark, err := d.Repo.UpdateBookmark(r.Context(), id, input)
		if err != nil {
			d.Logger.Error("failed to update bookmark",
				logger.String("id", id), logger.Error(err))
			writeOpError(w, err)
			return
		}
		if bookmark == nil {
			writeError(w, http.StatusNotFound, "bookmark not found")
			return
		}
		writeJSON(w, http.StatusOK, bookmark)
	}
}

// DeleteBookmark removes a bookmark and returns the deleted record.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		bookmark, err := d.Repo.DeleteBookmark(r.Context(), id)
		if err != nil {
			d.Logger.Error("failed to delete bookmark",
				logger.String("id", id), logger.Error(err))
			writeOpError(w, err)
			return
		}
		if bookmark == nil {
			writeError(w, http.StatusNotFound, "bookmark not found")
			return
		}
		writeJSON(w, http.StatusOK, bookmark)
	}
}

// ReorderBookmarks applies an explicit id sequence to the collection.
func ReorderBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		bookmarks, err := d.Repo.ReorderBookmarks(r.Context(), req.Order)
		if err != nil {
			d.Logger.Error("failed to reorder bookmarks", logger.Error(err))
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookmarks)
	}
}

// ReorderCategories replaces the persisted category order.
func ReorderCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		bookmarks, err := d.Repo.ReorderCategories(r.Context(), req.Order)
		if err != nil {
			d.Logger.Error("failed to reorder categories", logger.Error(err))
			writeOpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, bookmarks)
	}
}
