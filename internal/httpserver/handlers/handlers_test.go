package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/litemark/litemark/internal/backup"
	"github.com/litemark/litemark/internal/domain"
	"github.com/litemark/litemark/internal/httpserver/deps"
	"github.com/litemark/litemark/internal/repo"
	"github.com/litemark/litemark/internal/store"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...zap.Field) {}
func (nopLogger) Info(string, ...zap.Field)  {}
func (nopLogger) Warn(string, ...zap.Field)  {}
func (nopLogger) Error(string, ...zap.Field) {}
func (nopLogger) Fatal(string, ...zap.Field) {}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Fatalf(string, ...interface{}) {}

func (nopLogger) Sync() error { return nil }

type memBackend struct {
	objects map[string][]byte
}

func (m *memBackend) Kind() string { return "mem" }

func (m *memBackend) Get(_ context.Context, path string) ([]byte, error) {
	data, ok := m.objects[path]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

func (m *memBackend) Put(_ context.Context, path string, data []byte) error {
	m.objects[path] = data
	return nil
}

func newTestServer(t *testing.T) (*chi.Mux, deps.Deps) {
	t.Helper()
	backend := &memBackend{objects: map[string][]byte{}}
	driver := store.NewDriver(backend, "bookmarks.json", "settings.json", nopLogger{})
	repository := repo.New(driver, 0, nopLogger{})

	d := deps.Deps{
		Logger:    nopLogger{},
		StartTime: time.Now(),
		TimeNow:   time.Now,
		Repo:      repository,
		Exporter:  backup.NewExporter(repository),
	}

	r := chi.NewRouter()
	r.Get("/api/bookmarks", ListBookmarks(d))
	r.Post("/api/bookmarks", CreateBookmark(d))
	r.Put("/api/bookmarks/{id}", UpdateBookmark(d))
	r.Delete("/api/bookmarks/{id}", DeleteBookmark(d))
	r.Post("/api/bookmarks/reorder", ReorderBookmarks(d))
	r.Post("/api/bookmarks/reorder-categories", ReorderCategories(d))
	r.Get("/api/settings", GetSettings(d))
	r.Put("/api/settings", UpdateSettings(d))
	r.Get("/api/backup/export", ExportBackup(d))
	r.Post("/api/backup/import", ImportBackup(d))
	r.Post("/api/backup/run", RunBackup(d))
	r.Get("/api/healthz", Healthz(d))
	return r, d
}

func doJSON(t *testing.T, mux *chi.Mux, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestBookmarkCRUD(t *testing.T) {
	mux, _ := newTestServer(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/bookmarks",
		domain.BookmarkInput{Title: "Go", URL: "go.dev", Category: "Dev", Visible: true})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[domain.Bookmark](t, rec)
	assert.Equal(t, "https://go.dev", created.URL)

	rec = doJSON(t, mux, http.MethodGet, "/api/bookmarks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decode[[]domain.Bookmark](t, rec)
	require.Len(t, listing, 1)

	rec = doJSON(t, mux, http.MethodPut, "/api/bookmarks/"+created.ID,
		domain.BookmarkInput{Title: "Go docs", URL: "go.dev/doc", Category: "Dev", Visible: true})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[domain.Bookmark](t, rec)
	assert.Equal(t, "Go docs", updated.Title)

	rec = doJSON(t, mux, http.MethodDelete, "/api/bookmarks/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/bookmarks", nil)
	listing = decode[[]domain.Bookmark](t, rec)
	assert.Empty(t, listing)
}

func TestBookmarkValidationAndNotFound(t *testing.T) {
	mux, _ := newTestServer(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/bookmarks",
		domain.BookmarkInput{Title: "", URL: "go.dev"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodPut, "/api/bookmarks/ghost",
		domain.BookmarkInput{Title: "X", URL: "x.dev"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, mux, http.MethodDelete, "/api/bookmarks/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReorderEndpoints(t *testing.T) {
	mux, _ := newTestServer(t)

	var ids []string
	for _, title := range []string{"A", "B", "C"} {
		rec := doJSON(t, mux, http.MethodPost, "/api/bookmarks",
			domain.BookmarkInput{Title: title, URL: title + ".dev", Category: "Dev", Visible: true})
		require.Equal(t, http.StatusCreated, rec.Code)
		ids = append(ids, decode[domain.Bookmark](t, rec).ID)
	}

	rec := doJSON(t, mux, http.MethodPost, "/api/bookmarks/reorder",
		map[string][]string{"order": {ids[2], ids[0], ids[1]}})
	require.Equal(t, http.StatusOK, rec.Code)
	reordered := decode[[]domain.Bookmark](t, rec)
	assert.Equal(t, ids[2], reordered[0].ID)

	rec = doJSON(t, mux, http.MethodPost, "/api/bookmarks/reorder-categories",
		map[string][]string{"order": {"Dev"}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSettingsEndpoints(t *testing.T) {
	mux, _ := newTestServer(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	settings := decode[domain.Settings](t, rec)
	assert.Equal(t, "light", settings.Theme)

	theme := "dark"
	rec = doJSON(t, mux, http.MethodPut, "/api/settings", domain.SettingsPatch{Theme: &theme})
	require.Equal(t, http.StatusOK, rec.Code)
	settings = decode[domain.Settings](t, rec)
	assert.Equal(t, "dark", settings.Theme)

	bad := "neon"
	rec = doJSON(t, mux, http.MethodPut, "/api/settings", domain.SettingsPatch{Theme: &bad})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackupExportImport(t *testing.T) {
	mux, _ := newTestServer(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/bookmarks",
		domain.BookmarkInput{Title: "Go", URL: "go.dev", Category: "Dev", Visible: true})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/backup/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "litemark-backup-")
	snap := decode[backup.Snapshot](t, rec)
	require.Len(t, snap.Bookmarks, 1)

	rec = doJSON(t, mux, http.MethodPost, "/api/backup/import?overwrite=true", snap)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/bookmarks", nil)
	listing := decode[[]domain.Bookmark](t, rec)
	require.Len(t, listing, 1)
	assert.Equal(t, "Go", listing[0].Title)
}

func TestRunBackupDisabled(t *testing.T) {
	mux, _ := newTestServer(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/backup/run", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRunBackupTrigger(t *testing.T) {
	backend := &memBackend{objects: map[string][]byte{}}
	driver := store.NewDriver(backend, "bookmarks.json", "settings.json", nopLogger{})
	repository := repo.New(driver, 0, nopLogger{})

	trigger := make(chan struct{}, 1)
	d := deps.Deps{
		Logger:        nopLogger{},
		Repo:          repository,
		BackupTrigger: trigger,
	}

	r := chi.NewRouter()
	r.Post("/api/backup/run", RunBackup(d))

	rec := doJSON(t, r, http.MethodPost, "/api/backup/run", nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	// A second trigger while the first is pending is rejected.
	rec = doJSON(t, r, http.MethodPost, "/api/backup/run", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	select {
	case <-trigger:
	default:
		t.Fatal("trigger channel should hold a pending run")
	}
}

func TestHealthz(t *testing.T) {
	mux, _ := newTestServer(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ok", body["status"])
}
