package repo

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/litemark/litemark/internal/domain"
	"github.com/litemark/litemark/internal/logger"
	"github.com/litemark/litemark/internal/store"
)

// Repository layers typed document operations over the storage driver with
// an in-memory cache per document plus a background refresh timer.
//
// Cache discipline:
//   - reads serve a defensive copy of the cached value, falling through to
//     the driver on a cold cache;
//   - every mutating operation re-reads the document from the driver first,
//     so it always works on the latest persisted state rather than the
//     cache window;
//   - a successful write replaces the cache entry and resets its timer, so
//     the next refresh tick does not immediately re-fetch a value we just
//     wrote.
//
// The two cache entries and their timer handles are the only shared
// mutable state in the process.
type Repository struct {
	driver  *store.Driver
	log     logger.Logger
	refresh time.Duration

	mu             sync.Mutex
	bookmarks      []domain.Bookmark
	bookmarksFresh bool
	bookmarksTimer *time.Timer
	settings       domain.Settings
	settingsFresh  bool
	settingsTimer  *time.Timer

	// afterFunc is time.AfterFunc, swappable in tests.
	afterFunc func(time.Duration, func()) *time.Timer
}

// New builds a repository. refresh <= 0 disables background refresh: the
// cache then only updates on demand.
func New(driver *store.Driver, refresh time.Duration, log logger.Logger) *Repository {
	return &Repository{
		driver:    driver,
		log:       log,
		refresh:   refresh,
		afterFunc: time.AfterFunc,
	}
}

// Close cancels any pending refresh timers.
func (r *Repository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bookmarksTimer != nil {
		r.bookmarksTimer.Stop()
		r.bookmarksTimer = nil
	}
	if r.settingsTimer != nil {
		r.settingsTimer.Stop()
		r.settingsTimer = nil
	}
}

// --- Cache entry management (callers must hold r.mu)

func (r *Repository) setBookmarks(bookmarks []domain.Bookmark) {
	r.bookmarks = bookmarks
	r.bookmarksFresh = true
	r.armBookmarksTimer()
}

func (r *Repository) setSettings(settings domain.Settings) {
	r.settings = settings
	r.settingsFresh = true
	r.armSettingsTimer()
}

func (r *Repository) armBookmarksTimer() {
	if r.bookmarksTimer != nil {
		r.bookmarksTimer.Stop()
		r.bookmarksTimer = nil
	}
	if r.refresh <= 0 {
		return
	}
	r.bookmarksTimer = r.afterFunc(r.refresh, r.refreshBookmarks)
}

func (r *Repository) armSettingsTimer() {
	if r.settingsTimer != nil {
		r.settingsTimer.Stop()
		r.settingsTimer = nil
	}
	if r.refresh <= 0 {
		return
	}
	r.settingsTimer = r.afterFunc(r.refresh, r.refreshSettings)
}

// refreshBookmarks runs on the timer goroutine. Nobody waits on it, so
// failures are logged and the timer rearmed, never surfaced.
func (r *Repository) refreshBookmarks() {
	bookmarks, err := r.driver.ReadBookmarks(context.Background())
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.log.Warn("background bookmarks refresh failed", logger.Error(err))
		r.armBookmarksTimer()
		return
	}
	r.setBookmarks(bookmarks)
}

func (r *Repository) refreshSettings() {
	settings, err := r.driver.ReadSettings(context.Background())
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.log.Warn("background settings refresh failed", logger.Error(err))
		r.armSettingsTimer()
		return
	}
	r.setSettings(settings)
}

// loadBookmarks returns the current collection, serving from cache when
// live and reading through the driver otherwise.
func (r *Repository) loadBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	r.mu.Lock()
	if r.bookmarksFresh {
		if r.bookmarksTimer == nil {
			r.armBookmarksTimer()
		}
		cached := domain.CloneBookmarks(r.bookmarks)
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	bookmarks, err := r.driver.ReadBookmarks(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.setBookmarks(bookmarks)
	r.mu.Unlock()
	return domain.CloneBookmarks(bookmarks), nil
}

// --- Settings

func (r *Repository) GetSettings(ctx context.Context) (domain.Settings, error) {
	r.mu.Lock()
	if r.settingsFresh {
		if r.settingsTimer == nil {
			r.armSettingsTimer()
		}
		cached := r.settings
		r.mu.Unlock()
		return cached, nil
	}
	r.mu.Unlock()

	settings, err := r.driver.ReadSettings(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	r.mu.Lock()
	r.setSettings(settings)
	r.mu.Unlock()
	return settings, nil
}

// UpdateSettings applies a partial update. Only provided fields change.
func (r *Repository) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	if err := validatePatch(patch); err != nil {
		return domain.Settings{}, err
	}

	// Mutations always start from the latest persisted state.
	current, err := r.driver.ReadSettings(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	next := patch.Apply(current)
	if err := r.driver.WriteSettings(ctx, next); err != nil {
		return domain.Settings{}, err
	}

	r.mu.Lock()
	r.setSettings(next)
	r.mu.Unlock()
	return next, nil
}

// ForceRefreshSettings bypasses the cache, re-reads from storage and
// repopulates. Used after out-of-band changes to the stored document.
func (r *Repository) ForceRefreshSettings(ctx context.Context) (domain.Settings, error) {
	settings, err := r.driver.ReadSettings(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	r.mu.Lock()
	r.setSettings(settings)
	r.mu.Unlock()
	return settings, nil
}

func validatePatch(patch domain.SettingsPatch) error {
	if patch.Theme != nil && !domain.ValidTheme(*patch.Theme) {
		return domain.Invalid("theme", "must be one of light/dark/forest/ocean/sunrise/twilight")
	}
	if patch.SiteTitle != nil && utf8.RuneCountInString(*patch.SiteTitle) > domain.MaxSiteTitleLen {
		return domain.Invalid("siteTitle", "must be at most 60 characters")
	}
	if patch.SiteIcon != nil && utf8.RuneCountInString(*patch.SiteIcon) > domain.MaxSiteIconLen {
		return domain.Invalid("siteIcon", "must be at most 512 characters")
	}
	return nil
}
