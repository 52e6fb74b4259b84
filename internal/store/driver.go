package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/litemark/litemark/internal/domain"
	"github.com/litemark/litemark/internal/logger"
)

// Driver reads and writes whole JSON documents at logical keys against the
// one configured backend. It holds no cache and no state beyond the backend
// handle and the key-to-path mapping.
//
// Reads are non-fatal: an absent object or a backend failure yields the
// document's fallback value so the site keeps serving. A document that
// exists but fails to parse is a hard error; corruption must not be masked
// as absence. Writes always propagate their error.
type Driver struct {
	backend Backend
	paths   map[Key]string
	log     logger.Logger
}

func NewDriver(backend Backend, bookmarksPath, settingsPath string, log logger.Logger) *Driver {
	return &Driver{
		backend: backend,
		paths: map[Key]string{
			KeyBookmarks: bookmarksPath,
			KeySettings:  settingsPath,
		},
		log: log,
	}
}

// Kind reports the active backend kind.
func (d *Driver) Kind() string { return d.backend.Kind() }

// raw fetches a document's bytes. found is false when the caller should
// use the fallback value: the object is absent, or the backend failed and
// the failure was logged.
func (d *Driver) raw(ctx context.Context, key Key) (data []byte, found bool) {
	path := d.paths[key]
	data, err := d.backend.Get(ctx, path)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			d.log.Error("storage read failed, serving fallback",
				logger.String("backend", d.backend.Kind()),
				logger.String("key", string(key)),
				logger.String("path", path),
				logger.Error(err))
		}
		return nil, false
	}
	return data, true
}

func (d *Driver) write(ctx context.Context, key Key, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", key, err)
	}
	if err := d.backend.Put(ctx, d.paths[key], data); err != nil {
		d.log.Error("storage write failed",
			logger.String("backend", d.backend.Kind()),
			logger.String("key", string(key)),
			logger.Error(err))
		return err
	}
	return nil
}

// ReadBookmarks returns the stored collection, or an empty collection when
// the document is absent or the backend is unreachable.
func (d *Driver) ReadBookmarks(ctx context.Context) ([]domain.Bookmark, error) {
	data, found := d.raw(ctx, KeyBookmarks)
	if !found {
		return []domain.Bookmark{}, nil
	}
	var bookmarks []domain.Bookmark
	if err := json.Unmarshal(data, &bookmarks); err != nil {
		return nil, fmt.Errorf("malformed bookmarks document: %w", err)
	}
	if bookmarks == nil {
		bookmarks = []domain.Bookmark{}
	}
	return bookmarks, nil
}

func (d *Driver) WriteBookmarks(ctx context.Context, bookmarks []domain.Bookmark) error {
	return d.write(ctx, KeyBookmarks, bookmarks)
}

// ReadSettings returns the stored settings, or the defaults when the
// document is absent or the backend is unreachable.
func (d *Driver) ReadSettings(ctx context.Context) (domain.Settings, error) {
	data, found := d.raw(ctx, KeySettings)
	if !found {
		return domain.DefaultSettings(), nil
	}
	var settings domain.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("malformed settings document: %w", err)
	}
	return settings, nil
}

func (d *Driver) WriteSettings(ctx context.Context, settings domain.Settings) error {
	return d.write(ctx, KeySettings, settings)
}
