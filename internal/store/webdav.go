package store

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/studio-b12/gowebdav"

	"github.com/litemark/litemark/internal/config"
)

const webdavTimeout = 15 * time.Second

// webdavBackend stores documents as files on a WebDAV share.
type webdavBackend struct {
	client *gowebdav.Client
}

func newWebDAVBackend(cfg config.WebDAVConfig) (*webdavBackend, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("webdav: url is required")
	}
	client := gowebdav.NewClient(cfg.URL, cfg.Username, cfg.Password)
	client.SetTimeout(webdavTimeout)
	return &webdavBackend{client: client}, nil
}

func (b *webdavBackend) Kind() string { return "webdav" }

func (b *webdavBackend) Get(_ context.Context, filePath string) ([]byte, error) {
	data, err := b.client.Read(filePath)
	if err != nil {
		if gowebdav.IsErrNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("webdav: failed to read %s: %w", filePath, err)
	}
	return data, nil
}

func (b *webdavBackend) Put(_ context.Context, filePath string, data []byte) error {
	// MKCOL on an existing directory is harmless; some servers need the
	// parent to exist before a PUT.
	if dir := path.Dir(filePath); dir != "." && dir != "/" {
		_ = b.client.MkdirAll(dir, 0o755)
	}
	if err := b.client.Write(filePath, data, 0o644); err != nil {
		return fmt.Errorf("webdav: failed to write %s: %w", filePath, err)
	}
	return nil
}
