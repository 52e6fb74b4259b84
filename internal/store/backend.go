package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/litemark/litemark/internal/config"
)

// Key is a logical document name, resolved to a backend path by the Driver.
type Key string

const (
	KeyBookmarks Key = "bookmarks"
	KeySettings  Key = "settings"
)

// ErrNotFound is returned by Backend.Get when the object does not exist.
// Absence is not a failure: the Driver maps it to the caller's fallback.
var ErrNotFound = errors.New("store: object not found")

// Backend is one concrete storage target. A whole JSON document is read or
// overwritten per call; there is no partial access.
type Backend interface {
	Kind() string
	Get(ctx context.Context, path string) ([]byte, error)
	Put(ctx context.Context, path string, data []byte) error
}

// NewBackend builds the single backend for the process lifetime, chosen by
// the configured driver kind. Backends are never mixed per call.
func NewBackend(cfg config.StorageConfig) (Backend, error) {
	switch cfg.Driver {
	case "s3":
		return newS3Backend("s3", cfg.S3)
	case "r2":
		return newS3Backend("r2", cfg.R2)
	case "oss":
		return newMinioBackend("oss", cfg.OSS)
	case "cos":
		return newMinioBackend("cos", cfg.COS)
	case "webdav":
		return newWebDAVBackend(cfg.WebDAV)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
