package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	AdminToken string // bearer token required on mutating routes; empty disables auth

	// CacheRefresh is the background cache refresh interval.
	// Zero or negative disables background refresh entirely.
	CacheRefresh time.Duration

	Storage StorageConfig
	Backup  BackupConfig
}

// StorageConfig selects and configures the one document storage backend
// used for the process lifetime.
type StorageConfig struct {
	Driver string // "s3" | "r2" | "oss" | "cos" | "webdav"

	BookmarksPath string // object key / file path of the bookmarks document
	SettingsPath  string // object key / file path of the settings document

	S3     ObjectStoreConfig
	R2     ObjectStoreConfig
	OSS    ObjectStoreConfig
	COS    ObjectStoreConfig
	WebDAV WebDAVConfig
}

type ObjectStoreConfig struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // optional for s3, required for r2/oss/cos
	ForcePathStyle  bool
}

type WebDAVConfig struct {
	URL      string
	Username string
	Password string
}

// BackupConfig drives the scheduled WebDAV backup job. The backup target
// is independent of the storage backend.
type BackupConfig struct {
	Enabled  bool
	URL      string
	Username string
	Password string
	Path     string        // remote directory for snapshot files
	Keep     int           // snapshots to retain, 0 = unlimited
	Interval time.Duration // how often the job runs
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("LITEMARK_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("LITEMARK_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LITEMARK_LOG_LEVEL", "info"),
		PrettyLog: mustBool("LITEMARK_PRETTY_LOG", true),

		AdminToken: getenv("LITEMARK_ADMIN_TOKEN", ""),

		// Cache: interval in milliseconds, <=0 disables background refresh
		CacheRefresh: time.Duration(getenvInt("CACHE_REFRESH_MS", 300000)) * time.Millisecond,

		Storage: loadStorage(),

		Backup: BackupConfig{
			Enabled:  mustBool("BACKUP_WEBDAV_ENABLED", false),
			URL:      getenv("BACKUP_WEBDAV_URL", ""),
			Username: getenv("BACKUP_WEBDAV_USERNAME", ""),
			Password: getenv("BACKUP_WEBDAV_PASSWORD", ""),
			Path:     getenv("BACKUP_WEBDAV_PATH", "litemark-backup/"),
			Keep:     getenvInt("BACKUP_WEBDAV_KEEP", 7),
			Interval: mustDuration("BACKUP_WEBDAV_INTERVAL", 24*time.Hour),
		},
	}

	if cfg.Backup.Enabled && cfg.Backup.URL == "" {
		panic("❌ FATAL: BACKUP_WEBDAV_URL is required when BACKUP_WEBDAV_ENABLED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.AdminToken = redact(cfg.AdminToken)
		cfgCopy.Backup.Password = redact(cfg.Backup.Password)
		cfgCopy.Storage = redactStorage(cfg.Storage)
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// loadStorage reads only the credentials of the selected driver; the other
// backends' variables stay untouched so one deployment never needs all of
// them set.
func loadStorage() StorageConfig {
	cfg := StorageConfig{
		Driver:        getenv("STORAGE_DRIVER", "s3"),
		BookmarksPath: getenv("BOOKMARKS_KEY", "litemark/data/bookmarks.json"),
		SettingsPath:  getenv("SETTINGS_KEY", "litemark/data/settings.json"),
	}

	switch cfg.Driver {
	case "s3":
		cfg.S3 = ObjectStoreConfig{
			Bucket:          requireEnv("S3_BUCKET"),
			Region:          requireEnv("S3_REGION"),
			AccessKeyID:     requireEnv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: requireEnv("S3_SECRET_ACCESS_KEY"),
			Endpoint:        getenv("S3_ENDPOINT", ""),
			ForcePathStyle:  mustBool("S3_FORCE_PATH_STYLE", false),
		}
	case "r2":
		endpoint := getenv("R2_ENDPOINT", "")
		if endpoint == "" {
			if account := getenv("R2_ACCOUNT_ID", ""); account != "" {
				endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", account)
			}
		}
		if endpoint == "" {
			panic("❌ FATAL: set R2_ENDPOINT or R2_ACCOUNT_ID for the r2 storage driver")
		}
		cfg.R2 = ObjectStoreConfig{
			Bucket:          requireEnv("R2_BUCKET"),
			Region:          getenv("R2_REGION", "auto"),
			AccessKeyID:     requireEnv("R2_ACCESS_KEY_ID"),
			SecretAccessKey: requireEnv("R2_SECRET_ACCESS_KEY"),
			Endpoint:        endpoint,
			ForcePathStyle:  mustBool("R2_FORCE_PATH_STYLE", true),
		}
	case "oss":
		cfg.OSS = ObjectStoreConfig{
			Bucket:          requireEnv("OSS_BUCKET"),
			Region:          requireEnv("OSS_REGION"),
			AccessKeyID:     requireEnv("OSS_ACCESS_KEY_ID"),
			SecretAccessKey: requireEnv("OSS_SECRET_ACCESS_KEY"),
			Endpoint:        requireEnv("OSS_ENDPOINT"),
			ForcePathStyle:  mustBool("OSS_FORCE_PATH_STYLE", false),
		}
	case "cos":
		cfg.COS = ObjectStoreConfig{
			Bucket:          requireEnv("COS_BUCKET"),
			Region:          requireEnv("COS_REGION"),
			AccessKeyID:     requireEnv("COS_SECRET_ID"),
			SecretAccessKey: requireEnv("COS_SECRET_KEY"),
			Endpoint:        requireEnv("COS_ENDPOINT"),
			ForcePathStyle:  mustBool("COS_FORCE_PATH_STYLE", false),
		}
	case "webdav":
		cfg.WebDAV = WebDAVConfig{
			URL:      requireEnv("WEBDAV_URL"),
			Username: getenv("WEBDAV_USERNAME", ""),
			Password: getenv("WEBDAV_PASSWORD", ""),
		}
	}
	// An unknown driver is rejected later when the backend is constructed.

	return cfg
}

func redactStorage(s StorageConfig) StorageConfig {
	s.S3.SecretAccessKey = redact(s.S3.SecretAccessKey)
	s.R2.SecretAccessKey = redact(s.R2.SecretAccessKey)
	s.OSS.SecretAccessKey = redact(s.OSS.SecretAccessKey)
	s.COS.SecretAccessKey = redact(s.COS.SecretAccessKey)
	s.WebDAV.Password = redact(s.WebDAV.Password)
	return s
}

func redact(v string) string {
	if v == "" {
		return ""
	}
	return "***REDACTED***"
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
