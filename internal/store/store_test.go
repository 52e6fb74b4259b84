package store

import (
	"go.uber.org/zap"

	"github.com/litemark/litemark/internal/config"
)

// nopLogger satisfies logger.Logger without output.
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

func configWithDriver(driver string) config.StorageConfig {
	return config.StorageConfig{
		Driver:        driver,
		BookmarksPath: "data/bookmarks.json",
		SettingsPath:  "data/settings.json",
	}
}
