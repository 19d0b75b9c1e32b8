// Package where resolves the application's directories and files on every platform.
package where

import (
	"os"
	"path/filepath"

	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/filesystem"
	"github.com/samber/lo"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "MEDIASPAWN_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory, honouring MEDIASPAWN_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Mediaspawn))
}

// Cache returns the cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Mediaspawn))
}

// Logs returns the log directory.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Scripts returns the directory holding downloaded player scripts.
func Scripts() string {
	return ensureDir(filepath.Join(Cache(), "scripts"))
}

// Plans returns the default directory for generated plan files.
func Plans() string {
	return ensureDir(filepath.Join(Config(), "plans"))
}

// Temp returns a volatile directory for mpv sockets and other transient files.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Mediaspawn))
}

// History returns the file recording played plans.
func History() string {
	return filepath.Join(Cache(), "history.json")
}
