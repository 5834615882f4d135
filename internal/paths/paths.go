package paths

import (
	"os"
	"path/filepath"
)

func home() string {
	h, _ := os.UserHomeDir()
	return h
}

// ConfigDir returns ~/.presetctl.
func ConfigDir() string {
	return filepath.Join(home(), ".presetctl")
}

// ConfigFile returns ~/.presetctl/config.yaml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// CacheFile returns ~/.presetctl/cache.db.
func CacheFile() string {
	return filepath.Join(ConfigDir(), "cache.db")
}
