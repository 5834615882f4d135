package commands

import (
	"github.com/ruminaider/presetctl/internal/config"
	"github.com/ruminaider/presetctl/internal/preset"
)

// ListPresets returns the built-in catalog merged with cfg's presets.
func ListPresets(cfg config.Config) preset.Catalog {
	return cfg.Catalog()
}
