package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ruminaider/presetctl/internal/preset"
	"go.yaml.in/yaml/v3"
)

// DefaultMaxDepth is how many directory levels below the root are scanned.
const DefaultMaxDepth = 2

// Config represents ~/.presetctl/config.yaml.
type Config struct {
	MaxDepth int             `yaml:"max_depth,omitempty"`
	Ignore   []string        `yaml:"ignore,omitempty"`
	Presets  []preset.Preset `yaml:"presets,omitempty"`
	Cache    *bool           `yaml:"cache,omitempty"`
}

// Default returns a config with default values.
func Default() Config {
	return Config{MaxDepth: DefaultMaxDepth}
}

// Parse parses config.yaml bytes into a Config and applies defaults.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	for i, p := range cfg.Presets {
		if p.Slug == "" {
			return Config{}, fmt.Errorf("parsing config: preset %d has no slug", i)
		}
		pt, err := preset.ParseProjectType(string(p.ProjectType))
		if err != nil {
			return Config{}, fmt.Errorf("parsing config: preset %q: %w", p.Slug, err)
		}
		cfg.Presets[i].ProjectType = pt
	}
	return cfg, nil
}

// Load reads the config at path. A missing file yields Default().
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Marshal serializes a Config to YAML bytes.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// CacheEnabled reports whether detection results may be cached. Defaults to true.
func (c Config) CacheEnabled() bool {
	return c.Cache == nil || *c.Cache
}

// Catalog returns the built-in presets merged with the configured ones.
func (c Config) Catalog() preset.Catalog {
	return preset.Builtin().Merge(c.Presets)
}
