package project

import (
	"errors"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

var ErrNoProjectConfig = errors.New("no .presetctl.yaml found")

const (
	ConfigFileName = ".presetctl.yaml"
	CurrentVersion = "1.0.0"
)

// ProjectConfig represents .presetctl.yaml at a repository root. It holds
// the form state of the preset picker.
type ProjectConfig struct {
	Version       string `yaml:"version"`
	Selection     string `yaml:"selection,omitempty"`
	RootDirectory string `yaml:"root_directory,omitempty"`
	Manual        bool   `yaml:"manual,omitempty"`
	Initialized   string `yaml:"initialized,omitempty"`
	Updated       string `yaml:"updated,omitempty"`
}

func configPath(projectDir string) string {
	return filepath.Join(projectDir, ConfigFileName)
}

func ReadProjectConfig(projectDir string) (ProjectConfig, error) {
	data, err := os.ReadFile(configPath(projectDir))
	if err != nil {
		if os.IsNotExist(err) {
			return ProjectConfig{}, ErrNoProjectConfig
		}
		return ProjectConfig{}, err
	}
	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ProjectConfig{}, err
	}
	return cfg, nil
}

func WriteProjectConfig(projectDir string, cfg ProjectConfig) error {
	if err := os.MkdirAll(projectDir, 0755); err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath(projectDir), data, 0644)
}

// FindProjectRoot walks up from dir looking for .presetctl.yaml.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(configPath(dir)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNoProjectConfig
		}
		dir = parent
	}
}
