package preset

import (
	"fmt"
	"strings"
)

// ProjectType says whether a preset runs a server or serves static files.
type ProjectType string

const (
	Server ProjectType = "server"
	Static ProjectType = "static"
)

func (t ProjectType) String() string {
	return string(t)
}

// ParseProjectType accepts "server" or "static" in any case.
func ParseProjectType(s string) (ProjectType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "server", "":
		return Server, nil
	case "static":
		return Static, nil
	}
	return "", fmt.Errorf("unknown project type %q", s)
}

// Preset is a build/deploy tooling profile.
type Preset struct {
	Slug        string      `yaml:"slug" json:"slug"`
	Label       string      `yaml:"label" json:"label"`
	DefaultPort int         `yaml:"default_port,omitempty" json:"default_port,omitempty"`
	ProjectType ProjectType `yaml:"project_type" json:"project_type"`
	Language    string      `yaml:"language,omitempty" json:"language,omitempty"`
	IconURL     string      `yaml:"icon_url,omitempty" json:"icon_url,omitempty"`
}

// HasPort reports whether the preset exposes a default port.
func (p Preset) HasPort() bool {
	return p.DefaultPort > 0
}

// DetectedProject is a (preset, path) pair discovered in a repository.
type DetectedProject struct {
	Preset         string      `yaml:"preset" json:"preset"`
	Path           string      `yaml:"path" json:"path"`
	PresetLabel    string      `yaml:"preset_label,omitempty" json:"preset_label,omitempty"`
	DefaultPort    int         `yaml:"default_port,omitempty" json:"default_port,omitempty"`
	ProjectType    ProjectType `yaml:"project_type,omitempty" json:"project_type,omitempty"`
	PackageManager string      `yaml:"package_manager,omitempty" json:"package_manager,omitempty"`
}

// DisplayLabel returns the override label, then the catalog label, then the slug.
func (d DetectedProject) DisplayLabel(c Catalog) string {
	if d.PresetLabel != "" {
		return d.PresetLabel
	}
	if p, ok := c.BySlug(d.Preset); ok {
		return p.Label
	}
	return d.Preset
}
