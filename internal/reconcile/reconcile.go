// Package reconcile turns detected presets, the preset catalog and the
// current form selection into one stable selection state and the root
// directory handed to the deployment backend.
package reconcile

import (
	"strings"

	"github.com/ruminaider/presetctl/internal/preset"
)

const (
	// Root is the normalized form of the repository root path.
	Root = "root"
	// Custom is the selection value for manual configuration.
	Custom = "custom"
	// RootDirectory is the directory value for the repository root.
	RootDirectory = "./"

	keySep = "::"
)

// NormalizePath maps "", "." and "./" to Root and returns anything else unchanged.
func NormalizePath(path string) string {
	switch path {
	case "", ".", "./":
		return Root
	}
	return path
}

// BuildSelectionKey returns "<slug>::<normalized path>".
func BuildSelectionKey(presetSlug, path string) string {
	return presetSlug + keySep + NormalizePath(path)
}

func isCustomKey(selection string) bool {
	return selection == "" || selection == Custom
}

// IsSelectionDetected reports whether selection names one of the detected
// projects. The custom and empty selections are always satisfied.
func IsSelectionDetected(selection string, detected []preset.DetectedProject) bool {
	if isCustomKey(selection) {
		return true
	}
	_, ok := FindDetected(selection, detected)
	return ok
}

// FindDetected returns the first detected project matching selection by
// slug (case-sensitive) and normalized path.
func FindDetected(selection string, detected []preset.DetectedProject) (preset.DetectedProject, bool) {
	sel := ParseSelection(selection)
	for _, d := range detected {
		if sel.Matches(d) {
			return d, true
		}
	}
	return preset.DetectedProject{}, false
}

// ResolveDirectory returns the repository-relative root directory for a
// selection. The result always starts with "./".
func ResolveDirectory(selection string) string {
	if isCustomKey(selection) {
		return RootDirectory
	}
	_, path, _ := strings.Cut(selection, keySep)
	if path == Root || path == "." || strings.TrimSpace(path) == "" {
		return RootDirectory
	}
	return RootDirectory + strings.TrimPrefix(path, "./")
}

// LookupPreset finds the catalog entry for the selection's slug, ignoring
// the path. It is only used for labels and defaults; detection matching
// always requires slug and path.
func LookupPreset(selection string, catalog preset.Catalog) (preset.Preset, bool) {
	if isCustomKey(selection) {
		return preset.Preset{}, false
	}
	return catalog.BySlug(ParseSelection(selection).PresetSlug)
}
