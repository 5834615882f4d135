package reconcile

import (
	"strings"

	"github.com/ruminaider/presetctl/internal/preset"
)

// Selection is a (preset, path) choice. Path is kept normalized.
type Selection struct {
	PresetSlug string
	Path       string
}

// NewSelection builds a Selection with a normalized path.
func NewSelection(presetSlug, path string) Selection {
	return Selection{PresetSlug: presetSlug, Path: NormalizePath(path)}
}

// ParseSelection splits a selection key on the first "::". A key without a
// separator (a bare slug, "custom" or "") gets the Root path.
func ParseSelection(key string) Selection {
	slug, path, _ := strings.Cut(key, keySep)
	return NewSelection(slug, path)
}

// IsCustom reports whether s stands for manual configuration: an empty or
// "custom" slug at the root. A slug-less key with a path such as
// "::apps/web" still names a directory and is not custom.
func (s Selection) IsCustom() bool {
	return (s.PresetSlug == "" || s.PresetSlug == Custom) && NormalizePath(s.Path) == Root
}

// Key serializes s for form state.
func (s Selection) Key() string {
	if s.IsCustom() {
		if s.PresetSlug == "" {
			return ""
		}
		return Custom
	}
	return BuildSelectionKey(s.PresetSlug, s.Path)
}

// Equal compares slugs exactly and paths after normalization.
func (s Selection) Equal(other Selection) bool {
	return s.PresetSlug == other.PresetSlug &&
		NormalizePath(s.Path) == NormalizePath(other.Path)
}

// Matches reports whether d is the project s refers to.
func (s Selection) Matches(d preset.DetectedProject) bool {
	return s.Equal(Selection{PresetSlug: d.Preset, Path: d.Path})
}

// Directory is the root directory for s. It agrees with ResolveDirectory
// on the serialized key.
func (s Selection) Directory() string {
	return ResolveDirectory(s.Key())
}

func (s Selection) String() string {
	return s.Key()
}
