package detect

import (
	"github.com/ruminaider/presetctl/internal/preset"
	"github.com/ruminaider/presetctl/internal/reconcile"
)

// ProjectDiff is the difference between two detection passes. Projects are
// identified by selection key, so a preset change in one directory shows up
// as one removal plus one addition.
type ProjectDiff struct {
	Unchanged []preset.DetectedProject
	Added     []preset.DetectedProject
	Removed   []preset.DetectedProject
}

// Empty reports whether nothing was added or removed.
func (d ProjectDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Diff compares previous and current detections, keeping current's order
// for Unchanged and Added and previous's order for Removed.
func Diff(previous, current []preset.DetectedProject) ProjectDiff {
	prevSet := toKeySet(previous)
	currSet := toKeySet(current)

	var diff ProjectDiff
	for _, p := range current {
		if prevSet[key(p)] {
			diff.Unchanged = append(diff.Unchanged, p)
		} else {
			diff.Added = append(diff.Added, p)
		}
	}
	for _, p := range previous {
		if !currSet[key(p)] {
			diff.Removed = append(diff.Removed, p)
		}
	}
	return diff
}

func key(p preset.DetectedProject) string {
	return reconcile.BuildSelectionKey(p.Preset, p.Path)
}

func toKeySet(projects []preset.DetectedProject) map[string]bool {
	s := make(map[string]bool, len(projects))
	for _, p := range projects {
		s[key(p)] = true
	}
	return s
}
