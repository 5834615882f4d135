package reconcile

import (
	"fmt"

	"github.com/ruminaider/presetctl/internal/preset"
)

// Mode is the option set a picker should show.
type Mode string

const (
	ModeDetected Mode = "detected"
	ModeCatalog  Mode = "catalog"
)

// Option is one selectable entry.
type Option struct {
	Key        string
	Label      string
	PresetSlug string
	Path       string
}

// DisplaySet is the chosen mode and its options.
type DisplaySet struct {
	Mode  Mode
	Items []Option
}

// ChooseDisplaySet picks detected mode only when something was detected,
// manual mode was not requested and the current selection is among the
// detected projects. Otherwise the full catalog is shown so a selected
// option is never hidden.
func ChooseDisplaySet(detected []preset.DetectedProject, catalog preset.Catalog, manualModeRequested, selectionIsDetected bool) DisplaySet {
	if len(detected) > 0 && !manualModeRequested && selectionIsDetected {
		return DisplaySet{Mode: ModeDetected, Items: detectedOptions(detected, catalog)}
	}
	return DisplaySet{Mode: ModeCatalog, Items: catalogOptions(catalog)}
}

func detectedOptions(detected []preset.DetectedProject, catalog preset.Catalog) []Option {
	items := make([]Option, 0, len(detected))
	for _, d := range detected {
		key := BuildSelectionKey(d.Preset, d.Path)
		items = append(items, Option{
			Key:        key,
			Label:      fmt.Sprintf("%s (%s)", d.DisplayLabel(catalog), ResolveDirectory(key)),
			PresetSlug: d.Preset,
			Path:       NormalizePath(d.Path),
		})
	}
	return items
}

func catalogOptions(catalog preset.Catalog) []Option {
	items := make([]Option, 0, len(catalog))
	for _, p := range catalog {
		items = append(items, Option{
			Key:        BuildSelectionKey(p.Slug, ""),
			Label:      p.Label,
			PresetSlug: p.Slug,
			Path:       Root,
		})
	}
	return items
}

// Input is everything a configurator knows when it renders.
type Input struct {
	Detected        []preset.DetectedProject
	Catalog         preset.Catalog
	Selection       string
	ManualRequested bool
}

// State is the reconciled view of an Input.
type State struct {
	Selection     Selection
	Key           string
	Custom        bool
	Detected      bool
	RootDirectory string
	Display       DisplaySet

	// Preset is the catalog entry for the selected slug, when there is one.
	Preset      preset.Preset
	KnownPreset bool
}

// Reconcile computes the full selection state in one pass.
func Reconcile(in Input) State {
	detected := IsSelectionDetected(in.Selection, in.Detected)
	p, known := LookupPreset(in.Selection, in.Catalog)
	return State{
		Selection:     ParseSelection(in.Selection),
		Key:           in.Selection,
		Custom:        isCustomKey(in.Selection),
		Detected:      detected,
		RootDirectory: ResolveDirectory(in.Selection),
		Display:       ChooseDisplaySet(in.Detected, in.Catalog, in.ManualRequested, detected),
		Preset:        p,
		KnownPreset:   known,
	}
}
