package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ruminaider/presetctl/internal/preset"
	"github.com/ruminaider/presetctl/internal/project"
	"github.com/ruminaider/presetctl/internal/reconcile"
)

var ErrUnknownPreset = errors.New("unknown preset")

// SelectOptions configures Select.
type SelectOptions struct {
	DetectOptions
	// Preset is a catalog slug or "custom".
	Preset string
	// Path is the project directory. For custom selections it is the
	// directory to build from.
	Path   string
	Manual bool
}

// SelectResult describes the stored selection.
type SelectResult struct {
	Dir           string
	Selection     reconcile.Selection
	Key           string
	RootDirectory string
	Detected      bool
	Preset        preset.Preset
	Project       project.ProjectConfig
}

// Select validates a (preset, path) choice, reconciles it against the
// detected projects and stores it in .presetctl.yaml at the repository root.
func Select(ctx context.Context, opts SelectOptions) (*SelectResult, error) {
	// 1. Validate the preset before doing any work
	catalog := opts.Config.Catalog()
	sel := reconcile.NewSelection(opts.Preset, opts.Path)
	custom := opts.Preset == reconcile.Custom
	if !custom {
		if _, ok := catalog.BySlug(opts.Preset); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, opts.Preset)
		}
	}

	// 2. Detect and reconcile
	det, err := Detect(ctx, opts.DetectOptions)
	if err != nil {
		return nil, err
	}
	key := sel.Key()
	if custom {
		key = reconcile.Custom
	}
	state := reconcile.Reconcile(reconcile.Input{
		Detected:        det.Projects,
		Catalog:         catalog,
		Selection:       key,
		ManualRequested: opts.Manual,
	})

	// a custom choice keeps its explicit directory
	rootDir := sel.Directory()

	// 3. Write .presetctl.yaml, keeping the original init time. A preset
	// picked from outside the detected list is a manual choice.
	now := time.Now().UTC().Format(time.RFC3339)
	pcfg := project.ProjectConfig{
		Version:       project.CurrentVersion,
		Selection:     key,
		RootDirectory: rootDir,
		Manual:        opts.Manual || !state.Detected,
		Initialized:   now,
		Updated:       now,
	}
	existing, err := readProject(det.Dir)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Initialized != "" {
		pcfg.Initialized = existing.Initialized
	}
	if err := project.WriteProjectConfig(det.Dir, pcfg); err != nil {
		return nil, fmt.Errorf("writing %s: %w", project.ConfigFileName, err)
	}

	return &SelectResult{
		Dir:           det.Dir,
		Selection:     state.Selection,
		Key:           key,
		RootDirectory: rootDir,
		Detected:      state.Detected,
		Preset:        state.Preset,
		Project:       pcfg,
	}, nil
}
