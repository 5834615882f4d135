package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/ruminaider/presetctl/internal/preset"
	"github.com/ruminaider/presetctl/internal/project"
	"github.com/ruminaider/presetctl/internal/reconcile"
)

// PickerOptions configures Picker.
type PickerOptions struct {
	DetectOptions
	// Manual forces the full catalog even when the selection was detected.
	Manual bool
}

// PickerResult is what an interactive picker renders.
type PickerResult struct {
	Detect  *DetectResult
	Catalog preset.Catalog
	State   reconcile.State
	// Project is nil when the repository has no .presetctl.yaml yet.
	Project *project.ProjectConfig
}

// Picker detects projects, loads the stored selection and reconciles them.
func Picker(ctx context.Context, opts PickerOptions) (*PickerResult, error) {
	det, err := Detect(ctx, opts.DetectOptions)
	if err != nil {
		return nil, err
	}
	pcfg, err := readProject(det.Dir)
	if err != nil {
		return nil, err
	}

	in := reconcile.Input{
		Detected:        det.Projects,
		Catalog:         opts.Config.Catalog(),
		ManualRequested: opts.Manual,
	}
	if pcfg != nil {
		in.Selection = pcfg.Selection
		in.ManualRequested = in.ManualRequested || pcfg.Manual
	}

	return &PickerResult{
		Detect:  det,
		Catalog: in.Catalog,
		State:   reconcile.Reconcile(in),
		Project: pcfg,
	}, nil
}

func readProject(dir string) (*project.ProjectConfig, error) {
	pcfg, err := project.ReadProjectConfig(dir)
	if errors.Is(err, project.ErrNoProjectConfig) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", project.ConfigFileName, err)
	}
	return &pcfg, nil
}
