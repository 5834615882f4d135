package commands

import (
	"context"
	"fmt"

	"github.com/ruminaider/presetctl/internal/project"
	"github.com/ruminaider/presetctl/internal/reconcile"
)

// StatusResult compares the stored selection with a fresh detection.
type StatusResult struct {
	Dir     string
	Project project.ProjectConfig
	Detect  *DetectResult
	State   reconcile.State
	// Stale is set when the stored selection no longer agrees with what is
	// detected now. Reasons says why.
	Stale   bool
	Reasons []string
}

// Status reads .presetctl.yaml and reconciles it against the repository.
func Status(ctx context.Context, opts DetectOptions) (*StatusResult, error) {
	det, err := Detect(ctx, opts)
	if err != nil {
		return nil, err
	}
	pcfg, err := readProject(det.Dir)
	if err != nil {
		return nil, err
	}
	if pcfg == nil {
		return nil, fmt.Errorf("%w in %s; run 'presetctl select' first", project.ErrNoProjectConfig, det.Dir)
	}

	state := reconcile.Reconcile(reconcile.Input{
		Detected:        det.Projects,
		Catalog:         opts.Config.Catalog(),
		Selection:       pcfg.Selection,
		ManualRequested: pcfg.Manual,
	})

	res := &StatusResult{
		Dir:     det.Dir,
		Project: *pcfg,
		Detect:  det,
		State:   state,
	}
	if state.Custom {
		// custom selections carry their own directory
		return res, nil
	}
	if pcfg.RootDirectory != state.RootDirectory {
		res.Reasons = append(res.Reasons, fmt.Sprintf("root directory is %s but the selection resolves to %s", pcfg.RootDirectory, state.RootDirectory))
	}
	if !pcfg.Manual && !state.Detected {
		res.Reasons = append(res.Reasons, fmt.Sprintf("%s is no longer detected", state.Selection))
	}
	res.Stale = len(res.Reasons) > 0
	return res, nil
}
