package detect

import (
	"context"
	"fmt"

	"github.com/ruminaider/presetctl/internal/preset"
	"go.uber.org/zap"
)

// Cache stores detection results by repository, revision and the
// fingerprint of the Options they were detected with.
type Cache interface {
	Get(ctx context.Context, repo, revision, options string) ([]preset.DetectedProject, bool, error)
	Put(ctx context.Context, repo, revision, options string, projects []preset.DetectedProject) error
}

// Detector runs detection over a Source.
type Detector struct {
	Source  Source
	Cache   Cache
	Options Options
	Logger  *zap.Logger
}

func (d *Detector) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Detect lists the source and detects presets. Commit-addressed sources
// are served from and written to the cache when one is configured. Cache
// failures are logged and never fail detection.
func (d *Detector) Detect(ctx context.Context) (*Result, error) {
	log := d.logger().With(zap.String("source", d.Source.Describe()))

	var repo, revision string
	if rv, ok := d.Source.(Revisioner); ok {
		var err error
		repo, revision, err = rv.Revision(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolving revision: %w", err)
		}
		log = log.With(zap.String("revision", revision))
	}

	fingerprint := d.Options.Fingerprint()
	if d.Cache != nil && revision != "" {
		projects, ok, err := d.Cache.Get(ctx, repo, revision, fingerprint)
		switch {
		case err != nil:
			log.Warn("detection cache read failed", zap.Error(err))
		case ok:
			log.Debug("detection cache hit", zap.Int("projects", len(projects)))
			return &Result{
				Projects: projects,
				Root:     rootSlug(projects),
				Revision: revision,
				Cached:   true,
			}, nil
		}
	}

	files, err := d.Source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	log.Debug("listed files", zap.Int("files", len(files)))

	res := FromFiles(files, d.Options)
	res.Revision = revision
	log.Debug("detected projects", zap.Int("projects", len(res.Projects)), zap.String("root", res.Root))

	if d.Cache != nil && revision != "" {
		if err := d.Cache.Put(ctx, repo, revision, fingerprint, res.Projects); err != nil {
			log.Warn("detection cache write failed", zap.Error(err))
		}
	}
	return &res, nil
}

func rootSlug(projects []preset.DetectedProject) string {
	if len(projects) > 0 && projects[0].Path == RootPath {
		return projects[0].Preset
	}
	return ""
}
