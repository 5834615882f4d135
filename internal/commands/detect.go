package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ruminaider/presetctl/internal/config"
	"github.com/ruminaider/presetctl/internal/detect"
	"github.com/ruminaider/presetctl/internal/git"
	"github.com/ruminaider/presetctl/internal/project"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds DetectMany when no limit is given.
const DefaultConcurrency = 4

// DetectOptions configures a detection run.
type DetectOptions struct {
	Dir    string
	Ref    string // empty scans the work tree
	Config config.Config
	Cache  detect.Cache // nil disables caching
	Logger *zap.Logger
}

// DetectResult is a detection run over one repository.
type DetectResult struct {
	Dir    string `json:"dir"`
	Source string `json:"source"`
	detect.Result
}

// RepoRoot returns the top of the git work tree containing dir. Outside
// git it is the nearest directory holding .presetctl.yaml, else dir itself.
func RepoRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if !git.IsRepo(abs) {
		if root, err := project.FindProjectRoot(abs); err == nil {
			return root, nil
		}
		return abs, nil
	}
	top, err := git.TopLevel(abs)
	if err != nil {
		return "", fmt.Errorf("finding repository root: %w", err)
	}
	return top, nil
}

func (o DetectOptions) source(root string) (detect.Source, error) {
	if o.Ref == "" {
		return detect.WorkTreeSource{Dir: root, Ignore: o.Config.Ignore}, nil
	}
	if !git.IsRepo(root) {
		return nil, fmt.Errorf("%s is not a git repository; --ref needs one", root)
	}
	return detect.RefSource{Dir: root, Ref: o.Ref}, nil
}

// Detect finds the deployable projects of the repository containing opts.Dir.
func Detect(ctx context.Context, opts DetectOptions) (*DetectResult, error) {
	root, err := RepoRoot(opts.Dir)
	if err != nil {
		return nil, err
	}
	src, err := opts.source(root)
	if err != nil {
		return nil, err
	}

	d := &detect.Detector{
		Source: src,
		Cache:  opts.Cache,
		Options: detect.Options{
			MaxDepth: opts.Config.MaxDepth,
			Ignore:   opts.Config.Ignore,
			Catalog:  opts.Config.Catalog(),
		},
		Logger: opts.Logger,
	}
	res, err := d.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detecting %s: %w", src.Describe(), err)
	}
	return &DetectResult{Dir: root, Source: src.Describe(), Result: *res}, nil
}

// DetectMany runs Detect for each directory with at most limit running at
// once. Results keep the order of dirs. The first error cancels the rest.
func DetectMany(ctx context.Context, dirs []string, opts DetectOptions, limit int) ([]*DetectResult, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	results := make([]*DetectResult, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, dir := range dirs {
		g.Go(func() error {
			o := opts
			o.Dir = dir
			res, err := Detect(ctx, o)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
