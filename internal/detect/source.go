package detect

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/ruminaider/presetctl/internal/git"
)

// Source lists the files of a repository.
type Source interface {
	Describe() string
	List(ctx context.Context) ([]string, error)
}

// Revisioner is implemented by sources whose listing is addressed by an
// immutable revision. Only those are cached.
type Revisioner interface {
	Revision(ctx context.Context) (repo, revision string, err error)
}

// WorkTreeSource lists the files currently on disk under Dir. Inside a git
// work tree it honours .gitignore; elsewhere it walks the filesystem.
type WorkTreeSource struct {
	Dir    string
	Ignore []string
}

func (s WorkTreeSource) Describe() string {
	return s.Dir
}

func (s WorkTreeSource) List(ctx context.Context) ([]string, error) {
	if git.IsRepo(s.Dir) {
		return git.ListWorkTreeFiles(ctx, s.Dir)
	}
	return walk(ctx, s.Dir, Options{Ignore: s.Ignore}.ignored())
}

func walk(ctx context.Context, root string, ignored map[string]bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && ignored[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}

// RefSource lists the tree of a commit. Paths are relative to the
// repository root.
type RefSource struct {
	Dir string
	Ref string
}

func (s RefSource) ref() string {
	if s.Ref == "" {
		return "HEAD"
	}
	return s.Ref
}

func (s RefSource) Describe() string {
	return fmt.Sprintf("%s@%s", s.Dir, s.ref())
}

func (s RefSource) List(ctx context.Context) ([]string, error) {
	files, _, err := git.TreeFiles(ctx, s.Dir, s.ref())
	return files, err
}

func (s RefSource) Revision(ctx context.Context) (string, string, error) {
	repo, err := filepath.Abs(s.Dir)
	if err != nil {
		return "", "", err
	}
	rev, err := git.ResolveRevision(s.Dir, s.ref())
	if err != nil {
		return "", "", err
	}
	return repo, rev, nil
}

// StaticSource serves a fixed file list.
type StaticSource []string

func (s StaticSource) Describe() string {
	return "static"
}

func (s StaticSource) List(context.Context) ([]string, error) {
	return s, nil
}
