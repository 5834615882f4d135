package git

import (
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// RefNotFoundError is returned when a revision does not resolve to a commit.
type RefNotFoundError struct {
	Ref string
}

func (e *RefNotFoundError) Error() string {
	return fmt.Sprintf("revision %q not found", e.Ref)
}

func open(dir string) (*gogit.Repository, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository %s: %w", dir, err)
	}
	return repo, nil
}

func resolveCommit(repo *gogit.Repository, ref string) (*object.Commit, error) {
	if ref == "" {
		ref = "HEAD"
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) || errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, &RefNotFoundError{Ref: ref}
		}
		return nil, fmt.Errorf("resolving %s: %w", ref, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, &RefNotFoundError{Ref: ref}
		}
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	return commit, nil
}

// ResolveRevision returns the commit hash ref points at. An empty ref means HEAD.
func ResolveRevision(dir, ref string) (string, error) {
	repo, err := open(dir)
	if err != nil {
		return "", err
	}
	commit, err := resolveCommit(repo, ref)
	if err != nil {
		return "", err
	}
	return commit.Hash.String(), nil
}

// TreeFiles lists every file in the tree of the commit ref points at,
// relative to the repository root. It also returns the commit hash.
func TreeFiles(ctx context.Context, dir, ref string) ([]string, string, error) {
	repo, err := open(dir)
	if err != nil {
		return nil, "", err
	}
	commit, err := resolveCommit(repo, ref)
	if err != nil {
		return nil, "", err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, "", fmt.Errorf("reading tree of %s: %w", commit.Hash, err)
	}

	var files []string
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		files = append(files, f.Name)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return files, commit.Hash.String(), nil
}
