package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Run executes a git command in the given directory and returns trimmed stdout.
func Run(dir string, args ...string) (string, error) {
	return RunContext(context.Background(), dir, args...)
}

// RunContext is Run bound to ctx.
func RunContext(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return strings.TrimSpace(string(out)), err
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo returns true if dir is inside a git work tree.
func IsRepo(dir string) bool {
	_, err := Run(dir, "rev-parse", "--git-dir")
	return err == nil
}

// RevParse returns the resolved SHA for a ref.
func RevParse(dir, ref string) (string, error) {
	return Run(dir, "rev-parse", ref)
}

// TopLevel returns the root of the work tree containing dir.
func TopLevel(dir string) (string, error) {
	return Run(dir, "rev-parse", "--show-toplevel")
}

// Init initializes a new git repo in dir with local user config
// so commits work regardless of global git configuration.
func Init(dir string) error {
	if _, err := Run(dir, "init", "-b", "main"); err != nil {
		return err
	}
	if _, err := Run(dir, "config", "user.name", "presetctl"); err != nil {
		return err
	}
	_, err := Run(dir, "config", "user.email", "presetctl@localhost")
	return err
}

// Add stages files.
func Add(dir string, paths ...string) error {
	args := append([]string{"add"}, paths...)
	_, err := Run(dir, args...)
	return err
}

// Commit creates a commit with the given message.
func Commit(dir, message string) error {
	_, err := Run(dir, "commit", "-m", message)
	return err
}

// ListWorkTreeFiles lists tracked and untracked, non-ignored files present
// under dir, relative to dir, using forward slashes. Tracked files deleted
// from the work tree are left out.
func ListWorkTreeFiles(ctx context.Context, dir string) ([]string, error) {
	out, err := RunContext(ctx, dir, "ls-files", "--cached", "--others", "--exclude-standard")
	if err != nil {
		return nil, fmt.Errorf("git ls-files: %s: %w", out, err)
	}
	deleted, err := RunContext(ctx, dir, "ls-files", "--deleted")
	if err != nil {
		return nil, fmt.Errorf("git ls-files --deleted: %s: %w", deleted, err)
	}
	seen := make(map[string]bool)
	for _, l := range splitLines(deleted) {
		seen[l] = true
	}

	var files []string
	for _, l := range splitLines(out) {
		if seen[l] {
			continue
		}
		seen[l] = true
		files = append(files, l)
	}
	return files, nil
}

func splitLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
