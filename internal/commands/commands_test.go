package commands_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruminaider/presetctl/internal/config"
	"github.com/ruminaider/presetctl/internal/git"
	"github.com/stretchr/testify/require"
)

// setupRepo creates a committed git repository holding files.
func setupRepo(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, files...)
	require.NoError(t, git.Init(dir))
	require.NoError(t, git.Add(dir, "-A"))
	require.NoError(t, git.Commit(dir, "initial"))
	// TopLevel reports symlink-resolved paths
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}

func writeFiles(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		full := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("test content"), 0644))
	}
}

var monorepo = []string{
	"package.json",
	"next.config.js",
	"apps/web/package.json",
	"apps/web/vite.config.ts",
	"services/api/Dockerfile",
}

func defaultConfig() config.Config {
	return config.Default()
}

func ctx() context.Context {
	return context.Background()
}
