package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/ruminaider/presetctl/internal/cache"
	"github.com/ruminaider/presetctl/internal/commands"
	"github.com/ruminaider/presetctl/internal/config"
	"github.com/ruminaider/presetctl/internal/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect_WorkTree(t *testing.T) {
	dir := setupRepo(t, monorepo...)

	res, err := commands.Detect(ctx(), commands.DetectOptions{
		Dir:    filepath.Join(dir, "apps", "web"),
		Config: defaultConfig(),
	})
	require.NoError(t, err)
	assert.Equal(t, dir, res.Dir)
	assert.Equal(t, "nextjs", res.Root)
	require.Len(t, res.Projects, 3)
	assert.Equal(t, "./", res.Projects[0].Path)
	assert.Equal(t, "apps/web", res.Projects[1].Path)
	assert.Equal(t, "services/api", res.Projects[2].Path)
	assert.Empty(t, res.Revision)
}

func TestDetect_UncommittedChanges(t *testing.T) {
	dir := setupRepo(t, "README.md")
	writeFiles(t, dir, "vite.config.ts")

	res, err := commands.Detect(ctx(), commands.DetectOptions{Dir: dir, Config: defaultConfig()})
	require.NoError(t, err)
	assert.Equal(t, "vite", res.Root)

	res, err = commands.Detect(ctx(), commands.DetectOptions{Dir: dir, Ref: "HEAD", Config: defaultConfig()})
	require.NoError(t, err)
	assert.Empty(t, res.Root)
}

func TestDetect_NotARepo(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Dockerfile", "node_modules/x/next.config.js")

	res, err := commands.Detect(ctx(), commands.DetectOptions{Dir: dir, Config: defaultConfig()})
	require.NoError(t, err)
	require.Len(t, res.Projects, 1)
	assert.Equal(t, "dockerfile", res.Root)

	_, err = commands.Detect(ctx(), commands.DetectOptions{Dir: dir, Ref: "HEAD", Config: defaultConfig()})
	assert.Error(t, err)
}

func TestDetect_RefUsesCache(t *testing.T) {
	dir := setupRepo(t, monorepo...)
	store, err := cache.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	opts := commands.DetectOptions{Dir: dir, Ref: "HEAD", Config: defaultConfig(), Cache: store}
	first, err := commands.Detect(ctx(), opts)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	head, err := git.RevParse(dir, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, head, first.Revision)

	second, err := commands.Detect(ctx(), opts)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Projects, second.Projects)
	assert.Equal(t, "nextjs", second.Root)
}

func TestDetect_ConfigDepthAndIgnore(t *testing.T) {
	dir := setupRepo(t, "a/b/c/vite.config.ts", "examples/demo/Dockerfile")

	res, err := commands.Detect(ctx(), commands.DetectOptions{Dir: dir, Config: defaultConfig()})
	require.NoError(t, err)
	assert.Len(t, res.Projects, 1)

	cfg := config.Config{MaxDepth: 3, Ignore: []string{"examples"}}
	res, err = commands.Detect(ctx(), commands.DetectOptions{Dir: dir, Config: cfg})
	require.NoError(t, err)
	require.Len(t, res.Projects, 1)
	assert.Equal(t, "a/b/c", res.Projects[0].Path)
}

func TestDetectMany(t *testing.T) {
	a := setupRepo(t, "next.config.js")
	b := setupRepo(t, "Dockerfile")
	c := setupRepo(t, "web/vite.config.ts")

	results, err := commands.DetectMany(ctx(), []string{a, b, c}, commands.DetectOptions{Config: defaultConfig()}, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, a, results[0].Dir)
	assert.Equal(t, "nextjs", results[0].Root)
	assert.Equal(t, "dockerfile", results[1].Root)
	assert.Equal(t, "web", results[2].Projects[0].Path)
}

func TestDetectMany_Error(t *testing.T) {
	a := setupRepo(t, "next.config.js")
	_, err := commands.DetectMany(ctx(), []string{a, t.TempDir()}, commands.DetectOptions{Ref: "HEAD", Config: defaultConfig()}, 0)
	assert.Error(t, err)
}

func TestOpenCache(t *testing.T) {
	off := false
	store, err := commands.OpenCache(ctx(), config.Config{Cache: &off}, filepath.Join(t.TempDir(), "cache.db"), nil)
	require.NoError(t, err)
	assert.Nil(t, store)

	store, err = commands.OpenCache(ctx(), defaultConfig(), filepath.Join(t.TempDir(), "nested", "cache.db"), nil)
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.NoError(t, store.Close())
}
