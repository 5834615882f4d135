package cache

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/ruminaider/presetctl/internal/preset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	projects := []preset.DetectedProject{
		{Preset: "nextjs", Path: "./", PresetLabel: "Next.js", DefaultPort: 3000, ProjectType: preset.Server},
		{Preset: "vite", Path: "apps/web", PackageManager: "pnpm"},
	}
	require.NoError(t, s.Put(ctx, "/repo", "abc", "opts", projects))

	got, ok, err := s.Get(ctx, "/repo", "abc", "opts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, projects, got)

	_, ok, err = s.Get(ctx, "/repo", "other", "opts")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Get(ctx, "/elsewhere", "abc", "opts")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_KeyedByOptions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "/repo", "abc", "depth2", []preset.DetectedProject{{Preset: "vite", Path: "apps/web"}}))
	require.NoError(t, s.Put(ctx, "/repo", "abc", "ignore-apps", nil))

	got, ok, err := s.Get(ctx, "/repo", "abc", "depth2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got, 1)

	got, ok, err = s.Get(ctx, "/repo", "abc", "ignore-apps")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got)

	_, ok, err = s.Get(ctx, "/repo", "abc", "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_DropsOldSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE detections (repo TEXT, revision TEXT, projects TEXT, detected_at INTEGER, PRIMARY KEY (repo, revision))`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Put(context.Background(), "/repo", "abc", "opts", nil))
	_, ok, err := s.Get(context.Background(), "/repo", "abc", "opts")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_PutReplaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "/repo", "abc", "opts", []preset.DetectedProject{{Preset: "vite", Path: "./"}}))
	require.NoError(t, s.Put(ctx, "/repo", "abc", "opts", nil))

	got, ok, err := s.Get(ctx, "/repo", "abc", "opts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestStore_Prune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now.Add(-48 * time.Hour) }
	require.NoError(t, s.Put(ctx, "/repo", "old", "opts", nil))
	s.now = func() time.Time { return now }
	require.NoError(t, s.Put(ctx, "/repo", "new", "opts", nil))

	n, err := s.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, ok, _ := s.Get(ctx, "/repo", "old", "opts")
	assert.False(t, ok)
	_, ok, _ = s.Get(ctx, "/repo", "new", "opts")
	assert.True(t, ok)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "/repo", "abc", "opts", []preset.DetectedProject{{Preset: "go", Path: "./"}}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, ok, err := s.Get(ctx, "/repo", "abc", "opts")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "go", got[0].Preset)
}

func TestStore_Closed(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, _, err = s.Get(context.Background(), "/repo", "abc", "opts")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Put(context.Background(), "/repo", "abc", "opts", nil), ErrClosed)
	_, err = s.Prune(context.Background(), time.Hour)
	assert.ErrorIs(t, err, ErrClosed)

	var nilStore *Store
	_, _, err = nilStore.Get(context.Background(), "/repo", "abc", "opts")
	assert.ErrorIs(t, err, ErrClosed)
}
