package reconcile

import (
	"testing"

	"github.com/ruminaider/presetctl/internal/preset"
	"github.com/stretchr/testify/assert"
)

func TestParseSelection(t *testing.T) {
	tests := []struct {
		key  string
		want Selection
	}{
		{"nextjs::root", Selection{"nextjs", Root}},
		{"vite::apps/web", Selection{"vite", "apps/web"}},
		{"nextjs", Selection{"nextjs", Root}},
		{"nextjs::", Selection{"nextjs", Root}},
		{"custom", Selection{Custom, Root}},
		{"", Selection{"", Root}},
		{"a::b::c", Selection{"a", "b::c"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSelection(tt.key))
		})
	}
}

func TestSelection_Key(t *testing.T) {
	assert.Equal(t, "vite::apps/web", NewSelection("vite", "apps/web").Key())
	assert.Equal(t, "nextjs::root", NewSelection("nextjs", "./").Key())
	assert.Equal(t, "custom", NewSelection(Custom, "").Key())
	assert.Equal(t, "", Selection{}.Key())
	assert.Equal(t, "custom::apps", NewSelection(Custom, "apps").Key())
}

func TestSelection_RoundTrip(t *testing.T) {
	for _, key := range []string{"vite::apps/web", "nextjs::root", "custom", ""} {
		assert.Equal(t, key, ParseSelection(key).Key())
	}
}

func TestSelection_Equal(t *testing.T) {
	assert.True(t, Selection{"nextjs", "./"}.Equal(Selection{"nextjs", ""}))
	assert.True(t, Selection{"nextjs", "."}.Equal(NewSelection("nextjs", "root")))
	assert.False(t, Selection{"nextjs", "apps"}.Equal(Selection{"NextJS", "apps"}))
	assert.False(t, Selection{"nextjs", "apps"}.Equal(Selection{"nextjs", "./apps"}))
}

func TestSelection_Matches(t *testing.T) {
	s := NewSelection("nextjs", "")
	assert.True(t, s.Matches(preset.DetectedProject{Preset: "nextjs", Path: "."}))
	assert.False(t, s.Matches(preset.DetectedProject{Preset: "nextjs", Path: "web"}))
}

func TestSelection_IsCustom(t *testing.T) {
	assert.True(t, Selection{}.IsCustom())
	assert.True(t, NewSelection(Custom, "").IsCustom())
	assert.False(t, NewSelection("vite", "").IsCustom())
	assert.False(t, NewSelection("", "apps/web").IsCustom())
	assert.False(t, NewSelection(Custom, "apps").IsCustom())
}

func TestSelection_Directory(t *testing.T) {
	assert.Equal(t, "./", NewSelection(Custom, "").Directory())
	assert.Equal(t, "./", NewSelection("nextjs", ".").Directory())
	assert.Equal(t, "./apps/web", NewSelection("vite", "apps/web").Directory())
	assert.Equal(t, "./services/api", NewSelection(Custom, "services/api").Directory())
}

func TestSelection_DirectoryAgreesWithKey(t *testing.T) {
	keys := []string{"", "custom", "custom::apps", "::apps/web", "::root", "vite::apps/web", "nextjs::root", "nextjs", "go::./cmd"}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			sel := ParseSelection(key)
			assert.Equal(t, ResolveDirectory(key), sel.Directory())
			assert.Equal(t, sel.Directory(), ResolveDirectory(sel.Key()))
		})
	}
	assert.Equal(t, "::apps/web", ParseSelection("::apps/web").Key())
	assert.Equal(t, "./apps/web", ParseSelection("::apps/web").Directory())
}
