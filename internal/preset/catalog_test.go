package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_ContainsCorePresets(t *testing.T) {
	c := Builtin()
	for _, slug := range []string{"nextjs", "vite", "dockerfile", "docusaurus", "rsbuild", "create-react-app"} {
		_, ok := c.BySlug(slug)
		assert.True(t, ok, "missing %s", slug)
	}
	_, ok := c.BySlug("nonexistent")
	assert.False(t, ok)
}

func TestBuiltin_ReturnsCopy(t *testing.T) {
	c := Builtin()
	c[0].Label = "changed"

	p, ok := Builtin().BySlug("nextjs")
	require.True(t, ok)
	assert.Equal(t, "Next.js", p.Label)
}

func TestBuiltin_Ports(t *testing.T) {
	c := Builtin()

	next, _ := c.BySlug("nextjs")
	assert.Equal(t, 3000, next.DefaultPort)
	assert.True(t, next.HasPort())

	docker, _ := c.BySlug("dockerfile")
	assert.False(t, docker.HasPort())
}

func TestCatalog_Merge(t *testing.T) {
	base := Catalog{
		{Slug: "nextjs", Label: "Next.js", ProjectType: Server},
		{Slug: "vite", Label: "Vite", ProjectType: Static},
	}

	merged := base.Merge([]Preset{
		{Slug: "vite", Label: "Vite (SSR)", ProjectType: Server},
		{Slug: "hugo"},
		{Label: "no slug"},
	})

	require.Len(t, merged, 3)
	assert.Equal(t, "Vite (SSR)", merged[1].Label)
	assert.Equal(t, Server, merged[1].ProjectType)
	assert.Equal(t, "hugo", merged[2].Slug)
	assert.Equal(t, "hugo", merged[2].Label)
	assert.Equal(t, Server, merged[2].ProjectType)

	// base is untouched
	assert.Equal(t, "Vite", base[1].Label)
}

func TestParseProjectType(t *testing.T) {
	pt, err := ParseProjectType("Static")
	require.NoError(t, err)
	assert.Equal(t, Static, pt)

	pt, err = ParseProjectType("")
	require.NoError(t, err)
	assert.Equal(t, Server, pt)

	_, err = ParseProjectType("lambda")
	assert.Error(t, err)
}

func TestDetectedProject_DisplayLabel(t *testing.T) {
	c := Catalog{{Slug: "vite", Label: "Vite"}}

	assert.Equal(t, "Web App", DetectedProject{Preset: "vite", PresetLabel: "Web App"}.DisplayLabel(c))
	assert.Equal(t, "Vite", DetectedProject{Preset: "vite"}.DisplayLabel(c))
	assert.Equal(t, "hugo", DetectedProject{Preset: "hugo"}.DisplayLabel(c))
}
