package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ruminaider/presetctl/internal/preset"
	"github.com/ruminaider/presetctl/internal/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(key tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: key}
}

func runeMsg(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func press(p presetPicker, msgs ...tea.KeyMsg) presetPicker {
	for _, msg := range msgs {
		model, _ := p.Update(msg)
		p = model.(presetPicker)
	}
	return p
}

var testDetected = []preset.DetectedProject{
	{Preset: "nextjs", Path: "./", PresetLabel: "Next.js"},
	{Preset: "vite", Path: "apps/web", PresetLabel: "Vite"},
}

func testInput(selection string) reconcile.Input {
	return reconcile.Input{
		Detected:  testDetected,
		Catalog:   preset.Builtin(),
		Selection: selection,
	}
}

func TestPresetPicker_DetectedMode(t *testing.T) {
	p := newPresetPicker("test", testInput("vite::apps/web"))
	assert.Equal(t, reconcile.ModeDetected, p.state.Display.Mode)
	assert.Equal(t, 1, p.cursor, "cursor starts on the current selection")

	p = press(p, keyMsg(tea.KeyUp), keyMsg(tea.KeyEnter))
	choice, ok := p.Choice()
	require.True(t, ok)
	assert.False(t, choice.Custom)
	assert.Equal(t, "nextjs", choice.Option.PresetSlug)
	assert.Equal(t, reconcile.Root, choice.Option.Path)
}

func TestPresetPicker_UndetectedSelectionShowsCatalog(t *testing.T) {
	p := newPresetPicker("test", testInput("astro::root"))
	assert.Equal(t, reconcile.ModeCatalog, p.state.Display.Mode)
	require.Less(t, p.cursor, len(p.state.Display.Items))
	assert.Equal(t, "astro", p.state.Display.Items[p.cursor].PresetSlug)

	// turning manual mode off cannot hide the stored choice
	p = press(p, runeMsg("m"))
	assert.Equal(t, reconcile.ModeCatalog, p.state.Display.Mode)
}

func TestPresetPicker_ToggleManual(t *testing.T) {
	p := newPresetPicker("test", testInput(""))
	assert.Equal(t, reconcile.ModeDetected, p.state.Display.Mode)

	p = press(p, runeMsg("m"))
	assert.Equal(t, reconcile.ModeCatalog, p.state.Display.Mode)
	assert.Len(t, p.state.Display.Items, len(preset.Builtin()))

	p = press(p, runeMsg("m"))
	assert.Equal(t, reconcile.ModeDetected, p.state.Display.Mode)
}

func TestPresetPicker_CustomEntry(t *testing.T) {
	p := newPresetPicker("test", testInput(reconcile.Custom))
	assert.Equal(t, len(p.state.Display.Items), p.cursor)

	p = press(p, keyMsg(tea.KeyDown), keyMsg(tea.KeyEnter))
	choice, ok := p.Choice()
	require.True(t, ok)
	assert.True(t, choice.Custom)
}

func TestPresetPicker_Cancel(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyMsg(tea.KeyEsc), keyMsg(tea.KeyCtrlC), runeMsg("q")} {
		p := press(newPresetPicker("test", testInput("")), msg)
		_, ok := p.Choice()
		assert.False(t, ok)
	}
}

func TestPresetPicker_NotDone(t *testing.T) {
	p := press(newPresetPicker("test", testInput("")), keyMsg(tea.KeyDown))
	_, ok := p.Choice()
	assert.False(t, ok)
}

func TestPresetPicker_View(t *testing.T) {
	view := newPresetPicker("Select a preset:", testInput("")).View()
	assert.Contains(t, view, "Select a preset:")
	assert.Contains(t, view, "Detected projects")
	assert.Contains(t, view, "Vite (./apps/web)")
	assert.Contains(t, view, "Custom configuration")
}

func TestCleanInputPath(t *testing.T) {
	tests := map[string]string{
		"":              "",
		".":             "",
		"./":            "",
		" ./apps/web/ ": "apps/web",
		"services/api":  "services/api",
	}
	for in, want := range tests {
		assert.Equal(t, want, cleanInputPath(in), in)
	}
}

func TestValidateDirectory(t *testing.T) {
	assert.NoError(t, validateDirectory("./apps/web"))
	assert.NoError(t, validateDirectory(""))
	assert.Error(t, validateDirectory("/etc"))
	assert.Error(t, validateDirectory("../other"))
}
