package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/ruminaider/presetctl/internal/reconcile"
)

// presetPicker is a single-select TUI over a reconciled display set. The
// last entry is always "Custom configuration". Pressing m toggles manual
// mode and re-reconciles.
type presetPicker struct {
	title     string
	input     reconcile.Input
	state     reconcile.State
	cursor    int
	done      bool
	cancelled bool
}

// pickerChoice is what the user picked.
type pickerChoice struct {
	Option reconcile.Option
	Custom bool
	Mode   reconcile.Mode
}

func newPresetPicker(title string, in reconcile.Input) presetPicker {
	p := presetPicker{title: title, input: in}
	p.refresh()
	return p
}

// refresh reconciles the input and puts the cursor on the current selection.
func (p *presetPicker) refresh() {
	p.state = reconcile.Reconcile(p.input)
	items := p.state.Display.Items
	p.cursor = 0
	if p.input.Selection == reconcile.Custom {
		p.cursor = len(items)
		return
	}
	for i, it := range items {
		if p.isCurrent(it) {
			p.cursor = i
			return
		}
	}
}

func (p presetPicker) isCurrent(it reconcile.Option) bool {
	sel := p.state.Selection
	if p.state.Custom {
		return false
	}
	if p.state.Display.Mode == reconcile.ModeCatalog {
		return it.PresetSlug == sel.PresetSlug
	}
	return reconcile.NewSelection(it.PresetSlug, it.Path).Equal(sel)
}

func (p presetPicker) Init() tea.Cmd { return nil }

func (p presetPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			p.cancelled = true
			p.done = true
			return p, tea.Quit
		case "up", "k":
			if p.cursor > 0 {
				p.cursor--
			}
		case "down", "j":
			if p.cursor < len(p.state.Display.Items) {
				p.cursor++
			}
		case "m":
			p.input.ManualRequested = !p.input.ManualRequested
			p.refresh()
		case "enter":
			p.done = true
			return p, tea.Quit
		}
	}
	return p, nil
}

func (p presetPicker) View() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("  %s\n", p.title))
	header := "Detected projects"
	if p.state.Display.Mode == reconcile.ModeCatalog {
		header = "All presets"
	}
	b.WriteString("  " + headerStyle.Render(header) + "\n\n")

	items := p.state.Display.Items
	for i, it := range items {
		b.WriteString(p.line(i, it.Label))
	}
	b.WriteString("\n")
	b.WriteString(p.line(len(items), "Custom configuration"))

	b.WriteString("\n  " + dimStyle.Render("↑/↓ move · enter select · m toggle manual mode · esc cancel") + "\n")
	return b.String()
}

func (p presetPicker) line(i int, label string) string {
	if p.cursor == i {
		return "  " + cursorStyle.Render("> "+label) + "\n"
	}
	return "    " + itemStyle.Render(label) + "\n"
}

// Choice returns the picked entry. ok is false if the picker was cancelled.
func (p presetPicker) Choice() (pickerChoice, bool) {
	if p.cancelled || !p.done {
		return pickerChoice{}, false
	}
	items := p.state.Display.Items
	if p.cursor >= len(items) {
		return pickerChoice{Custom: true, Mode: p.state.Display.Mode}, true
	}
	return pickerChoice{Option: items[p.cursor], Mode: p.state.Display.Mode}, true
}

// runPresetPicker runs the picker and returns huh.ErrUserAborted on cancel.
func runPresetPicker(title string, in reconcile.Input) (pickerChoice, error) {
	model, err := tea.NewProgram(newPresetPicker(title, in)).Run()
	if err != nil {
		return pickerChoice{}, err
	}
	choice, ok := model.(presetPicker).Choice()
	if !ok {
		return pickerChoice{}, huh.ErrUserAborted
	}
	return choice, nil
}
