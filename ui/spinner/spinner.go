// Package spinner shows a static loading indicator.
//
// It never animates and accepts no input, so it can be dropped into any view
// without a tick command.
package spinner

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repolens/ui/theme"
)

// DefaultLabel is shown until WithLabel sets another one.
const DefaultLabel = "Loading..."

// Model is the indicator.
type Model struct {
	label string
	frame string
	width int
}

// New creates an indicator labelled DefaultLabel.
func New() Model {
	return Model{
		label: DefaultLabel,
		frame: spinner.Dot.Frames[0],
	}
}

// WithLabel replaces the text next to the glyph. An empty label keeps the
// current one.
func (m Model) WithLabel(label string) Model {
	if label != "" {
		m.label = label
	}
	return m
}

// Label returns the text shown next to the glyph.
func (m Model) Label() string { return m.label }

// WithWidth centers the indicator in width cells.
func (m Model) WithWidth(width int) Model {
	m.width = width
	return m
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }

func (m Model) View() string {
	s := lipgloss.NewStyle().Foreground(theme.ColorAccent).Render(m.frame) + " " +
		theme.DimmedStyle.Render(m.label)
	if m.width > 0 {
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, s)
	}
	return s
}
