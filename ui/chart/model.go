package chart

import tea "github.com/charmbracelet/bubbletea"

// Model embeds a chart in a Bubble Tea layout. It has no state beyond its
// size.
type Model struct {
	chart  Chart
	width  int
	height int
}

// NewModel wraps c.
func NewModel(c Chart) *Model {
	return &Model{chart: c}
}

// SetChart replaces the chart.
func (m *Model) SetChart(c Chart) { m.chart = c }

// Chart returns the current chart.
func (m *Model) Chart() Chart { return m.chart }

// SetSize sets the drawing area in cells.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return m, nil }

func (m *Model) View() string {
	return Render(m.chart, m.width, m.height)
}

var _ tea.Model = (*Model)(nil)
