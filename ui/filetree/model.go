package filetree

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repolens/ui/theme"
	"github.com/gerunddev/repolens/workspace"
)

// Placeholder is shown when there are no roots.
const Placeholder = "No file tree data"

// KeyMap defines the tree keybindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Home   key.Binding
	End    key.Binding
	Toggle key.Binding

	ExpandAll   key.Binding
	CollapseAll key.Binding
}

// DefaultKeyMap returns the default tree keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "ctrl+p"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "ctrl+n"),
			key.WithHelp("↓/j", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("↵/space", "expand/collapse"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "collapse all"),
		),
	}
}

// Model is a scrollable, navigable tree. Mouse coordinates passed to Update
// are relative to the first content line.
type Model struct {
	roots    []*Node
	rows     []Row
	cursor   int
	focused  bool
	keys     KeyMap
	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// NewModel builds a model over tree.
func NewModel(tree []workspace.TreeNode) *Model {
	m := &Model{keys: DefaultKeyMap()}
	m.SetTree(tree)
	return m
}

// SetTree replaces the tree. Expand state and cursor reset.
func (m *Model) SetTree(tree []workspace.TreeNode) {
	m.roots = NewForest(tree)
	m.cursor = 0
	m.refresh()
}

// Roots returns the root nodes.
func (m *Model) Roots() []*Node { return m.roots }

// Rows returns the currently visible rows.
func (m *Model) Rows() []Row { return m.rows }

// Cursor returns the index of the highlighted row.
func (m *Model) Cursor() int { return m.cursor }

// Selected returns the node under the cursor, or nil.
func (m *Model) Selected() *Node {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor].Node
	}
	return nil
}

// SetFocused controls cursor highlighting and keyboard handling.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
	m.refresh()
}

// SetSize sets the content area in cells.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if !m.ready {
		m.viewport = viewport.New(width, height)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height
	}
	m.refresh()
}

// ToggleRow toggles the node shown at row index i. Out of range or file
// rows are ignored.
func (m *Model) ToggleRow(i int) {
	if i < 0 || i >= len(m.rows) {
		return
	}
	m.cursor = i
	m.rows[i].Node.Toggle()
	m.refresh()
}

// SetExpandedAll expands or collapses every folder. The cursor stays on
// the same node when it is still visible, otherwise on its root.
func (m *Model) SetExpandedAll(expanded bool) {
	sel := m.Selected()
	for _, r := range m.roots {
		r.SetExpandedAll(expanded)
	}
	m.rows = VisibleRows(m.roots)
	m.cursor = 0
	for i, row := range m.rows {
		if row.Node == sel {
			m.cursor = i
			break
		}
		if row.Depth == 0 && sel != nil && row.Node.contains(sel) {
			m.cursor = i
		}
	}
	m.refresh()
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress {
				m.ToggleRow(msg.Y + m.viewport.YOffset)
				m.ensureCursorVisible()
			}
		case tea.MouseButtonWheelUp:
			m.viewport.LineUp(3)
		case tea.MouseButtonWheelDown:
			m.viewport.LineDown(3)
		}

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Home):
			m.cursor = 0
		case key.Matches(msg, m.keys.End):
			if len(m.rows) > 0 {
				m.cursor = len(m.rows) - 1
			}
		case key.Matches(msg, m.keys.Toggle):
			m.ToggleRow(m.cursor)
		case key.Matches(msg, m.keys.ExpandAll):
			m.SetExpandedAll(true)
		case key.Matches(msg, m.keys.CollapseAll):
			m.SetExpandedAll(false)
		}
		m.refresh()
		m.ensureCursorVisible()
	}

	return m, nil
}

func (m *Model) View() string {
	if len(m.roots) == 0 {
		return theme.DimmedStyle.Render(Placeholder)
	}
	if !m.ready {
		return m.renderContent()
	}
	return m.viewport.View()
}

func (m *Model) refresh() {
	m.rows = VisibleRows(m.roots)
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
	if m.ready {
		m.viewport.SetContent(m.renderContent())
	}
}

func (m *Model) ensureCursorVisible() {
	if !m.ready || m.viewport.Height <= 0 {
		return
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.cursor)
	} else if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(m.cursor - m.viewport.Height + 1)
	}
}

func (m *Model) renderContent() string {
	lines := make([]string, 0, len(m.rows))
	for i, row := range m.rows {
		if i == m.cursor && m.focused {
			lines = append(lines, theme.SelectedItemStyle.Render(row.Plain()))
			continue
		}
		lines = append(lines, row.Render())
	}
	return strings.Join(lines, "\n")
}

var _ tea.Model = (*Model)(nil)
