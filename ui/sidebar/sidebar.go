// Package sidebar composes the repository header, the file tree and the
// conversation history into one column.
//
// The sidebar never changes the data it shows. Every user gesture is
// forwarded once to the owner through Actions, and the owner pushes new
// data back with SetTree and SetHistory.
package sidebar

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repolens/ui/history"
	"github.com/gerunddev/repolens/ui/theme"
	"github.com/gerunddev/repolens/workspace"
	"github.com/mattn/go-runewidth"
)

// Actions receives the user gestures made in the sidebar.
type Actions interface {
	// Toggle asks the owner to hide or show the sidebar.
	Toggle()
	// Copy hands over the question text of an entry.
	Copy(text string)
	// Edit commits an inline edit of an entry's question.
	Edit(id int, text string)
	Delete(id int)
	Rename(id int)
	Archive(id int)
	Export(id int)
}

// Selector is implemented by owners that want to know which entry the user
// opened.
type Selector interface {
	Select(id int)
}

// ChatStarter is implemented by owners that support starting a new chat.
// The new chat control is only drawn for them.
type ChatStarter interface {
	NewChat()
}

// HistoryRenderer draws one history entry. history.ItemRenderer is the
// default.
type HistoryRenderer interface {
	RenderItem(e *workspace.HistoryEntry, st history.ItemState, width int) string
}

// Section identifies the focused part of the sidebar.
type Section int

const (
	SectionNone Section = iota
	SectionFiles
	SectionHistory
)

// Header controls and sizes.
const (
	CloseControl   = "[«]"
	NewChatControl = "[+]"
	NoRepository   = "(no repository)"
	headerHeight   = 2
)

// Model is the sidebar.
type Model struct {
	repo    workspace.RepoMeta
	actions Actions
	keys    KeyMap

	files   *filesPanel
	history *historyPanel

	focus  Section
	width  int
	height int
}

// New creates a sidebar. actions must not be nil.
func New(repo workspace.RepoMeta, tree []workspace.TreeNode, entries []workspace.HistoryEntry, actions Actions) *Model {
	keys := DefaultKeyMap()
	return &Model{
		repo:    repo,
		actions: actions,
		keys:    keys,
		files:   newFilesPanel(tree),
		history: newHistoryPanel(entries, actions, keys),
	}
}

// SetRepo replaces the header data.
func (m *Model) SetRepo(repo workspace.RepoMeta) { m.repo = repo }

// SetTree replaces the file tree. Expand state resets.
func (m *Model) SetTree(tree []workspace.TreeNode) { m.files.setTree(tree) }

// SetHistory replaces the history entries.
func (m *Model) SetHistory(entries []workspace.HistoryEntry) { m.history.setEntries(entries) }

// SetRenderer swaps the history item renderer. nil restores the default.
func (m *Model) SetRenderer(r HistoryRenderer) {
	if r == nil {
		r = history.ItemRenderer{}
	}
	m.history.renderer = r
	m.history.refresh()
}

// SetPageSize limits how many history entries are shown before a
// "Load more" row. 0 shows everything.
func (m *Model) SetPageSize(n int) { m.history.setPageSize(n) }

// SetFocus focuses a section, or nothing with SectionNone.
func (m *Model) SetFocus(s Section) {
	m.focus = s
	m.files.SetFocused(s == SectionFiles)
	m.history.SetFocused(s == SectionHistory)
}

// Focus returns the focused section.
func (m *Model) Focus() Section { return m.focus }

// Capturing reports whether the sidebar is consuming raw text input, in
// which case the owner should route every key here.
func (m *Model) Capturing() bool { return m.history.editing }

// Keys returns the keybindings.
func (m *Model) Keys() KeyMap { return m.keys }

// SetSize sets the sidebar dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	remaining := max(0, height-headerHeight)
	filesHeight := remaining / 2
	m.files.SetSize(width, filesHeight)
	m.history.SetSize(width, remaining-filesHeight)
}

func (m *Model) filesTop() int   { return headerHeight }
func (m *Model) historyTop() int { return headerHeight + m.files.Height() }

func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles keys when a section is focused and mouse events with
// coordinates relative to the sidebar's top-left corner.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		if m.focus == SectionNone {
			return m, nil
		}
		if !m.history.editing {
			switch {
			case key.Matches(msg, m.keys.Close):
				m.actions.Toggle()
				return m, nil
			case key.Matches(msg, m.keys.NewChat):
				if cs, ok := m.actions.(ChatStarter); ok {
					cs.NewChat()
					return m, nil
				}
			}
		}

		var cmd tea.Cmd
		switch m.focus {
		case SectionFiles:
			_, cmd = m.files.Update(msg)
		case SectionHistory:
			_, cmd = m.history.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Y < headerHeight {
		if msg.Y == 0 && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
			m.clickHeader(msg.X)
		}
		return nil
	}

	if msg.Y < m.historyTop() {
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
			m.SetFocus(SectionFiles)
		}
		msg.Y -= m.filesTop()
		_, cmd := m.files.Update(msg)
		return cmd
	}

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		m.SetFocus(SectionHistory)
	}
	msg.Y -= m.historyTop()
	_, cmd := m.history.Update(msg)
	return cmd
}

func (m *Model) clickHeader(x int) {
	closeStart := m.width - runewidth.StringWidth(CloseControl)
	if x >= closeStart && x < m.width {
		m.actions.Toggle()
		return
	}
	if cs, ok := m.actions.(ChatStarter); ok {
		newStart := closeStart - 1 - runewidth.StringWidth(NewChatControl)
		if x >= newStart && x < newStart+runewidth.StringWidth(NewChatControl) {
			cs.NewChat()
		}
	}
}

func (m *Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.files.View(),
		m.history.View(),
	)
}

func (m *Model) renderHeader() string {
	controls := theme.ControlStyle.Render(CloseControl)
	controlsWidth := runewidth.StringWidth(CloseControl)
	if _, ok := m.actions.(ChatStarter); ok {
		controls = theme.ControlStyle.Render(NewChatControl) + " " + controls
		controlsWidth += 1 + runewidth.StringWidth(NewChatControl)
	}

	name := m.repo.Name
	if name == "" {
		name = NoRepository
	}
	branch := "⎇ " + m.repo.DisplayBranch()

	avail := max(0, m.width-controlsWidth-1)
	nameText := runewidth.Truncate(name, avail, "…")
	left := theme.RepoNameStyle.Render(nameText)
	used := runewidth.StringWidth(nameText)
	if rest := avail - used - 1; rest > 0 {
		b := runewidth.Truncate(branch, rest, "…")
		left += " " + theme.BranchStyle.Render(b)
		used += 1 + runewidth.StringWidth(b)
	}

	gap := max(1, m.width-used-controlsWidth)
	header := left + strings.Repeat(" ", gap) + controls
	rule := theme.DimmedStyle.Render(strings.Repeat("─", max(0, m.width)))
	return header + "\n" + rule
}

var _ tea.Model = (*Model)(nil)
