package sidebar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repolens/ui/history"
	"github.com/gerunddev/repolens/ui/panels"
	"github.com/gerunddev/repolens/ui/theme"
	"github.com/gerunddev/repolens/workspace"
)

// History panel texts.
const (
	HistoryTitle       = "Conversation History"
	HistoryPlaceholder = "No history yet"
	LoadMoreLabel      = "Load more"
)

// historyPanel lists entries in input order. The cursor ranges over the
// visible entries plus the "Load more" row when present.
type historyPanel struct {
	panels.BasePanel
	entries  []workspace.HistoryEntry
	actions  Actions
	keys     KeyMap
	renderer HistoryRenderer

	expandedID  int
	hasExpanded bool

	menuOpen   bool
	menuCursor int

	editing bool
	editID  int
	input   textinput.Model

	pageSize int
	shown    int

	viewport   viewport.Model
	ready      bool
	itemStarts []int
	itemLines  []int
	moreLine   int
}

func newHistoryPanel(entries []workspace.HistoryEntry, actions Actions, keys KeyMap) *historyPanel {
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)

	p := &historyPanel{
		BasePanel: panels.NewBasePanel(HistoryTitle),
		actions:   actions,
		keys:      keys,
		renderer:  history.ItemRenderer{},
		input:     ti,
		moreLine:  -1,
	}
	p.setEntries(entries)
	return p
}

func (p *historyPanel) setEntries(entries []workspace.HistoryEntry) {
	p.entries = entries
	p.SetTitle(fmt.Sprintf("%s [%d]", HistoryTitle, len(entries)))

	if p.hasExpanded && workspace.FindEntry(entries, p.expandedID) < 0 {
		p.hasExpanded = false
	}
	if p.editing && workspace.FindEntry(entries, p.editID) < 0 {
		p.stopEdit()
	}
	p.SetCursor(p.Cursor(), p.cursorLimit())
	p.refresh()
}

func (p *historyPanel) setPageSize(n int) {
	p.pageSize = max(0, n)
	p.shown = p.pageSize
	p.SetCursor(p.Cursor(), p.cursorLimit())
	p.refresh()
}

// visible is the number of entries currently listed.
func (p *historyPanel) visible() int {
	if p.pageSize == 0 {
		return len(p.entries)
	}
	return min(p.shown, len(p.entries))
}

func (p *historyPanel) hasMore() bool {
	return p.visible() < len(p.entries)
}

func (p *historyPanel) cursorLimit() int {
	n := p.visible()
	if p.hasMore() {
		n++
	}
	return n
}

func (p *historyPanel) loadMore() {
	p.shown += p.pageSize
	p.refresh()
}

func (p *historyPanel) current() *workspace.HistoryEntry {
	if p.Cursor() >= 0 && p.Cursor() < p.visible() {
		return &p.entries[p.Cursor()]
	}
	return nil
}

func (p *historyPanel) SetSize(width, height int) {
	p.BasePanel.SetSize(width, height)
	if !p.ready {
		p.viewport = viewport.New(p.ContentWidth(), p.ContentHeight())
		p.ready = true
	} else {
		p.viewport.Width = p.ContentWidth()
		p.viewport.Height = p.ContentHeight()
	}
	p.input.Width = max(1, p.ContentWidth()-4)
	p.refresh()
}

func (p *historyPanel) Init() tea.Cmd {
	return nil
}

func (p *historyPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.MouseMsg:
		p.handleMouse(msg)
	case tea.KeyMsg:
		if !p.IsFocused() {
			return p, nil
		}
		cmd = p.handleKey(msg)
	}
	p.refresh()
	p.ensureCursorVisible()
	return p, cmd
}

func (p *historyPanel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if p.editing {
		switch msg.Type {
		case tea.KeyEnter:
			id, text := p.editID, p.input.Value()
			p.stopEdit()
			p.actions.Edit(id, text)
			return nil
		case tea.KeyEsc:
			p.stopEdit()
			return nil
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return cmd
	}

	if p.menuOpen {
		switch {
		case key.Matches(msg, p.keys.Up):
			if p.menuCursor > 0 {
				p.menuCursor--
			}
			return nil
		case key.Matches(msg, p.keys.Down):
			if p.menuCursor < len(history.Options)-1 {
				p.menuCursor++
			}
			return nil
		case key.Matches(msg, p.keys.Select):
			if e := p.current(); e != nil {
				return p.invoke(history.Options[p.menuCursor].Action, e)
			}
			return nil
		case key.Matches(msg, p.keys.Cancel), key.Matches(msg, p.keys.Menu):
			p.menuOpen = false
			return nil
		}
	}

	switch {
	case key.Matches(msg, p.keys.Up):
		p.menuOpen = false
		p.MoveCursor(-1, p.cursorLimit())
		return nil
	case key.Matches(msg, p.keys.Down):
		p.menuOpen = false
		p.MoveCursor(1, p.cursorLimit())
		return nil
	case key.Matches(msg, p.keys.Home):
		p.menuOpen = false
		p.SetCursor(0, p.cursorLimit())
		return nil
	case key.Matches(msg, p.keys.End):
		p.menuOpen = false
		p.SetCursor(p.cursorLimit()-1, p.cursorLimit())
		return nil
	case key.Matches(msg, p.keys.Cancel):
		p.menuOpen = false
		return nil
	}

	if p.hasMore() && p.Cursor() == p.visible() {
		if key.Matches(msg, p.keys.Select) {
			p.loadMore()
		}
		return nil
	}

	e := p.current()
	if e == nil {
		return nil
	}

	switch {
	case key.Matches(msg, p.keys.Select):
		p.open(e)
	case key.Matches(msg, p.keys.Menu):
		p.menuOpen = true
		p.menuCursor = 0
	case key.Matches(msg, p.keys.Copy):
		p.actions.Copy(e.Question)
	case key.Matches(msg, p.keys.Edit):
		return p.invoke(history.ActionEdit, e)
	case key.Matches(msg, p.keys.Rename):
		return p.invoke(history.ActionRename, e)
	case key.Matches(msg, p.keys.Archive):
		return p.invoke(history.ActionArchive, e)
	case key.Matches(msg, p.keys.Delete):
		return p.invoke(history.ActionDelete, e)
	case key.Matches(msg, p.keys.Export):
		return p.invoke(history.ActionExport, e)
	}
	return nil
}

// invoke performs one item action. The menu closes first so the owner sees
// a settled sidebar if it re-renders synchronously.
func (p *historyPanel) invoke(a history.Action, e *workspace.HistoryEntry) tea.Cmd {
	p.menuOpen = false
	switch a {
	case history.ActionCopy:
		p.actions.Copy(e.Question)
	case history.ActionEdit:
		return p.startEdit(e)
	case history.ActionRename:
		p.actions.Rename(e.ID)
	case history.ActionArchive:
		p.actions.Archive(e.ID)
	case history.ActionDelete:
		p.actions.Delete(e.ID)
	case history.ActionExport:
		p.actions.Export(e.ID)
	}
	return nil
}

// open toggles the detail of e and reports the selection.
func (p *historyPanel) open(e *workspace.HistoryEntry) {
	if p.hasExpanded && p.expandedID == e.ID {
		p.hasExpanded = false
	} else {
		p.expandedID = e.ID
		p.hasExpanded = true
	}
	if s, ok := p.actions.(Selector); ok {
		s.Select(e.ID)
	}
}

func (p *historyPanel) startEdit(e *workspace.HistoryEntry) tea.Cmd {
	p.editing = true
	p.editID = e.ID
	p.input.SetValue(e.Question)
	p.input.CursorEnd()
	return p.input.Focus()
}

func (p *historyPanel) stopEdit() {
	p.editing = false
	p.input.Blur()
	p.input.SetValue("")
}

// handleMouse expects coordinates relative to the panel's top border.
func (p *historyPanel) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.viewport.LineUp(3)
		return
	case tea.MouseButtonWheelDown:
		p.viewport.LineDown(3)
		return
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
	default:
		return
	}

	line, ok := p.ContentLine(msg.Y, p.viewport.YOffset)
	if !ok {
		return
	}
	x := msg.X - 1

	if p.hasMore() && line == p.moreLine {
		p.SetCursor(p.visible(), p.cursorLimit())
		p.loadMore()
		return
	}

	for i := 0; i < p.visible(); i++ {
		start, n := p.itemStarts[i], p.itemLines[i]
		if line < start || line >= start+n {
			continue
		}
		if p.editing {
			// clicking another item abandons the edit
			if p.entries[i].ID != p.editID {
				p.stopEdit()
			}
			return
		}

		e := &p.entries[i]
		rel := line - start
		wasCursor := p.Cursor() == i
		p.SetCursor(i, p.cursorLimit())

		if rel == 0 {
			if x >= p.ContentWidth()-history.CopyControlWidth && x < p.ContentWidth() {
				p.actions.Copy(e.Question)
				return
			}
			p.menuOpen = false
			p.open(e)
			return
		}
		if wasCursor {
			if opt := history.MenuLine(p.itemState(i), rel); opt >= 0 {
				p.invoke(history.Options[opt].Action, e)
			}
		}
		return
	}
}

func (p *historyPanel) itemState(i int) history.ItemState {
	e := &p.entries[i]
	onCursor := i == p.Cursor()
	st := history.ItemState{
		Selected: onCursor && p.IsFocused(),
		Expanded: p.hasExpanded && p.expandedID == e.ID,
		MenuOpen: onCursor && p.menuOpen,
	}
	if st.MenuOpen {
		st.MenuCursor = p.menuCursor
	}
	if p.editing && p.editID == e.ID {
		st.Editing = true
		st.EditView = p.input.View()
	}
	return st
}

func (p *historyPanel) refresh() {
	if !p.ready {
		return
	}
	p.viewport.SetContent(p.renderContent())
}

func (p *historyPanel) renderContent() string {
	p.itemStarts = p.itemStarts[:0]
	p.itemLines = p.itemLines[:0]
	p.moreLine = -1

	if len(p.entries) == 0 {
		return theme.DimmedStyle.Render(HistoryPlaceholder)
	}

	width := p.ContentWidth()
	var lines []string
	for i := 0; i < p.visible(); i++ {
		item := p.renderer.RenderItem(&p.entries[i], p.itemState(i), width)
		itemLines := strings.Split(item, "\n")
		p.itemStarts = append(p.itemStarts, len(lines))
		p.itemLines = append(p.itemLines, len(itemLines))
		lines = append(lines, itemLines...)
	}

	if p.hasMore() {
		p.moreLine = len(lines)
		label := fmt.Sprintf("%s (%d)", LoadMoreLabel, len(p.entries)-p.visible())
		if p.IsFocused() && p.Cursor() == p.visible() {
			lines = append(lines, theme.SelectedItemStyle.Render(label))
		} else {
			lines = append(lines, theme.ControlStyle.Render(label))
		}
	}

	return strings.Join(lines, "\n")
}

func (p *historyPanel) ensureCursorVisible() {
	if !p.ready {
		return
	}
	start, end := p.moreLine, p.moreLine+1
	if c := p.Cursor(); c < len(p.itemStarts) {
		start = p.itemStarts[c]
		end = start + p.itemLines[c]
	}
	if start >= 0 {
		panels.ScrollIntoView(&p.viewport, start, end)
	}
}

func (p *historyPanel) View() string {
	if !p.ready {
		return p.RenderFrame(p.renderContent())
	}
	return p.RenderFrame(p.viewport.View())
}

// History returns the entries currently shown.
func (m *Model) History() []workspace.HistoryEntry { return m.history.entries }

// ExpandedID returns the entry whose detail is open.
func (m *Model) ExpandedID() (int, bool) { return m.history.expandedID, m.history.hasExpanded }

// MenuOpen reports whether an item's options menu is showing.
func (m *Model) MenuOpen() bool { return m.history.menuOpen }

// Current returns the entry under the history cursor, or nil.
func (m *Model) Current() *workspace.HistoryEntry { return m.history.current() }

var _ panels.Panel = (*historyPanel)(nil)
