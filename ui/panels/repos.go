package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repolens/ui/messages"
	"github.com/gerunddev/repolens/ui/theme"
	"github.com/mattn/go-runewidth"
)

const (
	// ReposTitle is the border title of the repository list.
	ReposTitle = "1 Repositories"
	// AllRepositories labels the row that clears the repository filter.
	AllRepositories = "All repositories"
)

// RepoItem is one repository and the number of conversations about it.
type RepoItem struct {
	Name  string
	Count int
}

// ReposPanel lists the repositories found in the history and lets the user
// narrow the history to one of them.
type ReposPanel struct {
	BasePanel
	items    []RepoItem
	active   string
	total    int
	viewport viewport.Model
	ready    bool
}

// NewReposPanel creates an empty repository panel.
func NewReposPanel() *ReposPanel {
	return &ReposPanel{
		BasePanel: NewBasePanel(ReposTitle),
	}
}

// SetRepos replaces the listed repositories. total is the count shown on
// the "all" row and active is the current filter.
func (p *ReposPanel) SetRepos(items []RepoItem, total int, active string) {
	p.items = items
	p.total = total
	p.active = active
	p.SetCursor(p.Cursor(), p.rowCount())
	p.refresh()
}

// Active returns the repository currently filtered on.
func (p *ReposPanel) Active() string {
	return p.active
}

func (p *ReposPanel) rowCount() int {
	return len(p.items) + 1
}

// rowName maps row i to a repository name; row 0 is "all".
func (p *ReposPanel) rowName(i int) string {
	if i <= 0 || i > len(p.items) {
		return ""
	}
	return p.items[i-1].Name
}

func (p *ReposPanel) Init() tea.Cmd {
	return nil
}

func (p *ReposPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if msg.Action == tea.MouseActionPress {
				if row, ok := p.ContentLine(msg.Y, p.viewport.YOffset); ok && row < p.rowCount() {
					p.SetCursor(row, p.rowCount())
					cmd = p.choose()
				}
			}
		case tea.MouseButtonWheelUp:
			p.viewport.LineUp(3)
		case tea.MouseButtonWheelDown:
			p.viewport.LineDown(3)
		}

	case tea.KeyMsg:
		if !p.IsFocused() {
			return p, nil
		}
		switch msg.String() {
		case "up", "k":
			p.MoveCursor(-1, p.rowCount())
			ScrollIntoView(&p.viewport, p.Cursor(), p.Cursor()+1)
		case "down", "j":
			p.MoveCursor(1, p.rowCount())
			ScrollIntoView(&p.viewport, p.Cursor(), p.Cursor()+1)
		case "g", "home":
			p.SetCursor(0, p.rowCount())
			p.viewport.GotoTop()
		case "G", "end":
			p.SetCursor(p.rowCount()-1, p.rowCount())
			p.viewport.GotoBottom()
		case "enter", " ":
			cmd = p.choose()
		}
	}

	p.refresh()
	return p, cmd
}

func (p *ReposPanel) choose() tea.Cmd {
	name := p.rowName(p.Cursor())
	p.active = name
	return func() tea.Msg {
		return messages.RepoFilterMsg{Repository: name}
	}
}

func (p *ReposPanel) refresh() {
	if p.ready {
		p.viewport.SetContent(p.renderContent())
	}
}

func (p *ReposPanel) View() string {
	if !p.ready {
		return p.RenderFrame("Loading...")
	}
	return p.RenderFrame(p.viewport.View())
}

// SetSize initializes or resizes the viewport
func (p *ReposPanel) SetSize(width, height int) {
	p.BasePanel.SetSize(width, height)

	if !p.ready {
		p.viewport = viewport.New(p.ContentWidth(), p.ContentHeight())
		p.ready = true
	} else {
		p.viewport.Width = p.ContentWidth()
		p.viewport.Height = p.ContentHeight()
	}
	p.viewport.SetContent(p.renderContent())
}

func (p *ReposPanel) renderContent() string {
	width := p.ContentWidth()
	lines := make([]string, 0, p.rowCount())

	for i := 0; i < p.rowCount(); i++ {
		name, count := AllRepositories, p.total
		if i > 0 {
			name, count = p.items[i-1].Name, p.items[i-1].Count
		}

		indicator := "  "
		if p.rowName(i) == p.active {
			indicator = "● "
		}
		badge := fmt.Sprintf(" [%d]", count)
		label := runewidth.Truncate(name, max(1, width-runewidth.StringWidth(indicator)-len(badge)), "…")

		style := theme.NormalItemStyle
		if i == p.Cursor() && p.IsFocused() {
			style = theme.SelectedItemStyle
		}
		lines = append(lines, indicator+style.Render(label)+theme.DimmedStyle.Render(badge))
	}

	return strings.Join(lines, "\n")
}

// Ensure ReposPanel implements Panel
var _ Panel = (*ReposPanel)(nil)
