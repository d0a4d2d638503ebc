package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/gerunddev/repolens/ui/chart"
	"github.com/gerunddev/repolens/ui/theme"
	"github.com/gerunddev/repolens/workspace"
)

const (
	// AnswerTitle is the border title of the main panel.
	AnswerTitle = "0 Answer"
	// AnswerPlaceholder is shown when no entry is selected.
	AnswerPlaceholder = "Select a conversation from the history"

	chartHeight = 14
)

// AnswerPanel shows the selected history entry: question, markdown answer
// and the attached chart, if any.
type AnswerPanel struct {
	BasePanel
	viewport viewport.Model
	entry    *workspace.HistoryEntry
	md       *glamour.TermRenderer
	mdWidth  int
	ready    bool
}

// NewAnswerPanel creates an empty answer panel.
func NewAnswerPanel() *AnswerPanel {
	return &AnswerPanel{
		BasePanel: NewBasePanel(AnswerTitle),
	}
}

// SetEntry shows a copy of e. A nil entry clears the panel.
func (a *AnswerPanel) SetEntry(e *workspace.HistoryEntry) {
	if e == nil {
		a.entry = nil
	} else {
		cp := *e
		a.entry = &cp
	}
	if a.ready {
		a.viewport.SetContent(a.renderContent())
		a.viewport.GotoTop()
	}
}

// Entry returns the entry being shown, or nil.
func (a *AnswerPanel) Entry() *workspace.HistoryEntry {
	return a.entry
}

// Chart returns the chart of the shown entry and whether there is one.
func (a *AnswerPanel) Chart() (chart.Chart, bool) {
	if a.entry == nil || a.entry.Chart == nil {
		return chart.Chart{}, false
	}
	return chart.FromSpec(a.entry.Chart), true
}

func (a *AnswerPanel) Init() tea.Cmd {
	return nil
}

func (a *AnswerPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.viewport.LineUp(3)
		case tea.MouseButtonWheelDown:
			a.viewport.LineDown(3)
		}
		return a, nil

	case tea.KeyMsg:
		if !a.IsFocused() {
			return a, nil
		}
		switch msg.String() {
		case "up", "k":
			a.viewport.LineUp(1)
		case "down", "j":
			a.viewport.LineDown(1)
		case "pgup", "ctrl+u":
			a.viewport.HalfViewUp()
		case "pgdown", "ctrl+d":
			a.viewport.HalfViewDown()
		case "g", "home":
			a.viewport.GotoTop()
		case "G", "end":
			a.viewport.GotoBottom()
		}
		return a, nil
	}

	a.viewport, cmd = a.viewport.Update(msg)
	return a, cmd
}

func (a *AnswerPanel) View() string {
	if !a.ready {
		return a.RenderFrame("Initializing...")
	}
	return a.RenderScrollFrame(a.viewport)
}

// SetSize overrides BasePanel.SetSize to also resize viewport
func (a *AnswerPanel) SetSize(width, height int) {
	a.BasePanel.SetSize(width, height)

	contentWidth := a.ContentWidth()
	contentHeight := a.ContentHeight()

	if !a.ready {
		a.viewport = viewport.New(contentWidth, contentHeight)
		a.ready = true
	} else {
		a.viewport.Width = contentWidth
		a.viewport.Height = contentHeight
	}
	a.viewport.SetContent(a.renderContent())
}

func (a *AnswerPanel) renderContent() string {
	width := max(1, a.ContentWidth()-1)
	if a.entry == nil {
		return theme.DimmedStyle.Render(AnswerPlaceholder)
	}
	e := a.entry

	var sections []string
	sections = append(sections, theme.TitleStyle.MaxWidth(width).Render(e.DisplayTitle()))

	meta := e.Repository
	if meta != "" {
		branch := e.Branch
		if branch == "" {
			branch = workspace.DefaultBranch
		}
		meta = theme.RepoNameStyle.Render(meta) + " " + theme.BranchStyle.Render("⎇ "+branch)
	}
	if !e.CreatedAt.IsZero() {
		if meta != "" {
			meta += "  "
		}
		meta += theme.TimestampStyle.Render(e.CreatedAt.Format("2006-01-02 15:04"))
	}
	if e.Archived {
		meta += " " + theme.ArchivedStyle.Render("(archived)")
	}
	if meta != "" {
		sections = append(sections, meta)
	}

	sections = append(sections, "", theme.QuestionStyle.Render("Question"), strings.TrimSpace(e.Question), "")
	sections = append(sections, theme.QuestionStyle.Render("Answer"))

	answer := strings.TrimSpace(e.Answer)
	if answer == "" {
		sections = append(sections, theme.DimmedStyle.Render("No answer recorded."))
	} else {
		sections = append(sections, a.renderMarkdown(answer, width))
	}

	if e.Chart != nil {
		sections = append(sections, "", chart.Render(chart.FromSpec(e.Chart), width, chartHeight))
	}

	return strings.Join(sections, "\n")
}

func (a *AnswerPanel) renderMarkdown(text string, width int) string {
	if a.md == nil || a.mdWidth != width {
		md, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		a.md = md
		a.mdWidth = width
	}

	rendered, err := a.md.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(rendered, "\n")
}

// Ensure AnswerPanel implements Panel
var _ Panel = (*AnswerPanel)(nil)
