package floating

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repolens/ui/borders"
	"github.com/gerunddev/repolens/ui/theme"
)

// HelpTitle is the border title of the help window.
const HelpTitle = "Help"

type helpTopic struct {
	title string
	lines []string
}

var helpTopics = []helpTopic{
	{"Layout", []string{
		"0 answer, 1 repositories, 2 files, 3 history",
		"tab and shift+tab cycle through the visible panels",
		"ctrl+b or [«] hides the sidebar, [+] starts a new chat",
	}},
	{"History", []string{
		"enter shows a conversation and toggles its details",
		"c copy, e edit, r rename, a archive, d delete, x export",
		"m opens the options menu for the item under the cursor",
		"[ and ] step through the visible conversations",
		"click ⧉ on an item to copy its question",
	}},
	{"Filters", []string{
		"enter on a repository narrows the history to it",
		"A shows or hides archived conversations",
	}},
	{"Snapshot", []string{
		"ctrl+r reloads the snapshot file, s saves the shown chart as SVG",
	}},
}

var helpScrollKeys = struct {
	Up, Down, HalfUp, HalfDown, Top, Bottom key.Binding
}{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	HalfUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
	HalfDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
	Top:      key.NewBinding(key.WithKeys("g", "home")),
	Bottom:   key.NewBinding(key.WithKeys("G", "end")),
}

// HelpOverlay lists every key binding plus a short guide. It fills the
// content area and scrolls when the guide is taller.
type HelpOverlay struct {
	viewport viewport.Model
	help     help.Model
	keymaps  []help.KeyMap
	width    int
	height   int
	ready    bool
}

// NewHelpOverlay creates a help window listing every binding of keymaps.
func NewHelpOverlay(keymaps ...help.KeyMap) *HelpOverlay {
	return &HelpOverlay{
		help:    help.New(),
		keymaps: keymaps,
	}
}

func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			h.viewport.LineUp(3)
		case tea.MouseButtonWheelDown:
			h.viewport.LineDown(3)
		}

	case tea.KeyMsg:
		k := helpScrollKeys
		switch {
		case key.Matches(msg, k.Up):
			h.viewport.LineUp(1)
		case key.Matches(msg, k.Down):
			h.viewport.LineDown(1)
		case key.Matches(msg, k.HalfUp):
			h.viewport.HalfViewUp()
		case key.Matches(msg, k.HalfDown):
			h.viewport.HalfViewDown()
		case key.Matches(msg, k.Top):
			h.viewport.GotoTop()
		case key.Matches(msg, k.Bottom):
			h.viewport.GotoBottom()
		}
	}
	return h, nil
}

func (h *HelpOverlay) View() string {
	content := "Initializing..."
	if h.ready {
		content = h.viewport.View()
	}
	return borders.RenderTitledBorder(content, HelpTitle, h.width, h.height, true)
}

func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height

	w, ht := max(0, width-2), max(0, height-2)
	if !h.ready {
		h.viewport = viewport.New(w, ht)
		h.ready = true
	} else {
		h.viewport.Width = w
		h.viewport.Height = ht
	}
	h.help.Width = w
	h.viewport.SetContent(h.renderHelp())
}

func (h *HelpOverlay) renderHelp() string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorAccent)
	topic := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorYellow)
	body := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	var b strings.Builder
	b.WriteString(heading.Render("repolens"))
	b.WriteString("\n")
	b.WriteString(body.Render("Browse a repository snapshot and past questions about it"))
	b.WriteString("\n\n")

	for _, km := range h.keymaps {
		b.WriteString(h.help.FullHelpView(km.FullHelp()))
		b.WriteString("\n\n")
	}

	for _, t := range helpTopics {
		b.WriteString(topic.Render(t.title))
		b.WriteString("\n")
		for _, line := range t.lines {
			b.WriteString(body.Render("• " + line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(body.Render("esc or ? closes this window"))
	return b.String()
}
