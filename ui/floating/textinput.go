package floating

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repolens/ui/theme"
)

// TitleLimit is the longest title the rename dialog accepts.
const TitleLimit = 200

// TextInputOverlay edits a single line, e.g. a conversation title.
type TextInputOverlay struct {
	window
	input textinput.Model
	hint  string
}

// NewTextInputOverlay creates a dialog editing initialValue. placeholder is
// shown while the field is empty.
func NewTextInputOverlay(title, placeholder, initialValue string) *TextInputOverlay {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = TitleLimit
	ti.SetValue(initialValue)
	ti.CursorEnd()
	ti.Focus()

	return &TextInputOverlay{
		window: window{title: title, maxWidth: theme.FloatingMaxWidth},
		input:  ti,
		hint:   "enter save • esc cancel • empty restores the question",
	}
}

func (t *TextInputOverlay) Init() tea.Cmd {
	return textinput.Blink
}

func (t *TextInputOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

func (t *TextInputOverlay) View() string {
	counter := fmt.Sprintf("%d/%d", len([]rune(t.input.Value())), TitleLimit)
	body := []string{
		bodyIndent + t.input.View(),
		"",
		bodyIndent + theme.HelpDescStyle.Render(counter),
	}
	body = append(body, t.paragraph(t.hint, theme.HelpDescStyle)...)
	return t.render(body)
}

func (t *TextInputOverlay) SetSize(width, height int) {
	t.window.SetSize(width, height)
	// room for the prompt and cursor
	t.input.Width = max(1, t.textWidth()-3)
}

// Value returns the current text.
func (t *TextInputOverlay) Value() string {
	return t.input.Value()
}
