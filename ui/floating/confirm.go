// Package floating provides the centered overlay windows drawn on top of
// the main layout.
package floating

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repolens/ui/theme"
)

const confirmMaxWidth = 60

const (
	choiceYes = iota
	choiceNo
)

var confirmKeys = struct {
	Yes, No, Toggle key.Binding
}{
	Yes:    key.NewBinding(key.WithKeys("y", "Y", "left", "h")),
	No:     key.NewBinding(key.WithKeys("n", "N", "right", "l")),
	Toggle: key.NewBinding(key.WithKeys("tab", "shift+tab")),
}

// ConfirmOverlay asks a yes/no question. It starts on No, so a stray enter
// never confirms a deletion. The owner reads Confirmed on enter.
type ConfirmOverlay struct {
	window
	message string
	choice  int
}

// NewConfirmOverlay creates a dialog asking message.
func NewConfirmOverlay(title, message string) *ConfirmOverlay {
	return &ConfirmOverlay{
		window:  window{title: title, maxWidth: confirmMaxWidth},
		message: message,
		choice:  choiceNo,
	}
}

func (c *ConfirmOverlay) Init() tea.Cmd {
	return nil
}

func (c *ConfirmOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, confirmKeys.Yes):
			c.choice = choiceYes
		case key.Matches(msg, confirmKeys.No):
			c.choice = choiceNo
		case key.Matches(msg, confirmKeys.Toggle):
			c.choice = 1 - c.choice
		}
	}
	return c, nil
}

func (c *ConfirmOverlay) View() string {
	body := c.paragraph(c.message, theme.NormalItemStyle)
	body = append(body, "", c.buttonRow(c.choice, "Yes", "No"))
	return c.render(body)
}

// Confirmed reports whether Yes is selected.
func (c *ConfirmOverlay) Confirmed() bool {
	return c.choice == choiceYes
}
