package floating

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repolens/ui/theme"
)

const infoMaxWidth = 60

// InfoOverlay reports the outcome of an action. The owner dismisses it on
// any key or click.
type InfoOverlay struct {
	window
	message string
	isError bool
}

// NewInfoOverlay creates a dialog showing message.
func NewInfoOverlay(title, message string) *InfoOverlay {
	return &InfoOverlay{
		window:  window{title: title, maxWidth: infoMaxWidth},
		message: message,
	}
}

// NewErrorOverlay creates a dialog reporting err.
func NewErrorOverlay(title string, err error) *InfoOverlay {
	o := NewInfoOverlay(title, err.Error())
	o.isError = true
	return o
}

// Message returns the text shown in the dialog.
func (i *InfoOverlay) Message() string { return i.message }

// IsError reports whether the dialog shows an error.
func (i *InfoOverlay) IsError() bool { return i.isError }

func (i *InfoOverlay) Init() tea.Cmd {
	return nil
}

func (i *InfoOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return i, nil
}

func (i *InfoOverlay) View() string {
	style := theme.NormalItemStyle
	if i.isError {
		style = theme.ErrorStyle
	}
	body := i.paragraph(i.message, style)
	body = append(body, "", i.buttonRow(0, "OK"))
	return i.render(body)
}
