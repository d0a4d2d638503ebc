// Package panels provides the framed, focusable building blocks of the
// layout.
package panels

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/repolens/ui/borders"
)

// Panel is a framed region that can take keyboard focus.
type Panel interface {
	tea.Model
	Title() string
	SetFocused(bool)
	IsFocused() bool
	SetSize(width, height int)
}

// BasePanel holds the frame geometry, focus and the row cursor shared by the
// list panels. Mouse coordinates handed to panels are relative to the
// frame's top-left corner.
type BasePanel struct {
	title   string
	focused bool
	width   int
	height  int
	cursor  int
}

// NewBasePanel creates a panel frame with a border title.
func NewBasePanel(title string) BasePanel {
	return BasePanel{title: title}
}

func (b *BasePanel) Title() string { return b.title }

// SetTitle changes the border title, e.g. to refresh a count.
func (b *BasePanel) SetTitle(title string) { b.title = title }

func (b *BasePanel) SetFocused(focused bool) { b.focused = focused }

func (b *BasePanel) IsFocused() bool { return b.focused }

func (b *BasePanel) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// Height is the outer height including the border.
func (b *BasePanel) Height() int { return b.height }

// ContentWidth is the width inside the border.
func (b *BasePanel) ContentWidth() int { return max(0, b.width-2) }

// ContentHeight is the height inside the border. The title sits in the top
// border line.
func (b *BasePanel) ContentHeight() int { return max(0, b.height-2) }

// ContentLine maps a frame-relative y to a line of the scrolled content.
// ok is false for the border rows.
func (b *BasePanel) ContentLine(y, yOffset int) (line int, ok bool) {
	row := y - 1
	if row < 0 || row >= b.ContentHeight() {
		return 0, false
	}
	return row + yOffset, true
}

func (b *BasePanel) Cursor() int { return b.cursor }

// SetCursor puts the cursor on row c, kept within [0, rows).
func (b *BasePanel) SetCursor(c, rows int) {
	b.cursor = max(0, min(c, rows-1))
}

// MoveCursor moves the cursor by delta rows, kept within [0, rows).
func (b *BasePanel) MoveCursor(delta, rows int) {
	b.SetCursor(b.cursor+delta, rows)
}

// RenderFrame draws content inside the titled border.
func (b *BasePanel) RenderFrame(content string) string {
	return borders.RenderTitledBorder(content, b.title, b.width, b.height, b.focused)
}

// RenderScrollFrame draws the viewport inside the border and appends the
// scroll position to the title while the content overflows.
func (b *BasePanel) RenderScrollFrame(vp viewport.Model) string {
	title := b.title
	if vp.TotalLineCount() > vp.Height {
		title = fmt.Sprintf("%s (%d%%)", title, int(vp.ScrollPercent()*100))
	}
	return borders.RenderTitledBorder(vp.View(), title, b.width, b.height, b.focused)
}

// ScrollIntoView adjusts the viewport so lines [start, end) are visible,
// preferring start when the range is taller than the viewport.
func ScrollIntoView(vp *viewport.Model, start, end int) {
	switch {
	case vp.Height <= 0:
	case start < vp.YOffset:
		vp.SetYOffset(start)
	case end > vp.YOffset+vp.Height:
		vp.SetYOffset(min(start, end-vp.Height))
	}
}
