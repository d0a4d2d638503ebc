// Package history renders conversation history entries for the sidebar.
package history

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repolens/ui/theme"
	"github.com/gerunddev/repolens/workspace"
	"github.com/mattn/go-runewidth"
)

// Action names a per-item gesture.
type Action int

const (
	ActionCopy Action = iota
	ActionEdit
	ActionRename
	ActionArchive
	ActionDelete
	ActionExport
)

// Option is one entry of the item options menu.
type Option struct {
	Action Action
	Key    string
	Label  string
}

// Options is the menu order. Copy is a direct control on the item row and
// is not listed.
var Options = []Option{
	{Action: ActionEdit, Key: "e", Label: "Edit"},
	{Action: ActionRename, Key: "r", Label: "Rename"},
	{Action: ActionArchive, Key: "a", Label: "Archive"},
	{Action: ActionDelete, Key: "d", Label: "Delete"},
	{Action: ActionExport, Key: "x", Label: "Export"},
}

// ItemState is the display state the sidebar passes to a renderer.
type ItemState struct {
	Selected   bool
	Expanded   bool
	Editing    bool
	EditView   string
	MenuOpen   bool
	MenuCursor int
}

// ItemRenderer is the default item look. Layout, top to bottom: the title
// row, the options menu when open, then the detail block when expanded.
type ItemRenderer struct{}

const (
	itemGlyph = "💬"
	editGlyph = "✎"
	copyGlyph = "⧉"
)

// RenderItem returns one or more lines no wider than width.
func (ItemRenderer) RenderItem(e *workspace.HistoryEntry, st ItemState, width int) string {
	var lines []string
	lines = append(lines, titleRow(e, st, width))

	if st.MenuOpen {
		for i, opt := range Options {
			line := "    " + opt.Key + " " + opt.Label
			if i == st.MenuCursor {
				lines = append(lines, theme.SelectedItemStyle.Render(fill(line, width)))
			} else {
				lines = append(lines, theme.NormalItemStyle.Render(clip(line, width)))
			}
		}
	}

	if st.Expanded {
		lines = append(lines, detailRows(e, width)...)
	}

	return strings.Join(lines, "\n")
}

// MenuLine returns the menu option index shown on line, or -1. line is
// relative to the first line of the item.
func MenuLine(st ItemState, line int) int {
	if !st.MenuOpen {
		return -1
	}
	idx := line - 1
	if idx < 0 || idx >= len(Options) {
		return -1
	}
	return idx
}

// CopyControlWidth is the width of the copy control at the right of the
// title row.
const CopyControlWidth = 3

func titleRow(e *workspace.HistoryEntry, st ItemState, width int) string {
	if st.Editing {
		return clip(editGlyph+" "+st.EditView, width)
	}

	control := " " + copyGlyph + " "
	textWidth := max(0, width-CopyControlWidth)
	title := e.DisplayTitle()
	if e.Archived {
		title += " (archived)"
	}
	text := fill(itemGlyph+" "+runewidth.Truncate(title, max(0, textWidth-3), "…"), textWidth)

	switch {
	case st.Selected:
		return theme.SelectedItemStyle.Render(text) + theme.ControlStyle.Render(control)
	case e.Archived:
		return theme.ArchivedStyle.Render(text) + theme.DimmedStyle.Render(control)
	default:
		return theme.NormalItemStyle.Render(text) + theme.DimmedStyle.Render(control)
	}
}

func detailRows(e *workspace.HistoryEntry, width int) []string {
	bar := theme.DimmedStyle.Render("│ ")
	inner := max(0, width-2)
	label := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorDimWhite)

	row := func(name, value string) string {
		prefix := name + ": "
		value = strings.Join(strings.Fields(value), " ")
		return bar + label.Render(prefix) + theme.DimmedStyle.Render(
			runewidth.Truncate(value, max(0, inner-runewidth.StringWidth(prefix)), "…"))
	}

	rows := []string{
		row("Question", e.Question),
		row("Answer", e.Answer),
		row("Repo", e.Repository),
		row("Branch", e.Branch),
	}
	if !e.CreatedAt.IsZero() {
		rows = append(rows, row("Asked", e.CreatedAt.Format("2006-01-02 15:04")))
	}
	return rows
}

// clip truncates s to width cells.
func clip(s string, width int) string {
	return runewidth.Truncate(s, width, "")
}

// fill truncates s to width cells and pads the rest with spaces.
func fill(s string, width int) string {
	return runewidth.FillRight(clip(s, width), width)
}
