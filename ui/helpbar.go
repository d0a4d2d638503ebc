package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repolens/ui/theme"
)

// HelpBarContext captures the current UI state for help bar rendering
type HelpBarContext struct {
	Focus        Focus
	Editing      bool // inline question edit in progress
	MenuOpen     bool // options menu of a history item is showing
	HasChart     bool // the answer panel shows a chart
	ShowArchived bool
}

// HelpHint represents a single hint (key + description)
type HelpHint struct {
	Key  string
	Desc string
}

// Format renders a hint as "key desc" in uniform dim color
func (h HelpHint) Format() string {
	return theme.HelpDescStyle.Render(h.Key + " " + h.Desc)
}

// getActionHints returns context-specific action hints (left section)
func getActionHints(ctx HelpBarContext) []HelpHint {
	switch ctx.Focus {
	case FocusHistory:
		switch {
		case ctx.Editing:
			return []HelpHint{
				{Key: "↵", Desc: "save"},
				{Key: "esc", Desc: "cancel"},
			}
		case ctx.MenuOpen:
			return []HelpHint{
				{Key: "↵", Desc: "choose"},
				{Key: "esc", Desc: "close"},
			}
		}
		return []HelpHint{
			{Key: "c", Desc: "copy"},
			{Key: "e", Desc: "edit"},
			{Key: "r", Desc: "rename"},
			{Key: "a", Desc: "archive"},
			{Key: "d", Desc: "delete"},
			{Key: "x", Desc: "export"},
		}
	case FocusAnswer:
		if ctx.HasChart {
			return []HelpHint{{Key: "s", Desc: "save chart"}}
		}
	case FocusRepos:
		archived := "show archived"
		if ctx.ShowArchived {
			archived = "hide archived"
		}
		return []HelpHint{
			{Key: "↵", Desc: "filter"},
			{Key: "A", Desc: archived},
		}
	case FocusFiles:
		return []HelpHint{{Key: "↵", Desc: "toggle"}, {Key: "+/-", Desc: "all"}}
	}
	return nil
}

// getNavigationHints returns context-specific navigation hints (center section)
func getNavigationHints(ctx HelpBarContext) []HelpHint {
	switch ctx.Focus {
	case FocusAnswer:
		return []HelpHint{{Key: "↑↓", Desc: "scroll"}}
	case FocusRepos, FocusFiles:
		return []HelpHint{{Key: "↑↓", Desc: "select"}}
	case FocusHistory:
		if ctx.Editing {
			return nil
		}
		return []HelpHint{
			{Key: "↑↓", Desc: "select"},
			{Key: "↵", Desc: "open"},
			{Key: "m", Desc: "menu"},
		}
	}
	return nil
}

// getAlwaysHints returns hints that are always shown (right section)
func getAlwaysHints() []HelpHint {
	return []HelpHint{
		{Key: "tab", Desc: "↻"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
}

// formatHints joins hints with double spaces
func formatHints(hints []HelpHint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = h.Format()
	}
	return strings.Join(parts, "  ")
}

// RenderContextualHelpBar renders the three-section help bar
func RenderContextualHelpBar(ctx HelpBarContext, width int) string {
	leftSection := formatHints(getActionHints(ctx))
	centerSection := formatHints(getNavigationHints(ctx))
	rightSection := formatHints(getAlwaysHints())

	// lipgloss.Width ignores ANSI sequences
	leftWidth := lipgloss.Width(leftSection)
	centerWidth := lipgloss.Width(centerSection)
	rightWidth := lipgloss.Width(rightSection)

	inner := max(0, width-theme.HelpBarStyle.GetHorizontalPadding())
	availableSpace := inner - (leftWidth + centerWidth + rightWidth)
	if availableSpace < 6 {
		return theme.HelpBarStyle.Width(width).Render(
			leftSection + "  " + centerSection + "  " + rightSection,
		)
	}

	// Layout: [left].....[center].....[right]
	centerStart := inner/2 - centerWidth/2
	leftToCenter := max(centerStart-leftWidth, 2)

	if leftWidth == 0 {
		leftToCenter = max(centerStart, 0)
	}

	// measured from where center actually lands so right stays flush
	centerEnd := leftWidth + leftToCenter + centerWidth
	centerToRight := max(inner-rightWidth-centerEnd, 2)

	bar := leftSection + strings.Repeat(" ", leftToCenter) + centerSection + strings.Repeat(" ", centerToRight) + rightSection

	return theme.HelpBarStyle.Width(width).Render(bar)
}
