// Package borders draws rounded frames with a title embedded in the top edge.
package borders

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repolens/ui/theme"
)

// Rounded border pieces.
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
)

// RenderTitledBorder frames content in a width x height box with the title
// in the top border. Content is clipped and padded to fit the interior.
func RenderTitledBorder(content, title string, width, height int, focused bool) string {
	if width < 2 || height < 2 {
		return ""
	}

	color := theme.ColorDimWhite
	titleStyle := theme.TitleStyle
	if focused {
		color = theme.ColorAccent
		titleStyle = theme.FocusedTitleStyle
	}
	edge := lipgloss.NewStyle().Foreground(color)

	innerWidth := width - 2
	innerHeight := height - 2

	lines := make([]string, 0, height)
	lines = append(lines, topBorder(title, width, edge, titleStyle))

	contentLines := strings.Split(content, "\n")
	for i := 0; i < innerHeight; i++ {
		line := ""
		if i < len(contentLines) {
			line = fit(contentLines[i], innerWidth)
		} else {
			line = strings.Repeat(" ", innerWidth)
		}
		lines = append(lines, edge.Render(Vertical)+line+edge.Render(Vertical))
	}

	lines = append(lines, edge.Render(BottomLeft+strings.Repeat(Horizontal, innerWidth)+BottomRight))
	return strings.Join(lines, "\n")
}

// RenderFloating draws a centered window of at most maxWidth columns inside a
// screen of screenWidth x screenHeight, with the title in the top border.
func RenderFloating(content, title string, maxWidth, windowHeight, screenWidth, screenHeight int) string {
	windowWidth := min(maxWidth, screenWidth-4)
	if windowWidth < 4 {
		windowWidth = 4
	}

	x := max(0, (screenWidth-windowWidth)/2)
	y := max(0, (screenHeight-windowHeight)/2)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorAccent).
		Width(windowWidth - 2).
		Height(windowHeight - 2).
		Render(content)

	lines := strings.Split(bordered, "\n")
	if len(lines) > 0 {
		edge := lipgloss.NewStyle().Foreground(theme.ColorAccent)
		lines[0] = topBorder(title, windowWidth, edge, theme.FloatingTitleStyle)
	}

	paddingLeft := strings.Repeat(" ", x)
	for i := range lines {
		lines[i] = paddingLeft + lines[i]
	}

	return strings.Repeat("\n", y) + strings.Join(lines, "\n")
}

func topBorder(title string, width int, edge, titleStyle lipgloss.Style) string {
	if title == "" {
		return edge.Render(TopLeft + strings.Repeat(Horizontal, max(0, width-2)) + TopRight)
	}

	styledTitle := titleStyle.Render(" " + title + " ")
	if lipgloss.Width(styledTitle) > width-3 {
		styledTitle = lipgloss.NewStyle().MaxWidth(max(0, width-3)).Render(styledTitle)
	}
	remaining := max(0, width-3-lipgloss.Width(styledTitle))

	return edge.Render(TopLeft+Horizontal) +
		styledTitle +
		edge.Render(strings.Repeat(Horizontal, remaining)+TopRight)
}

// fit clips s to width cells and pads it with spaces to exactly width.
func fit(s string, width int) string {
	if lipgloss.Width(s) > width {
		s = lipgloss.NewStyle().MaxWidth(width).Render(s)
	}
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
