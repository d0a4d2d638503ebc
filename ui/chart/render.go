package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repolens/ui/theme"
	"github.com/mattn/go-runewidth"
)

const (
	barGlyph    = "█"
	legendGlyph = "■"
	maxBarWidth = 8
)

// Render draws c in a width x height cell area. With no records it draws
// only the axes and legend. The value axis starts at 0, so bars for
// negative values stay empty.
//
// No line is wider than width. Bars shrink to one cell without gaps when
// they do not fit at full size, and bars that still do not fit are dropped
// from the right and counted by a "+N more" marker on the label row.
func Render(c Chart, width, height int) string {
	bars := c.Bars()
	maxVal := MaxValue(bars)

	var lines []string
	if c.Title != "" {
		lines = append(lines, theme.TitleStyle.Render(runewidth.Truncate(c.Title, width, "…")))
	}

	// title, x axis, labels, legend
	reserved := len(lines) + 3
	plotHeight := max(1, height-reserved)

	topTick := formatValue(maxVal)
	axisW := max(runewidth.StringWidth(topTick), 1)
	gutter := axisW + 2
	plotWidth := max(0, width-gutter)

	lay := layoutBars(len(bars), plotWidth)
	shown := bars[:lay.shown]

	heights := make([]int, len(shown))
	for i, b := range shown {
		heights[i] = barHeight(b.Value, maxVal, plotHeight)
	}

	for row := plotHeight - 1; row >= 0; row-- {
		var sb strings.Builder
		if row == plotHeight-1 {
			sb.WriteString(padLeft(topTick, axisW) + " ┤")
		} else {
			sb.WriteString(strings.Repeat(" ", axisW) + " │")
		}
		for i, b := range shown {
			if heights[i] > row {
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render(strings.Repeat(barGlyph, lay.barW)))
			} else {
				sb.WriteString(strings.Repeat(" ", lay.barW))
			}
			sb.WriteString(strings.Repeat(" ", lay.slotW-lay.barW))
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}

	lines = append(lines, padLeft("0", axisW)+" ┼"+strings.Repeat("─", plotWidth))

	var labels strings.Builder
	labels.WriteString(strings.Repeat(" ", gutter))
	for _, b := range shown {
		labels.WriteString(runewidth.FillRight(runewidth.Truncate(b.Label, lay.labelW(), ""), lay.slotW))
	}
	if hidden := len(bars) - lay.shown; hidden > 0 {
		labels.WriteString(runewidth.Truncate(moreMarker(hidden), plotWidth-lay.shown*lay.slotW, ""))
	}
	lines = append(lines, strings.TrimRight(labels.String(), " "))

	legendText := runewidth.Truncate(c.Legend(), max(0, plotWidth-2), "…")
	legend := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAt(0))).Render(legendGlyph) + " " + legendText
	if plotWidth < 2 {
		legend = ""
	}
	lines = append(lines, strings.TrimRight(strings.Repeat(" ", gutter)+legend, " "))

	return strings.Join(lines, "\n")
}

// barLayout places bars in the plot area.
type barLayout struct {
	shown int
	slotW int
	barW  int
}

// labelW is the label width of one slot. Full size slots keep a one cell
// gap after the label.
func (l barLayout) labelW() int {
	if l.slotW > 1 {
		return l.slotW - 1
	}
	return l.slotW
}

// layoutBars fits n bars into plotWidth cells. Full size slots are a bar
// plus a one cell gap. When those do not fit every bar is one cell wide
// with no gaps, and when even that overflows, the trailing bars are hidden
// behind a "+N more" marker.
func layoutBars(n, plotWidth int) barLayout {
	switch {
	case n == 0:
		return barLayout{}
	case n*2 <= plotWidth:
		slot := min(maxBarWidth+1, plotWidth/n)
		return barLayout{shown: n, slotW: slot, barW: slot - 1}
	case n <= plotWidth:
		return barLayout{shown: n, slotW: 1, barW: 1}
	}
	shown := plotWidth
	for shown > 0 && shown+runewidth.StringWidth(moreMarker(n-shown)) > plotWidth {
		shown--
	}
	return barLayout{shown: shown, slotW: 1, barW: 1}
}

func moreMarker(hidden int) string {
	return " +" + strconv.Itoa(hidden) + " more"
}

// barHeight scales v into [0, plotHeight]. Any positive value gets at least
// one cell.
func barHeight(v, maxVal float64, plotHeight int) int {
	if v <= 0 || maxVal <= 0 {
		return 0
	}
	h := int(math.Round(v / maxVal * float64(plotHeight)))
	return max(1, min(h, plotHeight))
}

func padLeft(s string, width int) string {
	if pad := width - runewidth.StringWidth(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}
