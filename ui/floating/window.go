package floating

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repolens/ui/borders"
	"github.com/gerunddev/repolens/ui/theme"
	"github.com/mattn/go-runewidth"
)

// bodyIndent is the left margin of text inside a window.
const bodyIndent = "  "

// window is the centered frame shared by the dialogs. Its height follows
// the number of body lines.
type window struct {
	title    string
	maxWidth int
	screenW  int
	screenH  int
	ready    bool
}

func (w *window) SetSize(width, height int) {
	w.screenW = width
	w.screenH = height
	w.ready = true
}

// textWidth is the width available to indented body text.
func (w *window) textWidth() int {
	outer := min(w.maxWidth, w.screenW-4)
	return max(1, outer-2-2*len(bodyIndent))
}

func (w *window) render(body []string) string {
	if !w.ready {
		body = []string{"Initializing..."}
	}
	// blank line above and below the body, plus the border
	height := len(body) + 4
	height = max(theme.FloatingMinHeight, height)
	if w.screenH > 2 {
		height = min(height, w.screenH-2)
	}

	lines := make([]string, 0, len(body)+2)
	lines = append(lines, "")
	lines = append(lines, body...)
	lines = append(lines, "")
	return borders.RenderFloating(strings.Join(lines, "\n"), w.title, w.maxWidth, height, w.screenW, w.screenH)
}

// paragraph wraps text and indents every line.
func (w *window) paragraph(text string, style lipgloss.Style) []string {
	var out []string
	for _, line := range wrapText(text, w.textWidth()) {
		out = append(out, bodyIndent+style.Render(line))
	}
	return out
}

// buttonRow renders labels as [ label ] buttons, highlighting selected, and
// centers the row in the text area.
func (w *window) buttonRow(selected int, labels ...string) string {
	parts := make([]string, len(labels))
	plain := 0
	for i, l := range labels {
		b := "[ " + l + " ]"
		plain += runewidth.StringWidth(b)
		style := theme.HelpDescStyle
		if i == selected {
			style = theme.SelectedItemStyle
		}
		parts[i] = style.Render(b)
	}
	const gap = "    "
	plain += len(gap) * max(0, len(labels)-1)
	pad := max(0, (w.textWidth()-plain)/2)
	return bodyIndent + strings.Repeat(" ", pad) + strings.Join(parts, gap)
}

// wrapText wraps text to a maximum display width. Explicit newlines are
// kept; an empty input yields no lines.
func wrapText(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			continue
		}

		var current strings.Builder
		width := 0
		for _, word := range words {
			w := runewidth.StringWidth(word)
			switch {
			case width == 0:
			case width+1+w <= maxWidth:
				current.WriteByte(' ')
				width++
			default:
				lines = append(lines, current.String())
				current.Reset()
				width = 0
			}
			if w > maxWidth {
				word = runewidth.Truncate(word, maxWidth, "…")
				w = runewidth.StringWidth(word)
			}
			current.WriteString(word)
			width += w
		}
		lines = append(lines, current.String())
	}

	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
