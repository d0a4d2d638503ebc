package borders

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTitledBorder_Dimensions(t *testing.T) {
	out := RenderTitledBorder("one\ntwo", "Files", 20, 6, false)
	lines := strings.Split(out, "\n")

	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 20 {
			t.Errorf("line %d: width %d, want 20", i, w)
		}
	}
	if !strings.Contains(lines[0], "Files") {
		t.Error("top border should contain the title")
	}
}

func TestRenderTitledBorder_ClipsLongContent(t *testing.T) {
	long := strings.Repeat("x", 50)
	out := RenderTitledBorder(long+"\n"+long+"\n"+long, "T", 10, 4, true)
	lines := strings.Split(out, "\n")

	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 10 {
			t.Errorf("line %d: width %d, want 10", i, w)
		}
	}
}

func TestRenderTitledBorder_TooSmall(t *testing.T) {
	if out := RenderTitledBorder("x", "T", 1, 1, false); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestRenderFloating_Centered(t *testing.T) {
	out := RenderFloating("hello", "Info", 30, 6, 80, 24)
	lines := strings.Split(out, "\n")

	// (24-6)/2 blank lines of top padding
	for i := 0; i < 9; i++ {
		if lines[i] != "" {
			t.Fatalf("line %d should be blank padding, got %q", i, lines[i])
		}
	}
	if !strings.Contains(lines[9], "Info") {
		t.Errorf("title should be in the first window line, got %q", lines[9])
	}
	if !strings.HasPrefix(lines[9], strings.Repeat(" ", 25)) {
		t.Error("window should be horizontally centered")
	}
}
