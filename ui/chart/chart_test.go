package chart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/gerunddev/repolens/workspace"
	"github.com/goccy/go-json"
	"pgregory.net/rapid"
)

func monthly() Chart {
	return Chart{
		XKey: "month",
		YKey: "value",
		Records: []workspace.ChartRecord{
			{"month": "Jan", "value": 10},
			{"month": "Feb", "value": 20},
		},
	}
}

func TestLegendLabel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"value", "Value"},
		{"Value", "Value"},
		{"count_total", "Count_total"},
		{"éclair", "Éclair"},
		{"", ""},
		{"1st", "1st"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := LegendLabel(tt.input); got != tt.want {
				t.Errorf("LegendLabel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBars_Monthly(t *testing.T) {
	c := monthly()
	bars := c.Bars()
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Label != "Jan" || bars[0].Value != 10 {
		t.Errorf("bar 0 = %+v", bars[0])
	}
	if bars[1].Label != "Feb" || bars[1].Value != 20 {
		t.Errorf("bar 1 = %+v", bars[1])
	}
	if bars[0].Color != Palette[0] || bars[1].Color != Palette[1] {
		t.Errorf("colors = %s, %s", bars[0].Color, bars[1].Color)
	}
	if c.Legend() != "Value" {
		t.Errorf("legend = %q, want Value", c.Legend())
	}
}

func TestBars_ValueCoercion(t *testing.T) {
	records := []workspace.ChartRecord{
		{"x": "float", "y": 1.5},
		{"x": "string", "y": " 2.25 "},
		{"x": "json", "y": json.Number("3")},
		{"x": "int64", "y": int64(4)},
		{"x": "garbage", "y": "n/a"},
		{"x": "bool", "y": true},
		{"x": "missing"},
		{"y": 7},
	}
	want := []Bar{
		{Label: "float", Value: 1.5},
		{Label: "string", Value: 2.25},
		{Label: "json", Value: 3},
		{Label: "int64", Value: 4},
		{Label: "garbage", Value: 0},
		{Label: "bool", Value: 0},
		{Label: "missing", Value: 0},
		{Label: "", Value: 7},
	}

	bars := Bars(records, "x", "y")
	if len(bars) != len(want) {
		t.Fatalf("expected %d bars, got %d", len(want), len(bars))
	}
	for i := range want {
		if bars[i].Label != want[i].Label || bars[i].Value != want[i].Value {
			t.Errorf("bar %d = {%q %v}, want {%q %v}", i, bars[i].Label, bars[i].Value, want[i].Label, want[i].Value)
		}
	}
}

func TestProperty_ColorAtCycles(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		i := rapid.IntRange(0, 10_000).Draw(t, "i")
		if got := ColorAt(i); got != Palette[i%len(Palette)] {
			t.Fatalf("ColorAt(%d) = %s, want %s", i, got, Palette[i%len(Palette)])
		}
	})
}

func TestProperty_BarsFollowRecords(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 30).Draw(t, "n")
		records := make([]workspace.ChartRecord, n)
		for i := range records {
			records[i] = workspace.ChartRecord{
				"k": rapid.StringMatching(`[A-Za-z]{0,6}`).Draw(t, "label"),
				"v": rapid.Float64Range(0, 1e6).Draw(t, "value"),
			}
		}

		bars := Bars(records, "k", "v")
		if len(bars) != n {
			t.Fatalf("bars = %d, records = %d", len(bars), n)
		}
		for i, b := range bars {
			if b.Label != records[i]["k"] {
				t.Fatalf("bar %d label %q, want %q", i, b.Label, records[i]["k"])
			}
			if b.Color != ColorAt(i) {
				t.Fatalf("bar %d color %s, want %s", i, b.Color, ColorAt(i))
			}
		}
	})
}

func TestRender_Monthly(t *testing.T) {
	out := Render(monthly(), 40, 12)

	for _, want := range []string{"Jan", "Feb", "Value", "20", "┼"} {
		if !strings.Contains(out, want) {
			t.Errorf("render should contain %q:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 12 {
		t.Errorf("expected 12 lines, got %d", len(lines))
	}

	// Feb is the tallest bar so it fills every plot row.
	withBars := 0
	for _, l := range lines {
		if strings.Contains(l, barGlyph) {
			withBars++
		}
	}
	if withBars != 9 {
		t.Errorf("expected 9 rows with bar cells, got %d:\n%s", withBars, out)
	}
}

func TestRender_Title(t *testing.T) {
	c := monthly()
	c.Title = "Commits per month"
	out := Render(c, 40, 12)
	if first := strings.Split(out, "\n")[0]; !strings.Contains(first, "Commits per month") {
		t.Errorf("title should be the first line:\n%s", out)
	}
}

func TestRender_Empty(t *testing.T) {
	out := Render(Chart{YKey: "value"}, 30, 8)
	if strings.Contains(out, barGlyph) {
		t.Errorf("empty chart should have no bars:\n%s", out)
	}
	if !strings.Contains(out, "┼") || !strings.Contains(out, "┤") {
		t.Errorf("empty chart should still draw axes:\n%s", out)
	}
}

func counted(n int) Chart {
	records := make([]workspace.ChartRecord, n)
	for i := range records {
		records[i] = workspace.ChartRecord{"day": strconv.Itoa(i + 1), "value": i + 1}
	}
	return Chart{XKey: "day", YKey: "value", Records: records}
}

func TestRender_CompactBars(t *testing.T) {
	// 20 bars do not fit with gaps into 26 plot cells, but fit without.
	out := Render(counted(20), 30, 10)
	lines := strings.Split(out, "\n")

	bottom := lines[6]
	if got := strings.Count(bottom, barGlyph); got != 20 {
		t.Errorf("expected 20 one-cell bars on the bottom row, got %d:\n%s", got, out)
	}
	if strings.Contains(out, "more") {
		t.Errorf("every bar fits, no marker expected:\n%s", out)
	}
}

func TestRender_HiddenBarsMarker(t *testing.T) {
	out := Render(counted(40), 30, 10)
	lines := strings.Split(out, "\n")

	if got := strings.Count(lines[6], barGlyph); got != 17 {
		t.Errorf("expected 17 visible bars, got %d:\n%s", got, out)
	}
	if labels := lines[8]; !strings.HasSuffix(labels, "+23 more") {
		t.Errorf("label row should end with the hidden count, got %q", labels)
	}
}

func TestRender_NegativeValueLeavesSlotEmpty(t *testing.T) {
	c := Chart{
		XKey: "k",
		YKey: "v",
		Records: []workspace.ChartRecord{
			{"k": "a", "v": -5},
			{"k": "b", "v": 5},
		},
	}
	out := Render(c, 40, 8)
	lines := strings.Split(out, "\n")

	if got := strings.Count(lines[4], barGlyph); got != 8 {
		t.Errorf("only b should draw, expected 8 cells, got %d:\n%s", got, out)
	}
	if !strings.Contains(lines[6], "a") || !strings.Contains(lines[6], "b") {
		t.Errorf("both labels should stay on the label row: %q", lines[6])
	}
}

func TestLayoutBars(t *testing.T) {
	tests := []struct {
		name    string
		n, plot int
		want    barLayout
	}{
		{"empty", 0, 30, barLayout{}},
		{"wide slots capped", 2, 36, barLayout{shown: 2, slotW: 9, barW: 8}},
		{"exact gaps", 13, 26, barLayout{shown: 13, slotW: 2, barW: 1}},
		{"compact", 20, 26, barLayout{shown: 20, slotW: 1, barW: 1}},
		{"overflow", 40, 26, barLayout{shown: 17, slotW: 1, barW: 1}},
		{"no room", 5, 0, barLayout{shown: 0, slotW: 1, barW: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := layoutBars(tt.n, tt.plot); got != tt.want {
				t.Errorf("layoutBars(%d, %d) = %+v, want %+v", tt.n, tt.plot, got, tt.want)
			}
		})
	}
}

func TestProperty_RenderFitsWidth(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		width := rapid.IntRange(20, 100).Draw(t, "width")
		height := rapid.IntRange(5, 20).Draw(t, "height")
		n := rapid.IntRange(0, 80).Draw(t, "n")
		records := make([]workspace.ChartRecord, n)
		for i := range records {
			records[i] = workspace.ChartRecord{
				"k": rapid.StringMatching(`[A-Za-z]{0,12}`).Draw(t, "label"),
				"v": rapid.IntRange(-100, 1_000_000).Draw(t, "value"),
			}
		}
		c := Chart{Title: "Weekly throughput of the lens service", XKey: "k", YKey: "v", Records: records}

		for i, line := range strings.Split(Render(c, width, height), "\n") {
			if w := lipgloss.Width(line); w > width {
				t.Fatalf("line %d is %d cells wide, limit %d: %q", i, w, width, line)
			}
		}
	})
}

func TestBarHeight(t *testing.T) {
	tests := []struct {
		v, max float64
		plot   int
		want   int
	}{
		{0, 10, 8, 0},
		{-5, 10, 8, 0},
		{10, 10, 8, 8},
		{5, 10, 8, 4},
		{0.01, 10, 8, 1},
		{3, 0, 8, 0},
	}
	for _, tt := range tests {
		if got := barHeight(tt.v, tt.max, tt.plot); got != tt.want {
			t.Errorf("barHeight(%v, %v, %d) = %d, want %d", tt.v, tt.max, tt.plot, got, tt.want)
		}
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, monthly(), 400, 300); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}

	var doc interface{}
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("SVG is not valid XML: %v", err)
	}

	out := buf.String()
	// background, two bars, legend swatch
	if got := strings.Count(out, "<rect"); got != 4 {
		t.Errorf("expected 4 rects, got %d", got)
	}
	for _, want := range []string{"Jan", "Feb", "Value", Palette[0], Palette[1]} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG should contain %q", want)
		}
	}
}

func TestSave_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chart.png")
	if err := Save(path, monthly()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestSave_SVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.svg")
	if err := Save(path, monthly()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output is not an SVG")
	}
}

func TestSave_Unsupported(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "chart.gif"), monthly())
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Errorf("expected ErrUnsupportedImage, got %v", err)
	}
}

func TestHexColor(t *testing.T) {
	c := hexColor("#8884d8")
	if c.R != 0x88 || c.G != 0x84 || c.B != 0xd8 || c.A != 0xff {
		t.Errorf("hexColor = %+v", c)
	}
	if hexColor("nope") != colorAxis {
		t.Error("invalid colors should fall back to the axis color")
	}
}

func TestFromSpec(t *testing.T) {
	if c := FromSpec(nil); len(c.Records) != 0 {
		t.Error("nil spec should give an empty chart")
	}
	spec := &workspace.ChartSpec{Title: "T", XKey: "a", YKey: "b"}
	if c := FromSpec(spec); c.Title != "T" || c.XKey != "a" || c.YKey != "b" {
		t.Errorf("FromSpec = %+v", c)
	}
}
