// Package chart draws categorical bar charts from history records.
//
// Each record contributes one bar: the label comes from the x key and the
// height from the y key. The same Chart renders to the terminal (Render),
// to SVG (WriteSVG) and to PNG (SavePNG).
package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gerunddev/repolens/workspace"
	"github.com/goccy/go-json"
)

// Palette is the fixed bar color sequence.
var Palette = []string{
	"#8884d8",
	"#9370DB",
	"#9966CC",
	"#8A2BE2",
	"#9932CC",
	"#BA55D3",
	"#DA70D6",
}

// ColorAt returns the palette color for bar i, cycling through the palette.
func ColorAt(i int) string {
	n := len(Palette)
	return Palette[((i%n)+n)%n]
}

// LegendLabel upper-cases the first character of yKey.
func LegendLabel(yKey string) string {
	r, size := utf8.DecodeRuneInString(yKey)
	if r == utf8.RuneError {
		return yKey
	}
	return string(unicode.ToUpper(r)) + yKey[size:]
}

// Chart is the input to every renderer.
type Chart struct {
	Title   string
	XKey    string
	YKey    string
	Records []workspace.ChartRecord
}

// FromSpec converts a stored chart. A nil spec gives an empty chart.
func FromSpec(spec *workspace.ChartSpec) Chart {
	if spec == nil {
		return Chart{}
	}
	return Chart{
		Title:   spec.Title,
		XKey:    spec.XKey,
		YKey:    spec.YKey,
		Records: spec.Records,
	}
}

// Bar is one category.
type Bar struct {
	Label string
	Value float64
	Color string
}

// Bars extracts one bar per record, in record order. Missing labels become
// empty strings. Missing or non-numeric values become 0. Negative values are
// kept as is; the renderers start the value axis at 0 and leave their slot
// empty.
func Bars(records []workspace.ChartRecord, xKey, yKey string) []Bar {
	bars := make([]Bar, 0, len(records))
	for i, rec := range records {
		bars = append(bars, Bar{
			Label: labelOf(rec[xKey]),
			Value: valueOf(rec[yKey]),
			Color: ColorAt(i),
		})
	}
	return bars
}

// Bars returns the bars of c.
func (c Chart) Bars() []Bar {
	return Bars(c.Records, c.XKey, c.YKey)
}

// Legend returns the legend text.
func (c Chart) Legend() string {
	return LegendLabel(c.YKey)
}

// MaxValue returns the largest bar value, or 0.
func MaxValue(bars []Bar) float64 {
	m := 0.0
	for _, b := range bars {
		if b.Value > m {
			m = b.Value
		}
	}
	return m
}

func labelOf(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func valueOf(v any) float64 {
	var f float64
	switch v := v.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case int32:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint64:
		f = float64(v)
	case uint32:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// formatValue prints v with at most two decimals.
func formatValue(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
