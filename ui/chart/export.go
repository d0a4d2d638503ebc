package chart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"
)

// Default image size for Save.
const (
	DefaultImageWidth  = 800
	DefaultImageHeight = 400
)

// ErrUnsupportedImage is returned by Save for extensions other than .svg
// and .png.
var ErrUnsupportedImage = errors.New("unsupported image format")

var (
	colorBackdrop = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorAxis     = color.RGBA{R: 0x66, G: 0x66, B: 0x66, A: 0xff}
	colorText     = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// imageLayout holds pixel geometry shared by the SVG and PNG renderers.
type imageLayout struct {
	width, height int
	left, right   int
	top, bottom   int
	slot          float64
	barWidth      float64
	maxVal        float64
	bars          []Bar
}

func buildImageLayout(c Chart, width, height int) imageLayout {
	l := imageLayout{
		width:  width,
		height: height,
		left:   60,
		right:  width - 20,
		top:    40,
		bottom: height - 60,
		bars:   c.Bars(),
	}
	l.maxVal = MaxValue(l.bars)
	if n := len(l.bars); n > 0 {
		l.slot = float64(l.right-l.left) / float64(n)
		l.barWidth = l.slot * 0.7
	}
	return l
}

// bar returns the top-left corner and size of bar i.
func (l imageLayout) bar(i int) (x, y, w, h float64) {
	plot := float64(l.bottom - l.top)
	if l.maxVal > 0 && l.bars[i].Value > 0 {
		h = l.bars[i].Value / l.maxVal * plot
	}
	x = float64(l.left) + float64(i)*l.slot + (l.slot-l.barWidth)/2
	y = float64(l.bottom) - h
	return x, y, l.barWidth, h
}

// WriteSVG writes c as an SVG document.
func WriteSVG(w io.Writer, c Chart, width, height int) error {
	l := buildImageLayout(c, width, height)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", css(colorBackdrop)))

	if c.Title != "" {
		canvas.Text(width/2, 24, c.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold;text-anchor:middle", css(colorText)))
	}

	axis := fmt.Sprintf("stroke:%s;stroke-width:1", css(colorAxis))
	canvas.Line(l.left, l.top, l.left, l.bottom, axis)
	canvas.Line(l.left, l.bottom, l.right, l.bottom, axis)

	tick := fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;text-anchor:end", css(colorText))
	canvas.Text(l.left-6, l.top+4, formatValue(l.maxVal), tick)
	canvas.Text(l.left-6, l.bottom+4, "0", tick)

	label := fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;text-anchor:middle", css(colorText))
	for i, b := range l.bars {
		x, y, bw, bh := l.bar(i)
		canvas.Rect(int(x), int(y), int(bw), int(bh), fmt.Sprintf("fill:%s", b.Color))
		canvas.Text(int(x+bw/2), l.bottom+18, b.Label, label)
	}

	legendY := height - 20
	canvas.Rect(l.left, legendY-10, 12, 12, fmt.Sprintf("fill:%s", ColorAt(0)))
	canvas.Text(l.left+18, legendY, c.Legend(), fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorText)))

	canvas.End()
	return nil
}

// SavePNG rasterizes c to a PNG file.
func SavePNG(path string, c Chart, width, height int) error {
	l := buildImageLayout(c, width, height)

	dc := gg.NewContext(width, height)
	dc.SetColor(colorBackdrop)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	if c.Title != "" {
		dc.SetColor(colorText)
		dc.DrawStringAnchored(c.Title, float64(width)/2, 24, 0.5, 0.5)
	}

	dc.SetColor(colorAxis)
	dc.SetLineWidth(1)
	dc.DrawLine(float64(l.left), float64(l.top), float64(l.left), float64(l.bottom))
	dc.DrawLine(float64(l.left), float64(l.bottom), float64(l.right), float64(l.bottom))
	dc.Stroke()

	dc.SetColor(colorText)
	dc.DrawStringAnchored(formatValue(l.maxVal), float64(l.left-6), float64(l.top), 1, 0.5)
	dc.DrawStringAnchored("0", float64(l.left-6), float64(l.bottom), 1, 0.5)

	for i, b := range l.bars {
		x, y, bw, bh := l.bar(i)
		dc.SetColor(hexColor(b.Color))
		dc.DrawRectangle(x, y, bw, bh)
		dc.Fill()
		dc.SetColor(colorText)
		dc.DrawStringAnchored(b.Label, x+bw/2, float64(l.bottom+14), 0.5, 0.5)
	}

	legendY := float64(height - 20)
	dc.SetColor(hexColor(ColorAt(0)))
	dc.DrawRectangle(float64(l.left), legendY-6, 12, 12)
	dc.Fill()
	dc.SetColor(colorText)
	dc.DrawStringAnchored(c.Legend(), float64(l.left+18), legendY, 0, 0.5)

	return dc.SavePNG(path)
}

// Save writes c to path at the default size. The format follows the
// extension.
func Save(path string, c Chart) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return WriteSVG(f, c, DefaultImageWidth, DefaultImageHeight)
	case ".png":
		return SavePNG(path, c, DefaultImageWidth, DefaultImageHeight)
	default:
		return fmt.Errorf("%w: %q (want .svg or .png)", ErrUnsupportedImage, filepath.Ext(path))
	}
}

func hexColor(s string) color.RGBA {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return colorAxis
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return colorAxis
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
