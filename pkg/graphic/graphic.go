// Package graphic provides the drawing backends netdraw renders into.
//
// # Overview
//
// Every backend implements [Graphic], a small pen-plotter style interface:
// set a color and a line width, then draw lines and polygon outlines given in
// projected world coordinates. A [Frame] maps those coordinates into the page,
// fitting the clip rectangle uniformly and centering it.
//
//	g, err := graphic.New("pdf", "out.pdf", 14, 14, viewport)
//	if err != nil {
//	    return err
//	}
//	g.SetColor(color.Black)
//	g.SetLineWidth(0.2)
//	g.DrawLine(a, b)
//	return g.Close()
//
// # Formats
//
//   - PDF: one document, one PDF page per page ([jung-kurt/gofpdf])
//   - PNG: antialiased raster, one file per page ([srwiley/rasterx])
//   - SVG: vector, one file per page
//
// Formats writing one file per page name the first page after the requested
// path and later pages "<stem>_<n><ext>" (see [PagePath]).
//
// # Failure semantics
//
// Drawing methods do not return errors. The first failure is kept and reported
// by NewPage or Close. Nothing is written to disk before Close; Discard drops
// everything drawn so far, which leaves no partial output after a failed run.
//
// [jung-kurt/gofpdf]: https://github.com/jung-kurt/gofpdf
// [srwiley/rasterx]: https://github.com/srwiley/rasterx
package graphic

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"

	"github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/geo"
)

// Graphic is a drawing surface bound to a viewport in projected coordinates.
type Graphic interface {
	// SetColor sets the stroke color, including its alpha, for later primitives.
	SetColor(c color.Color)
	// SetLineWidth sets the stroke width in millimetres.
	SetLineWidth(mm float64)
	// DrawLine strokes a segment between two projected points.
	DrawLine(a, b orb.Point)
	// DrawPolygon strokes the outline of a closed ring of projected points.
	DrawPolygon(ring orb.Ring)
	// NewPage finishes the current page and starts an empty one.
	NewPage() error
	// Close writes all pages and releases the graphic.
	Close() error
	// Discard releases the graphic without writing anything.
	Discard()
}

// Format selects a backend.
type Format string

// Supported formats.
const (
	PDF Format = "PDF"
	PNG Format = "PNG"
	SVG Format = "SVG"
)

// DefaultFormat is used when no format is given.
const DefaultFormat = PNG

// Formats lists the supported formats.
var Formats = []Format{PDF, PNG, SVG}

// ParseFormat resolves a case-insensitive format name. The empty string
// selects DefaultFormat.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return DefaultFormat, nil
	}
	f := Format(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeUnrecognizedFormat, "unrecognized file format -- '%s'", s)
}

// Ext returns the file extension of the format, including the dot.
func (f Format) Ext() string { return "." + strings.ToLower(string(f)) }

// Option configures a backend.
type Option func(*config)

type config struct {
	dpi float64
}

// DefaultDPI is the PNG resolution unless overridden.
const DefaultDPI = 150

// WithDPI sets the resolution of raster output in dots per inch.
func WithDPI(dpi float64) Option {
	return func(c *config) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// New creates a backend of the named format writing to path. The page
// measures widthCm by heightCm and shows the clip rectangle.
func New(format, path string, widthCm, heightCm float64, clip geo.Rect, opts ...Option) (Graphic, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if !(widthCm > 0 && heightCm > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graphic size must be positive, got %vx%v cm", widthCm, heightCm)
	}
	cfg := config{dpi: DefaultDPI}
	for _, opt := range opts {
		opt(&cfg)
	}
	frame := NewFrame(clip, widthCm*10, heightCm*10)
	switch f {
	case PDF:
		return newPDF(path, frame), nil
	case SVG:
		return newSVG(path, frame), nil
	default:
		return newPNG(path, frame, cfg.dpi), nil
	}
}

// PagePath returns the file that holds page n (counted from 1) of a
// one-file-per-page output written to path.
func PagePath(path string, n int) string {
	if n <= 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(path, ext), n, ext)
}

// pen holds the stroke state and sticky error shared by all backends.
type pen struct {
	color color.NRGBA
	width float64
	err   error
}

func newPen() pen {
	return pen{color: color.NRGBA{A: 0xff}, width: 0.1}
}

func (p *pen) SetColor(c color.Color) {
	p.color = color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (p *pen) SetLineWidth(mm float64) {
	if mm >= 0 {
		p.width = mm
	}
}

// fail records err unless an earlier failure is already pending.
func (p *pen) fail(err error) {
	if p.err == nil && err != nil {
		p.err = err
	}
}
