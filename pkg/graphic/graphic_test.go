package graphic

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/geo"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
		code errors.Code
	}{
		{"", PNG, ""},
		{"pdf", PDF, ""},
		{"Svg", SVG, ""},
		{"PNG", PNG, ""},
		{"gif", "", errors.ErrCodeUnrecognizedFormat},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.code != "" {
			if !errors.Is(err, tt.code) {
				t.Errorf("ParseFormat(%q) err = %v, want %s", tt.in, err, tt.code)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestPagePath(t *testing.T) {
	tests := []struct {
		path string
		n    int
		want string
	}{
		{"out/net.svg", 1, "out/net.svg"},
		{"out/net.svg", 2, "out/net_2.svg"},
		{"net.png", 12, "net_12.png"},
		{"net", 3, "net_3"},
	}
	for _, tt := range tests {
		if got := PagePath(tt.path, tt.n); got != tt.want {
			t.Errorf("PagePath(%q, %d) = %q, want %q", tt.path, tt.n, got, tt.want)
		}
	}
}

func TestFrame(t *testing.T) {
	// A 2:1 clip rectangle on a square page is letterboxed vertically.
	clip := geo.NewRect(orb.Point{0, 0}, orb.Point{200, 100})
	f := NewFrame(clip, 100, 100)

	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
	tests := []struct {
		p      orb.Point
		wx, wy float64
	}{
		{orb.Point{0, 100}, 0, 25},
		{orb.Point{200, 0}, 100, 75},
		{orb.Point{100, 50}, 50, 50},
	}
	for _, tt := range tests {
		x, y := f.Map(tt.p)
		if !near(x, tt.wx) || !near(y, tt.wy) {
			t.Errorf("Map(%v) = (%v,%v), want (%v,%v)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
	x, y, w, h := f.Viewport()
	if !near(x, 0) || !near(y, 25) || !near(w, 100) || !near(h, 50) {
		t.Errorf("Viewport = %v,%v %vx%v", x, y, w, h)
	}

	x, y, w, h = NewFrame(geo.NewRect(orb.Point{5, 5}), 30, 20).Viewport()
	if x != 0 || y != 0 || w != 30 || h != 20 {
		t.Errorf("degenerate Viewport = %v,%v %vx%v, want whole page", x, y, w, h)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	clip := geo.NewRect(orb.Point{0, 0}, orb.Point{1, 1})
	if _, err := New("bmp", "x.bmp", 10, 10, clip); !errors.Is(err, errors.ErrCodeUnrecognizedFormat) {
		t.Errorf("bmp: err = %v", err)
	}
	if _, err := New("svg", "x.svg", 0, 10, clip); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("zero width: err = %v", err)
	}
}

func drawSample(t *testing.T, g Graphic) {
	t.Helper()
	g.SetColor(color.NRGBA{R: 0xcb, G: 0x18, B: 0x1d, A: 0xff})
	g.SetLineWidth(1)
	g.DrawLine(orb.Point{0, 0}, orb.Point{100, 100})
	g.SetColor(color.NRGBA{G: 150, B: 130, A: 3})
	g.DrawPolygon(orb.Ring{{10, 10}, {90, 10}, {90, 90}, {10, 10}})
}

func TestSVG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.svg")
	g, err := New("svg", path, 10, 10, geo.NewRect(orb.Point{0, 0}, orb.Point{100, 100}))
	if err != nil {
		t.Fatal(err)
	}
	drawSample(t, g)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("svg written before Close")
	}
	if err := g.NewPage(); err != nil {
		t.Fatal(err)
	}
	g.DrawLine(orb.Point{0, 0}, orb.Point{50, 50})
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}

	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(first)
	for _, want := range []string{
		`<line x1="0.000" y1="100.000" x2="100.000" y2="0.000" stroke="#cb181d" stroke-width="1.000"/>`,
		`stroke="#009682"`,
		`stroke-opacity="0.0118"`,
		`<clipPath id="viewport">`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("page 1 missing %s:\n%s", want, doc)
		}
	}
	if !strings.HasSuffix(doc, "</svg>\n") {
		t.Error("page 1 not terminated")
	}
	second, err := os.ReadFile(filepath.Join(dir, "net_2.svg"))
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if n := strings.Count(string(second), "<line"); n != 1 {
		t.Errorf("page 2 has %d lines, want 1", n)
	}
}

func TestDiscardWritesNothing(t *testing.T) {
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			dir := t.TempDir()
			g, err := New(string(format), filepath.Join(dir, "out"+format.Ext()), 5, 5,
				geo.NewRect(orb.Point{0, 0}, orb.Point{100, 100}))
			if err != nil {
				t.Fatal(err)
			}
			drawSample(t, g)
			g.Discard()
			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Errorf("Discard left %d files", len(entries))
			}
		})
	}
}

func TestPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.png")
	g, err := New("png", path, 2.54, 2.54, geo.NewRect(orb.Point{0, 0}, orb.Point{100, 100}), WithDPI(100))
	if err != nil {
		t.Fatal(err)
	}
	drawSample(t, g)
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 100 {
		t.Errorf("size = %v, want 100x100", b)
	}
	r, gg, bb, _ := img.At(50, 50).RGBA()
	if r>>8 < 0x80 || gg>>8 > 0x80 || bb>>8 > 0x80 {
		t.Errorf("center pixel = %v, want red stroke", img.At(50, 50))
	}
	r, gg, bb, _ = img.At(95, 95).RGBA()
	if r != 0xffff || gg != 0xffff || bb != 0xffff {
		t.Errorf("corner pixel = %v, want white background", img.At(95, 95))
	}
}

func TestPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.pdf")
	g, err := New("PDF", path, 10, 10, geo.NewRect(orb.Point{0, 0}, orb.Point{100, 100}))
	if err != nil {
		t.Fatal(err)
	}
	drawSample(t, g)
	if err := g.NewPage(); err != nil {
		t.Fatal(err)
	}
	g.DrawLine(orb.Point{0, 0}, orb.Point{1, 1})
	if err := g.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("not a PDF: %q", data[:min(len(data), 16)])
	}
}
