package graphic

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

const mmPerInch = 25.4

type pngGraphic struct {
	pen
	path    string
	frame   Frame
	pxPerMM float64
	pages   []*image.RGBA
	img     *image.RGBA
	dasher  *rasterx.Dasher
}

func newPNG(path string, frame Frame, dpi float64) *pngGraphic {
	g := &pngGraphic{pen: newPen(), path: path, frame: frame, pxPerMM: dpi / mmPerInch}
	g.startPage()
	return g
}

func (g *pngGraphic) startPage() {
	w := max(1, int(math.Round(g.frame.Width*g.pxPerMM)))
	h := max(1, int(math.Round(g.frame.Height*g.pxPerMM)))
	g.img = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(g.img, g.img.Bounds(), image.White, image.Point{}, draw.Src)
	g.pages = append(g.pages, g.img)

	x, y, cw, ch := g.frame.Viewport()
	clip := image.Rect(
		int(math.Floor(x*g.pxPerMM)), int(math.Floor(y*g.pxPerMM)),
		int(math.Ceil((x+cw)*g.pxPerMM)), int(math.Ceil((y+ch)*g.pxPerMM)),
	).Intersect(g.img.Bounds())
	scanner := rasterx.NewScannerGV(w, h, g.img, clip)
	g.dasher = rasterx.NewDasher(w, h, scanner)
}

func (g *pngGraphic) toFixed(p orb.Point) fixed.Point26_6 {
	x, y := g.frame.Map(p)
	return rasterx.ToFixedP(x*g.pxPerMM, y*g.pxPerMM)
}

// begin resets the path and loads the pen into the rasterizer.
func (g *pngGraphic) begin() {
	g.dasher.Clear()
	width := fixed.Int26_6(math.Round(g.width * g.pxPerMM * 64))
	g.dasher.SetStroke(width, 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	g.dasher.Scanner.SetColor(g.color)
}

func (g *pngGraphic) DrawLine(a, b orb.Point) {
	g.begin()
	g.dasher.Start(g.toFixed(a))
	g.dasher.Line(g.toFixed(b))
	g.dasher.Stop(false)
	g.dasher.Draw()
}

func (g *pngGraphic) DrawPolygon(ring orb.Ring) {
	if len(ring) == 0 {
		return
	}
	g.begin()
	g.dasher.Start(g.toFixed(ring[0]))
	for _, p := range ring[1:] {
		g.dasher.Line(g.toFixed(p))
	}
	g.dasher.Stop(true)
	g.dasher.Draw()
}

func (g *pngGraphic) NewPage() error {
	if g.err != nil {
		return g.err
	}
	g.startPage()
	return nil
}

func (g *pngGraphic) Close() error {
	if g.err != nil {
		return g.err
	}
	for i, img := range g.pages {
		if err := writePNG(PagePath(g.path, i+1), img); err != nil {
			return err
		}
	}
	g.pages, g.img = nil, nil
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

func (g *pngGraphic) Discard() { g.pages, g.img = nil, nil }
