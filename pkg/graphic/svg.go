package graphic

import (
	"bytes"
	"fmt"
	"os"

	"github.com/paulmach/orb"
)

type svgGraphic struct {
	pen
	path  string
	frame Frame
	pages []*bytes.Buffer
	buf   *bytes.Buffer
}

func newSVG(path string, frame Frame) *svgGraphic {
	g := &svgGraphic{pen: newPen(), path: path, frame: frame}
	g.startPage()
	return g
}

func (g *svgGraphic) startPage() {
	g.buf = new(bytes.Buffer)
	g.pages = append(g.pages, g.buf)

	w, h := g.frame.Width, g.frame.Height
	fmt.Fprintf(g.buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.3f %.3f" width="%.3fmm" height="%.3fmm">`+"\n",
		w, h, w, h)
	x, y, cw, ch := g.frame.Viewport()
	fmt.Fprintf(g.buf, `  <defs><clipPath id="viewport"><rect x="%.3f" y="%.3f" width="%.3f" height="%.3f"/></clipPath></defs>`+"\n",
		x, y, cw, ch)
	g.buf.WriteString(`  <g clip-path="url(#viewport)" fill="none" stroke-linecap="round" stroke-linejoin="round">` + "\n")
}

func (g *svgGraphic) endPage() {
	g.buf.WriteString("  </g>\n</svg>\n")
}

func (g *svgGraphic) stroke() string {
	c := g.color
	s := fmt.Sprintf(`stroke="#%02x%02x%02x" stroke-width="%.3f"`, c.R, c.G, c.B, g.width)
	if c.A != 0xff {
		s += fmt.Sprintf(` stroke-opacity="%.4f"`, float64(c.A)/0xff)
	}
	return s
}

func (g *svgGraphic) DrawLine(a, b orb.Point) {
	x1, y1 := g.frame.Map(a)
	x2, y2 := g.frame.Map(b)
	fmt.Fprintf(g.buf, `    <line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f" %s/>`+"\n", x1, y1, x2, y2, g.stroke())
}

func (g *svgGraphic) DrawPolygon(ring orb.Ring) {
	if len(ring) == 0 {
		return
	}
	g.buf.WriteString(`    <polygon points="`)
	for i, p := range ring {
		x, y := g.frame.Map(p)
		if i > 0 {
			g.buf.WriteByte(' ')
		}
		fmt.Fprintf(g.buf, "%.3f,%.3f", x, y)
	}
	fmt.Fprintf(g.buf, `" %s/>`+"\n", g.stroke())
}

func (g *svgGraphic) NewPage() error {
	if g.err != nil {
		return g.err
	}
	g.endPage()
	g.startPage()
	return nil
}

func (g *svgGraphic) Close() error {
	if g.err != nil {
		return g.err
	}
	g.endPage()
	for i, page := range g.pages {
		if err := os.WriteFile(PagePath(g.path, i+1), page.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
	}
	g.pages, g.buf = nil, nil
	return nil
}

func (g *svgGraphic) Discard() { g.pages, g.buf = nil, nil }
