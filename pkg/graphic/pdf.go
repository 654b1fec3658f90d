package graphic

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/paulmach/orb"
)

type pdfGraphic struct {
	pen
	path  string
	frame Frame
	pdf   *gofpdf.Fpdf
}

func newPDF(path string, frame Frame) *pdfGraphic {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: frame.Width, Ht: frame.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	g := &pdfGraphic{pen: newPen(), path: path, frame: frame, pdf: pdf}
	g.startPage()
	return g
}

func (g *pdfGraphic) startPage() {
	g.pdf.AddPage()
	x, y, w, h := g.frame.Viewport()
	g.pdf.ClipRect(x, y, w, h, false)
}

// apply pushes the pen state to the document before a primitive.
func (g *pdfGraphic) apply() {
	c := g.color
	g.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	g.pdf.SetAlpha(float64(c.A)/0xff, "Normal")
	g.pdf.SetLineWidth(g.width)
}

func (g *pdfGraphic) DrawLine(a, b orb.Point) {
	g.apply()
	x1, y1 := g.frame.Map(a)
	x2, y2 := g.frame.Map(b)
	g.pdf.Line(x1, y1, x2, y2)
}

func (g *pdfGraphic) DrawPolygon(ring orb.Ring) {
	if len(ring) == 0 {
		return
	}
	g.apply()
	pts := make([]gofpdf.PointType, len(ring))
	for i, p := range ring {
		pts[i].X, pts[i].Y = g.frame.Map(p)
	}
	g.pdf.Polygon(pts, "D")
}

func (g *pdfGraphic) check() error {
	if g.err == nil && g.pdf.Err() {
		g.fail(fmt.Errorf("pdf: %w", g.pdf.Error()))
	}
	return g.err
}

func (g *pdfGraphic) NewPage() error {
	if err := g.check(); err != nil {
		return err
	}
	g.pdf.ClipEnd()
	g.startPage()
	return g.check()
}

func (g *pdfGraphic) Close() error {
	if err := g.check(); err != nil {
		return err
	}
	g.pdf.ClipEnd()
	if err := g.pdf.OutputFileAndClose(g.path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func (g *pdfGraphic) Discard() { g.pdf = nil }
