package graphic

import (
	"github.com/paulmach/orb"

	"github.com/matzehuels/netdraw/pkg/geo"
)

// Frame maps projected world coordinates onto a page measured in
// millimetres. The clip rectangle is scaled uniformly to fit the page and
// centered; the y axis is flipped so that north is up.
type Frame struct {
	Width, Height float64 // page size in mm

	clip   geo.Rect
	scale  float64
	dx, dy float64
}

// NewFrame fits clip into a page of the given size.
func NewFrame(clip geo.Rect, widthMM, heightMM float64) Frame {
	f := Frame{Width: widthMM, Height: heightMM, clip: clip, scale: 1}
	cw, ch := clip.Width(), clip.Height()
	switch {
	case cw > 0 && ch > 0:
		f.scale = min(widthMM/cw, heightMM/ch)
	case cw > 0:
		f.scale = widthMM / cw
	case ch > 0:
		f.scale = heightMM / ch
	}
	f.dx = (widthMM - cw*f.scale) / 2
	f.dy = (heightMM - ch*f.scale) / 2
	return f
}

// Map converts a projected point to page millimetres, origin top left.
func (f Frame) Map(p orb.Point) (x, y float64) {
	lo, hi := f.clip.Min(), f.clip.Max()
	x = f.dx + (p.X()-lo.X())*f.scale
	y = f.dy + (hi.Y()-p.Y())*f.scale
	return x, y
}

// Viewport returns the clip rectangle on the page as x, y, width, height in
// mm. A clip rectangle without area yields the whole page.
func (f Frame) Viewport() (x, y, w, h float64) {
	w, h = f.clip.Width()*f.scale, f.clip.Height()*f.scale
	if w <= 0 || h <= 0 {
		return 0, 0, f.Width, f.Height
	}
	return f.dx, f.dy, w, h
}
