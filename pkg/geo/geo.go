// Package geo provides the geographic primitives used when drawing road
// networks: latitude/longitude pairs, their web-mercator projection, bounding
// rectangles in projected space, and areas read from OSM POLY files.
//
// Geometry types come from github.com/paulmach/orb. Points follow orb's
// convention of X = longitude, Y = latitude before projection, and
// X/Y = mercator metres after projection.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// LatLng is a position on the earth's surface in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point returns the position as an unprojected orb point (lng, lat).
func (l LatLng) Point() orb.Point { return orb.Point{l.Lng, l.Lat} }

// WebMercator returns the position projected into spherical web-mercator space.
func (l LatLng) WebMercator() orb.Point {
	return project.WGS84.ToMercator(l.Point())
}

// FromPoint converts an unprojected orb point (lng, lat) into a LatLng.
func FromPoint(p orb.Point) LatLng { return LatLng{Lat: p.Lat(), Lng: p.Lon()} }

// Rect is an axis-aligned rectangle in projected space. Unlike orb.Bound, the
// zero value is empty: extending it with the first point yields a degenerate
// rectangle at that point rather than one stretching to the origin.
type Rect struct {
	bound orb.Bound
	set   bool
}

// NewRect returns the smallest rectangle containing all points.
func NewRect(points ...orb.Point) Rect {
	var r Rect
	for _, p := range points {
		r = r.Extend(p)
	}
	return r
}

// Extend returns the rectangle grown to contain p.
func (r Rect) Extend(p orb.Point) Rect {
	if !r.set {
		return Rect{bound: p.Bound(), set: true}
	}
	return Rect{bound: r.bound.Extend(p), set: true}
}

// Union returns the smallest rectangle containing both r and o.
func (r Rect) Union(o Rect) Rect {
	switch {
	case !o.set:
		return r
	case !r.set:
		return o
	}
	return Rect{bound: r.bound.Union(o.bound), set: true}
}

// IsEmpty reports whether no point has been added to the rectangle.
func (r Rect) IsEmpty() bool { return !r.set }

// Bound returns the rectangle as an orb.Bound. An empty Rect yields the zero bound.
func (r Rect) Bound() orb.Bound { return r.bound }

// Min returns the south-west corner.
func (r Rect) Min() orb.Point { return r.bound.Min }

// Max returns the north-east corner.
func (r Rect) Max() orb.Point { return r.bound.Max }

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.bound.Max.X() - r.bound.Min.X() }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.bound.Max.Y() - r.bound.Min.Y() }

// Contains reports whether p lies inside or on the border of the rectangle.
func (r Rect) Contains(p orb.Point) bool { return r.set && r.bound.Contains(p) }
