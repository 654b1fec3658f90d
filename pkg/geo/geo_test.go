package geo

import (
	"math"
	"strings"
	"testing"

	"github.com/paulmach/orb"

	"github.com/matzehuels/netdraw/pkg/errors"
)

func TestWebMercatorOrigin(t *testing.T) {
	p := LatLng{}.WebMercator()
	if math.Abs(p.X()) > 1e-9 || math.Abs(p.Y()) > 1e-9 {
		t.Errorf("WebMercator(0,0) = %v, want origin", p)
	}
}

func TestWebMercatorMonotonic(t *testing.T) {
	a := LatLng{Lat: 48.7, Lng: 9.1}.WebMercator()
	b := LatLng{Lat: 48.8, Lng: 9.2}.WebMercator()
	if !(b.X() > a.X() && b.Y() > a.Y()) {
		t.Errorf("projection not monotonic: %v then %v", a, b)
	}
}

func TestRectZeroValueIsEmpty(t *testing.T) {
	var r Rect
	if !r.IsEmpty() {
		t.Fatal("zero Rect should be empty")
	}
	r = r.Extend(orb.Point{5, 7})
	if r.IsEmpty() {
		t.Fatal("extended Rect should not be empty")
	}
	if r.Min() != (orb.Point{5, 7}) || r.Max() != (orb.Point{5, 7}) {
		t.Errorf("Rect = %v..%v, want degenerate at (5,7)", r.Min(), r.Max())
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(orb.Point{0, 0}, orb.Point{1, 1})
	b := NewRect(orb.Point{-2, 3})
	u := a.Union(b)
	if u.Min() != (orb.Point{-2, 0}) || u.Max() != (orb.Point{1, 3}) {
		t.Errorf("Union = %v..%v", u.Min(), u.Max())
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union with empty = %v, want %v", got, a)
	}
	if got := (Rect{}).Union(a); got != a {
		t.Errorf("empty Union = %v, want %v", got, a)
	}
	if u.Width() != 3 || u.Height() != 3 {
		t.Errorf("Width/Height = %v/%v, want 3/3", u.Width(), u.Height())
	}
}

const samplePoly = `stuttgart
1
   9.0   48.7
   9.3   48.7
   9.3   48.9
   9.0   48.9
END
!2
   9.1 48.75
   9.2 48.75
   9.2 48.8
END
END
`

func TestReadOSMPoly(t *testing.T) {
	area, err := ReadOSMPoly(strings.NewReader(samplePoly))
	if err != nil {
		t.Fatalf("ReadOSMPoly: %v", err)
	}
	if area.Name != "stuttgart" {
		t.Errorf("Name = %q, want stuttgart", area.Name)
	}
	rings := area.Rings()
	if len(rings) != 2 {
		t.Fatalf("rings = %d, want 2", len(rings))
	}
	for i, r := range rings {
		if !r.Closed() {
			t.Errorf("ring %d not closed", i)
		}
	}
	if len(rings[0]) != 5 {
		t.Errorf("ring 0 has %d points, want 5 (closed)", len(rings[0]))
	}

	box := area.BoundingBox()
	if box.Min != (orb.Point{9.0, 48.7}) || box.Max != (orb.Point{9.3, 48.9}) {
		t.Errorf("BoundingBox = %v", box)
	}

	pb := area.ProjectedBounds()
	want := NewRect(LatLng{Lat: 48.7, Lng: 9.0}.WebMercator(), LatLng{Lat: 48.9, Lng: 9.3}.WebMercator())
	if pb != want {
		t.Errorf("ProjectedBounds = %v..%v, want %v..%v", pb.Min(), pb.Max(), want.Min(), want.Max())
	}
}

func TestReadOSMPolyErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"empty", "", errors.ErrCodeInvalidInput},
		{"missing final end", "x\n1\n 1 2\nEND\n", errors.ErrCodeInvalidInput},
		{"unterminated ring", "x\n1\n 1 2\n", errors.ErrCodeInvalidInput},
		{"bad arity", "x\n1\n 1 2 3\nEND\nEND\n", errors.ErrCodeInvalidInput},
		{"bad number", "x\n1\n 1 abc\nEND\nEND\n", errors.ErrCodeMalformedNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOSMPoly(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestImportOSMPolyMissing(t *testing.T) {
	_, err := ImportOSMPoly(t.TempDir() + "/nope.poly")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}
