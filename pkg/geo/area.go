package geo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/matzehuels/netdraw/pkg/errors"
)

// Area is a region made of one or more closed rings of (lng, lat) points, as
// stored in an OSM POLY file. Rings whose section name starts with '!' are
// holes; they are kept as rings so that their outline is drawn too.
type Area struct {
	Name  string
	rings []orb.Ring
}

// NewArea returns an area consisting of the given rings.
func NewArea(name string, rings ...orb.Ring) *Area {
	return &Area{Name: name, rings: rings}
}

// Rings returns the area's rings in file order.
func (a *Area) Rings() []orb.Ring { return a.rings }

// BoundingBox returns the unprojected bounding box of all rings.
func (a *Area) BoundingBox() orb.Bound {
	var r Rect
	for _, ring := range a.rings {
		for _, p := range ring {
			r = r.Extend(p)
		}
	}
	return r.Bound()
}

// ProjectedBounds returns the bounding box corners projected to web mercator.
func (a *Area) ProjectedBounds() Rect {
	box := a.BoundingBox()
	sw := LatLng{Lat: box.Min.Y(), Lng: box.Min.X()}
	ne := LatLng{Lat: box.Max.Y(), Lng: box.Max.X()}
	return NewRect(sw.WebMercator(), ne.WebMercator())
}

// ImportOSMPoly reads an OSM POLY file at path.
func ImportOSMPoly(path string) (*Area, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found -- '%s'", path)
	}
	defer f.Close()
	return ReadOSMPoly(f)
}

// ReadOSMPoly decodes an OSM POLY document:
//
//	area name
//	1
//	   8.5 48.7
//	   9.2 48.7
//	   9.2 48.9
//	END
//	END
//
// Each section is a ring terminated by END; a final END closes the file.
// Rings are closed if the file does not repeat the first point.
func ReadOSMPoly(r io.Reader) (*Area, error) {
	sc := bufio.NewScanner(r)
	line := 0
	next := func() (string, bool) {
		for sc.Scan() {
			line++
			if s := strings.TrimSpace(sc.Text()); s != "" {
				return s, true
			}
		}
		return "", false
	}

	name, ok := next()
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "poly: empty input")
	}
	area := &Area{Name: name}

	for {
		section, ok := next()
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "poly: missing final END")
		}
		if section == "END" {
			break
		}
		ring, err := readRing(next, &line)
		if err != nil {
			return nil, err
		}
		area.rings = append(area.rings, ring)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("poly: %w", err)
	}
	return area, nil
}

func readRing(next func() (string, bool), line *int) (orb.Ring, error) {
	var ring orb.Ring
	for {
		s, ok := next()
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "poly: unterminated ring")
		}
		if s == "END" {
			break
		}
		fields := strings.Fields(s)
		if len(fields) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "poly: line %d: expected two coordinates", *line)
		}
		lng, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedNumber, err, "poly: line %d", *line)
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedNumber, err, "poly: line %d", *line)
		}
		ring = append(ring, orb.Point{lng, lat})
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	return ring, nil
}
