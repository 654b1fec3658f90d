// Package importer reads road networks from tabular sources.
//
// A network is stored as two CSV tables in one directory:
//
//	vertices.csv  vert_id,xcoord,ycoord[,...]
//	edges.csv     edge_tail,edge_head,length,capacity,speed[,...]
//
// Columns may appear in any order and extra columns are ignored. xcoord holds
// the latitude and ycoord the longitude of a vertex. Edge endpoints reference
// vertex IDs from vertices.csv; vertex IDs need not be dense or zero-based.
//
// [CSV] implements graph.Importer and can be handed directly to graph.Build.
package importer

import (
	"errors"
	"math"
	"path/filepath"

	"github.com/paulmach/orb"

	"github.com/matzehuels/netdraw/internal/tabular"
	"github.com/matzehuels/netdraw/pkg/attr"
	nderrors "github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/geo"
	"github.com/matzehuels/netdraw/pkg/graph"
)

// File names inside a CSV network directory.
const (
	VertexFile = "vertices.csv"
	EdgeFile   = "edges.csv"
)

// DefaultVertexIDColumn names the vertex ID column unless overridden.
const DefaultVertexIDColumn = "vert_id"

var _ graph.Importer = (*CSV)(nil)

// CSVOption configures a CSV importer.
type CSVOption func(*CSV)

// WithVertexIDColumn sets the name of the vertex ID column.
func WithVertexIDColumn(name string) CSVOption {
	return func(c *CSV) { c.idColumn = name }
}

// CSV imports a network from vertices.csv and edges.csv. Each instance
// performs a single import pass.
type CSV struct {
	dir      string
	period   float64
	idColumn string

	vertices *tabular.Table
	edges    *tabular.Table
	ids      map[int]int
	nextID   int
	reg      *attr.Registry

	vertex struct {
		externalID int
		x, y       float64
	}
	edge struct {
		tail, head int
		length     int
		capacity   float64
		speed      int
	}
}

// NewCSV returns an importer for the tables in dir. Raw capacities are
// expressed per analysisPeriod hours and are converted to vehicles per hour.
func NewCSV(dir string, analysisPeriod float64, opts ...CSVOption) *CSV {
	c := &CSV{dir: dir, period: analysisPeriod, idColumn: DefaultVertexIDColumn}
	for _, opt := range opts {
		opt(c)
	}
	c.reg = attr.NewRegistry()
	attr.Provide(c.reg, attr.VertexID, func() int { return c.vertex.externalID })
	attr.Provide(c.reg, attr.LatLng, func() geo.LatLng {
		return geo.LatLng{Lat: c.vertex.x, Lng: c.vertex.y}
	})
	attr.Provide(c.reg, attr.Coordinate, func() orb.Point { return orb.Point{c.vertex.x, c.vertex.y} })
	attr.Provide(c.reg, attr.Length, func() int { return c.edge.length })
	attr.Provide(c.reg, attr.Capacity, func() int { return int(math.Round(c.edge.capacity / c.period)) })
	attr.Provide(c.reg, attr.FreeFlowSpeed, func() int { return c.edge.speed })
	attr.Provide(c.reg, attr.TravelTime, func() int { return TravelTime(c.edge.length, c.edge.speed) })
	return c
}

// TravelTime returns round(36 * length / speed), or graph.Infinity if the
// speed is zero.
func TravelTime(length, speed int) int {
	if speed == 0 {
		return graph.Infinity
	}
	return int(math.Round(36 * float64(length) / float64(speed)))
}

// Init opens both tables and validates their headers.
func (c *CSV) Init() (err error) {
	if !(c.period > 0) {
		return nderrors.New(nderrors.ErrCodeInvalidInput, "analysis period must be positive, got %v", c.period)
	}
	defer func() {
		if err != nil {
			c.Close()
		}
	}()

	if c.vertices, err = tabular.Open(filepath.Join(c.dir, VertexFile)); err != nil {
		return err
	}
	if err = c.vertices.Require(c.idColumn, "xcoord", "ycoord"); err != nil {
		return err
	}
	if c.edges, err = tabular.Open(filepath.Join(c.dir, EdgeFile)); err != nil {
		return err
	}
	if err = c.edges.Require("edge_tail", "edge_head", "length", "capacity", "speed"); err != nil {
		return err
	}
	c.ids = make(map[int]int)
	c.nextID = 0
	return nil
}

// NextVertex reads the next vertex and assigns it the next internal ID.
func (c *CSV) NextVertex() (bool, error) {
	t := c.vertices
	ok, err := t.Next()
	if !ok || err != nil {
		return false, err
	}
	ext, err := t.Int(c.idColumn)
	if err != nil {
		return false, err
	}
	x, err := t.Float("xcoord")
	if err != nil {
		return false, err
	}
	y, err := t.Float("ycoord")
	if err != nil {
		return false, err
	}
	if _, dup := c.ids[ext]; dup {
		return false, t.Errorf(nderrors.ErrCodeDuplicateVertex, "duplicate vertex ID %d", ext)
	}
	c.ids[ext] = c.nextID
	c.nextID++
	c.vertex.externalID, c.vertex.x, c.vertex.y = ext, x, y
	return true, nil
}

// VertexID returns the internal ID of the vertex read last.
func (c *CSV) VertexID() int { return c.nextID - 1 }

// NextEdge reads the next edge and resolves its endpoints.
func (c *CSV) NextEdge() (bool, error) {
	t := c.edges
	ok, err := t.Next()
	if !ok || err != nil {
		return false, err
	}

	var tail, head int
	for _, end := range []struct {
		column string
		dst    *int
	}{{"edge_tail", &tail}, {"edge_head", &head}} {
		ext, err := t.Int(end.column)
		if err != nil {
			return false, err
		}
		id, ok := c.ids[ext]
		if !ok {
			return false, t.Errorf(nderrors.ErrCodeUnresolvedEndpoint, "%s %d is not a known vertex", end.column, ext)
		}
		*end.dst = id
	}

	var length, capacity, speed float64
	for _, f := range []struct {
		column string
		dst    *float64
	}{{"length", &length}, {"capacity", &capacity}, {"speed", &speed}} {
		v, err := t.Float(f.column)
		if err != nil {
			return false, err
		}
		if v < 0 {
			return false, t.Errorf(nderrors.ErrCodeNegativeField, "%s must not be negative, got %v", f.column, v)
		}
		*f.dst = v
	}

	c.edge.tail, c.edge.head = tail, head
	c.edge.length = int(math.Round(length))
	c.edge.capacity = capacity
	c.edge.speed = int(math.Round(speed))
	return true, nil
}

// EdgeTail returns the internal ID of the tail of the edge read last.
func (c *CSV) EdgeTail() int { return c.edge.tail }

// EdgeHead returns the internal ID of the head of the edge read last.
func (c *CSV) EdgeHead() int { return c.edge.head }

// Attributes returns the registry answering queries for the current record.
func (c *CSV) Attributes() *attr.Registry { return c.reg }

// Close releases both tables and drops the ID mapping.
func (c *CSV) Close() error {
	err := errors.Join(c.vertices.Close(), c.edges.Close())
	c.vertices, c.edges, c.ids = nil, nil, nil
	return err
}
