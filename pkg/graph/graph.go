package graph

import (
	"math"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/paulmach/orb"

	"github.com/matzehuels/netdraw/pkg/attr"
	"github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/geo"
)

// Infinity is the travel time of an edge that cannot be traversed.
const Infinity = math.MaxInt32 / 2

// Importer is the pull protocol every import format implements.
//
// Build calls Init once, then NextVertex until it reports false, then NextEdge
// until it reports false, and finally Close. After a successful NextVertex or
// NextEdge, the Attributes registry answers queries for that record.
type Importer interface {
	// Init opens the underlying sources and validates their structure.
	Init() error
	// NextVertex advances to the next vertex record.
	NextVertex() (bool, error)
	// VertexID returns the dense internal ID of the current vertex.
	VertexID() int
	// NextEdge advances to the next edge record.
	NextEdge() (bool, error)
	// EdgeTail returns the internal ID of the current edge's tail.
	EdgeTail() int
	// EdgeHead returns the internal ID of the current edge's head.
	EdgeHead() int
	// Attributes returns the registry answering queries for the current record.
	Attributes() *attr.Registry
	// Close releases all resources. It is safe to call after a failed Init.
	Close() error
}

// Vertex holds the attributes stored per vertex.
type Vertex struct {
	ExternalID int        // identifier in the source data
	LatLng     geo.LatLng // geographic position
	Coordinate orb.Point  // raw position as stored in the source
}

// Edge holds the attributes stored per edge.
type Edge struct {
	Tail          int
	Head          int
	ID            int // dense edge ID, -1 until assigned
	Length        int
	Capacity      int
	FreeFlowSpeed int
	TravelTime    int
	NumLanes      int
	Geometry      []geo.LatLng
}

// Fingerprint identifies a network by its size.
type Fingerprint struct {
	NumVertices int
	NumEdges    int
}

// Graph is a static directed graph with edges stored in tail order.
//
// The zero value is an empty graph. Graph is not safe for concurrent mutation;
// the only mutating method is SetEdgeID.
type Graph struct {
	vertices []Vertex
	edges    []Edge
	firstOut []int // len(vertices)+1 offsets into edges
}

// New returns a graph over the given vertices and edges. Edge endpoints must be
// valid vertex indices. The edge slice is sorted by tail in place.
func New(vertices []Vertex, edges []Edge) (*Graph, error) {
	n := len(vertices)
	for i, e := range edges {
		if e.Tail < 0 || e.Tail >= n || e.Head < 0 || e.Head >= n {
			return nil, errors.New(errors.ErrCodeUnresolvedEndpoint,
				"edge %d: endpoint (%d,%d) out of range [0,%d)", i, e.Tail, e.Head, n)
		}
	}
	slices.SortStableFunc(edges, func(a, b Edge) int { return a.Tail - b.Tail })

	firstOut := make([]int, n+1)
	for _, e := range edges {
		firstOut[e.Tail+1]++
	}
	for v := range n {
		firstOut[v+1] += firstOut[v]
	}
	return &Graph{vertices: vertices, edges: edges, firstOut: firstOut}, nil
}

// Build materializes a graph from imp. The importer is closed on return.
func Build(imp Importer) (g *Graph, err error) {
	defer func() {
		if cerr := imp.Close(); cerr != nil && err == nil {
			g, err = nil, cerr
		}
	}()
	if err := imp.Init(); err != nil {
		return nil, err
	}
	reg := imp.Attributes()

	var vertices []Vertex
	for {
		ok, err := imp.NextVertex()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if id := imp.VertexID(); id != len(vertices) {
			return nil, errors.New(errors.ErrCodeInternal,
				"importer assigned vertex ID %d, expected %d", id, len(vertices))
		}
		vertices = append(vertices, Vertex{
			ExternalID: attr.Value(reg, attr.VertexID),
			LatLng:     attr.Value(reg, attr.LatLng),
			Coordinate: attr.Value(reg, attr.Coordinate),
		})
	}

	var edges []Edge
	for {
		ok, err := imp.NextEdge()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		edges = append(edges, Edge{
			Tail:          imp.EdgeTail(),
			Head:          imp.EdgeHead(),
			ID:            attr.Value(reg, attr.EdgeID),
			Length:        attr.Value(reg, attr.Length),
			Capacity:      attr.Value(reg, attr.Capacity),
			FreeFlowSpeed: attr.Value(reg, attr.FreeFlowSpeed),
			TravelTime:    attr.Value(reg, attr.TravelTime),
			NumLanes:      attr.Value(reg, attr.NumLanes),
			Geometry:      attr.Value(reg, attr.RoadGeometry),
		})
	}
	return New(vertices, edges)
}

// NumVertices returns the number of vertices.
func (g *Graph) NumVertices() int { return len(g.vertices) }

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Fingerprint returns the vertex and edge counts.
func (g *Graph) Fingerprint() Fingerprint {
	return Fingerprint{NumVertices: len(g.vertices), NumEdges: len(g.edges)}
}

// Vertex returns vertex v.
func (g *Graph) Vertex(v int) Vertex { return g.vertices[v] }

// Edge returns the edge at storage position e.
func (g *Graph) Edge(e int) Edge { return g.edges[e] }

// Edges returns all edges in storage order. The slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// EdgesFrom returns the outgoing edges of v. The slice must not be modified.
func (g *Graph) EdgesFrom(v int) []Edge {
	if len(g.firstOut) == 0 {
		return nil
	}
	return g.edges[g.firstOut[v]:g.firstOut[v+1]]
}

// OutDegree returns the number of edges leaving v.
func (g *Graph) OutDegree(v int) int { return g.firstOut[v+1] - g.firstOut[v] }

// SetEdgeID assigns the dense ID of the edge at storage position e.
func (g *Graph) SetEdgeID(e, id int) { g.edges[e].ID = id }

// ExtractVertexInducedSubgraph returns the subgraph on the vertices set in keep.
// Kept vertices are renumbered densely in their original order; edges keep all
// attributes and their relative order.
func (g *Graph) ExtractVertexInducedSubgraph(keep *bitset.BitSet) *Graph {
	remap := make([]int, len(g.vertices))
	vertices := make([]Vertex, 0, keep.Count())
	for v := range g.vertices {
		if keep.Test(uint(v)) {
			remap[v] = len(vertices)
			vertices = append(vertices, g.vertices[v])
		} else {
			remap[v] = -1
		}
	}

	var edges []Edge
	for _, e := range g.edges {
		if remap[e.Tail] < 0 || remap[e.Head] < 0 {
			continue
		}
		e.Tail, e.Head = remap[e.Tail], remap[e.Head]
		edges = append(edges, e)
	}
	sub, _ := New(vertices, edges)
	return sub
}
