package graph

import (
	"slices"
	"testing"

	"github.com/bits-and-blooms/bitset"

	"github.com/matzehuels/netdraw/pkg/attr"
	"github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/geo"
)

// sliceImporter serves vertices and edges from memory and provides a subset
// of the built-in attributes.
type sliceImporter struct {
	ids    []int
	edges  [][3]int // tail, head, length
	vi, ei int
	reg    *attr.Registry
	closed bool
	// initErr is returned by Init when set.
	initErr error
}

func (s *sliceImporter) Init() error {
	s.vi, s.ei = -1, -1
	s.reg = attr.NewRegistry()
	attr.Provide(s.reg, attr.VertexID, func() int { return s.ids[s.vi] })
	attr.Provide(s.reg, attr.LatLng, func() geo.LatLng { return geo.LatLng{Lat: float64(s.vi)} })
	attr.Provide(s.reg, attr.Length, func() int { return s.edges[s.ei][2] })
	return s.initErr
}

func (s *sliceImporter) NextVertex() (bool, error) {
	s.vi++
	return s.vi < len(s.ids), nil
}

func (s *sliceImporter) VertexID() int { return s.vi }

func (s *sliceImporter) NextEdge() (bool, error) {
	s.ei++
	return s.ei < len(s.edges), nil
}

func (s *sliceImporter) EdgeTail() int              { return s.edges[s.ei][0] }
func (s *sliceImporter) EdgeHead() int              { return s.edges[s.ei][1] }
func (s *sliceImporter) Attributes() *attr.Registry { return s.reg }
func (s *sliceImporter) Close() error               { s.closed = true; return nil }

func TestBuild(t *testing.T) {
	imp := &sliceImporter{
		ids:   []int{10, 11, 12},
		edges: [][3]int{{1, 2, 500}, {0, 1, 1000}, {1, 0, 7}},
	}
	g, err := Build(imp)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !imp.closed {
		t.Error("importer not closed")
	}
	if got := g.Fingerprint(); got != (Fingerprint{NumVertices: 3, NumEdges: 3}) {
		t.Errorf("Fingerprint = %+v", got)
	}
	for v := range g.NumVertices() {
		if got := g.Vertex(v).ExternalID; got != 10+v {
			t.Errorf("vertex %d ExternalID = %d", v, got)
		}
		if got := g.Vertex(v).LatLng.Lat; got != float64(v) {
			t.Errorf("vertex %d Lat = %v", v, got)
		}
	}

	// Stable tail order: (0,1) then (1,2) before (1,0) as read.
	var got [][2]int
	for _, e := range g.Edges() {
		got = append(got, [2]int{e.Tail, e.Head})
	}
	want := [][2]int{{0, 1}, {1, 2}, {1, 0}}
	if !slices.Equal(got, want) {
		t.Errorf("edges = %v, want %v", got, want)
	}

	e := g.Edge(0)
	if e.Length != 1000 {
		t.Errorf("Length = %d, want 1000", e.Length)
	}
	if e.NumLanes != 1 || e.ID != -1 || e.Geometry != nil {
		t.Errorf("defaults not applied: %+v", e)
	}
	if g.OutDegree(1) != 2 || g.OutDegree(2) != 0 {
		t.Errorf("OutDegree = %d/%d, want 2/0", g.OutDegree(1), g.OutDegree(2))
	}
	if len(g.EdgesFrom(2)) != 0 {
		t.Errorf("EdgesFrom(2) = %v, want empty", g.EdgesFrom(2))
	}
}

func TestBuildRejectsOutOfRangeEndpoint(t *testing.T) {
	imp := &sliceImporter{ids: []int{1}, edges: [][3]int{{0, 3, 1}}}
	_, err := Build(imp)
	if !errors.Is(err, errors.ErrCodeUnresolvedEndpoint) {
		t.Errorf("err = %v, want UNRESOLVED_ENDPOINT", err)
	}
	if !imp.closed {
		t.Error("importer not closed after failure")
	}
}

func TestBuildClosesOnInitFailure(t *testing.T) {
	imp := &sliceImporter{initErr: errors.New(errors.ErrCodeMalformedHeader, "boom")}
	if _, err := Build(imp); !errors.Is(err, errors.ErrCodeMalformedHeader) {
		t.Errorf("err = %v", err)
	}
	if !imp.closed {
		t.Error("importer not closed after Init failure")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	build := func() *Graph {
		g, err := Build(&sliceImporter{
			ids:   []int{42, 7, 99, 3},
			edges: [][3]int{{3, 0, 1}, {0, 1, 2}, {2, 3, 3}, {0, 2, 4}},
		})
		if err != nil {
			t.Fatal(err)
		}
		return g
	}
	a, b := build(), build()
	if !slices.EqualFunc(a.Edges(), b.Edges(), func(x, y Edge) bool {
		return x.Tail == y.Tail && x.Head == y.Head && x.Length == y.Length
	}) {
		t.Error("two imports of the same input differ")
	}
	for v := range a.NumVertices() {
		if a.Vertex(v) != b.Vertex(v) {
			t.Errorf("vertex %d differs", v)
		}
	}
}

func TestExtractVertexInducedSubgraph(t *testing.T) {
	g, err := New(
		[]Vertex{{ExternalID: 0}, {ExternalID: 1}, {ExternalID: 2}, {ExternalID: 3}},
		[]Edge{
			{Tail: 0, Head: 1, ID: 0},
			{Tail: 1, Head: 2, ID: 1},
			{Tail: 2, Head: 3, ID: 2},
			{Tail: 3, Head: 0, ID: 3},
		},
	)
	if err != nil {
		t.Fatal(err)
	}
	keep := bitset.New(4).Set(0).Set(2).Set(3)
	sub := g.ExtractVertexInducedSubgraph(keep)

	if sub.NumVertices() != 3 || sub.NumEdges() != 2 {
		t.Fatalf("sub = %+v, want 3 vertices 2 edges", sub.Fingerprint())
	}
	if got := sub.Vertex(1).ExternalID; got != 2 {
		t.Errorf("renumbered vertex 1 ExternalID = %d, want 2", got)
	}
	var ids []int
	for _, e := range sub.Edges() {
		if e.Tail >= sub.NumVertices() || e.Head >= sub.NumVertices() {
			t.Errorf("edge %+v out of range", e)
		}
		ids = append(ids, e.ID)
	}
	if !slices.Equal(ids, []int{2, 3}) {
		t.Errorf("edge IDs = %v, want [2 3] (preserved)", ids)
	}
}

func TestStronglyConnectedComponents(t *testing.T) {
	// Cycle 0-1-2, cycle 3-4, sink 5, 2->3 and 4->5 bridges.
	g, err := New(make([]Vertex, 6), []Edge{
		{Tail: 0, Head: 1}, {Tail: 1, Head: 2}, {Tail: 2, Head: 0},
		{Tail: 2, Head: 3},
		{Tail: 3, Head: 4}, {Tail: 4, Head: 3},
		{Tail: 4, Head: 5},
	})
	if err != nil {
		t.Fatal(err)
	}
	scc := StronglyConnectedComponents(g)
	if scc.NumComponents() != 3 {
		t.Fatalf("components = %d, want 3", scc.NumComponents())
	}
	same := func(a, b int) bool { return scc.Component(a) == scc.Component(b) }
	if !same(0, 1) || !same(1, 2) || !same(3, 4) || same(2, 3) || same(4, 5) {
		t.Error("wrong partition")
	}
	if scc.Size(scc.Largest()) != 3 {
		t.Errorf("largest size = %d, want 3", scc.Size(scc.Largest()))
	}

	mask := scc.LargestMask()
	if mask.Count() != 3 || !mask.Test(0) || !mask.Test(1) || !mask.Test(2) {
		t.Errorf("LargestMask = %v", mask)
	}
}

func TestStronglyConnectedComponentsLongPath(t *testing.T) {
	const n = 100000
	edges := make([]Edge, 0, n)
	for v := range n - 1 {
		edges = append(edges, Edge{Tail: v, Head: v + 1})
	}
	edges = append(edges, Edge{Tail: n - 1, Head: 0})
	g, err := New(make([]Vertex, n), edges)
	if err != nil {
		t.Fatal(err)
	}
	scc := StronglyConnectedComponents(g)
	if scc.NumComponents() != 1 || scc.Size(0) != n {
		t.Errorf("components = %d, want one of size %d", scc.NumComponents(), n)
	}
}

func TestEmptyGraph(t *testing.T) {
	var g Graph
	if g.NumVertices() != 0 || g.EdgesFrom(0) != nil {
		t.Error("zero Graph should be empty")
	}
	scc := StronglyConnectedComponents(&g)
	if scc.Largest() != -1 || scc.LargestMask().Count() != 0 {
		t.Error("empty graph should have no components")
	}
}
