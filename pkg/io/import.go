package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/netdraw/pkg/attr"
	"github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/geo"
	"github.com/matzehuels/netdraw/pkg/graph"
)

var _ graph.Importer = (*JSONImporter)(nil)

// JSONImporter streams a snapshot through the graph.Importer protocol.
// The whole document is decoded by Init; the Next methods then walk it.
type JSONImporter struct {
	r      io.Reader
	closer io.Closer
	data   snapshot
	vi, ei int
	reg    *attr.Registry
}

// NewJSONImporter returns an importer reading a snapshot from r.
// The importer does not close r.
func NewJSONImporter(r io.Reader) *JSONImporter {
	j := &JSONImporter{r: r, vi: -1, ei: -1}
	j.reg = attr.NewRegistry()
	attr.Provide(j.reg, attr.VertexID, func() int { return j.data.Vertices[j.vi].ID })
	attr.Provide(j.reg, attr.LatLng, func() geo.LatLng {
		v := j.data.Vertices[j.vi]
		return geo.LatLng{Lat: v.Lat, Lng: v.Lng}
	})
	attr.Provide(j.reg, attr.EdgeID, func() int {
		if id := j.data.Edges[j.ei].ID; id != nil {
			return *id
		}
		return attr.EdgeID.Default()
	})
	attr.Provide(j.reg, attr.Length, func() int { return j.data.Edges[j.ei].Length })
	attr.Provide(j.reg, attr.Capacity, func() int { return j.data.Edges[j.ei].Capacity })
	attr.Provide(j.reg, attr.FreeFlowSpeed, func() int { return j.data.Edges[j.ei].Speed })
	attr.Provide(j.reg, attr.TravelTime, func() int { return j.data.Edges[j.ei].TravelTime })
	attr.Provide(j.reg, attr.NumLanes, func() int {
		if l := j.data.Edges[j.ei].Lanes; l != nil {
			return *l
		}
		return attr.NumLanes.Default()
	})
	attr.Provide(j.reg, attr.RoadGeometry, func() []geo.LatLng { return j.data.Edges[j.ei].Geometry })
	return j
}

// Init decodes the snapshot and validates its version and edge endpoints.
func (j *JSONImporter) Init() error {
	if err := json.NewDecoder(j.r).Decode(&j.data); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode snapshot")
	}
	if j.data.Version != SnapshotVersion {
		return errors.New(errors.ErrCodeInvalidInput, "unsupported snapshot version %d", j.data.Version)
	}
	n := len(j.data.Vertices)
	for i, e := range j.data.Edges {
		if e.Tail < 0 || e.Tail >= n || e.Head < 0 || e.Head >= n {
			return errors.New(errors.ErrCodeUnresolvedEndpoint, "snapshot edge %d: endpoint (%d,%d) is not a vertex", i, e.Tail, e.Head)
		}
		if e.Length < 0 || e.Capacity < 0 || e.Speed < 0 {
			return errors.New(errors.ErrCodeNegativeField, "snapshot edge %d: negative length, capacity or speed", i)
		}
	}
	return nil
}

// NextVertex advances to the next vertex.
func (j *JSONImporter) NextVertex() (bool, error) {
	if j.vi+1 >= len(j.data.Vertices) {
		return false, nil
	}
	j.vi++
	return true, nil
}

// VertexID returns the internal ID of the current vertex.
func (j *JSONImporter) VertexID() int { return j.vi }

// NextEdge advances to the next edge.
func (j *JSONImporter) NextEdge() (bool, error) {
	if j.ei+1 >= len(j.data.Edges) {
		return false, nil
	}
	j.ei++
	return true, nil
}

// EdgeTail returns the tail of the current edge.
func (j *JSONImporter) EdgeTail() int { return j.data.Edges[j.ei].Tail }

// EdgeHead returns the head of the current edge.
func (j *JSONImporter) EdgeHead() int { return j.data.Edges[j.ei].Head }

// Attributes returns the registry answering queries for the current record.
func (j *JSONImporter) Attributes() *attr.Registry { return j.reg }

// Close drops the decoded document and closes the source if the importer
// opened it.
func (j *JSONImporter) Close() error {
	j.data = snapshot{}
	if j.closer == nil {
		return nil
	}
	err := j.closer.Close()
	j.closer = nil
	return err
}

// ReadJSON builds a graph from the snapshot in r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	return graph.Build(NewJSONImporter(r))
}

// ImportJSON builds a graph from the snapshot file at path.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found -- '%s'", path)
	}
	imp := NewJSONImporter(f)
	imp.closer = f
	return graph.Build(imp)
}
