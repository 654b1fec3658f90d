package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/netdraw/pkg/geo"
	"github.com/matzehuels/netdraw/pkg/graph"
)

// SnapshotVersion is the format version written by WriteJSON.
const SnapshotVersion = 1

type snapshot struct {
	Version  int      `json:"version"`
	Vertices []vertex `json:"vertices"`
	Edges    []edge   `json:"edges"`
}

type vertex struct {
	ID  int     `json:"id"`
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type edge struct {
	Tail       int          `json:"tail"`
	Head       int          `json:"head"`
	ID         *int         `json:"id,omitempty"`
	Length     int          `json:"length"`
	Capacity   int          `json:"capacity"`
	Speed      int          `json:"speed"`
	TravelTime int          `json:"travel_time"`
	Lanes      *int         `json:"lanes,omitempty"`
	Geometry   []geo.LatLng `json:"geometry,omitempty"`
}

// WriteJSON encodes g as a snapshot and writes it to w.
// The output can be re-imported with [NewJSONImporter] or [ImportJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := snapshot{
		Version:  SnapshotVersion,
		Vertices: make([]vertex, g.NumVertices()),
		Edges:    make([]edge, g.NumEdges()),
	}
	for v := range out.Vertices {
		vx := g.Vertex(v)
		out.Vertices[v] = vertex{ID: vx.ExternalID, Lat: vx.LatLng.Lat, Lng: vx.LatLng.Lng}
	}
	for i, e := range g.Edges() {
		ed := edge{
			Tail:       e.Tail,
			Head:       e.Head,
			Length:     e.Length,
			Capacity:   e.Capacity,
			Speed:      e.FreeFlowSpeed,
			TravelTime: e.TravelTime,
			Geometry:   e.Geometry,
		}
		if e.ID >= 0 {
			id := e.ID
			ed.ID = &id
		}
		if e.NumLanes != 1 {
			lanes := e.NumLanes
			ed.Lanes = &lanes
		}
		out.Edges[i] = ed
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a snapshot file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
