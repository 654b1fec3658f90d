// Package attr defines typed vertex and edge attributes and the registry an
// import format uses to declare which of them it can supply.
//
// # Overview
//
// A graph builder does not know which attributes a given file format carries.
// Instead of asking, it queries every attribute it needs through the format's
// [Registry]. The format decides once, when it sets up its registry, whether an
// attribute maps to a real accessor over the current record or falls back to
// the attribute's declared default:
//
//	r := attr.NewRegistry()
//	attr.Provide(r, attr.Length, func() int { return cur.length })
//
//	attr.Value(r, attr.Length)   // accessor result
//	attr.Value(r, attr.NumLanes) // 1, the declared default
//
// New attributes are declared with [New] and are usable with any registry.
package attr

import (
	"fmt"
	"slices"

	"github.com/paulmach/orb"

	"github.com/matzehuels/netdraw/pkg/geo"
)

// Attribute describes a named, typed value attached to a vertex or an edge.
// The zero value is not usable; declare attributes with New.
type Attribute[T any] struct {
	name string
	def  T
}

// New declares an attribute with the given name and default value.
// Names must be unique across all attributes used with one Registry.
func New[T any](name string, def T) Attribute[T] {
	return Attribute[T]{name: name, def: def}
}

// Name returns the attribute's identifier.
func (a Attribute[T]) Name() string { return a.name }

// Default returns the value used when a format does not supply the attribute.
func (a Attribute[T]) Default() T { return a.def }

// Built-in attributes.
var (
	// VertexID is the identifier a vertex has in the source data.
	VertexID = New("vertex_id", -1)
	// LatLng is the geographic position of a vertex.
	LatLng = New("lat_lng", geo.LatLng{})
	// Coordinate is the raw planar position of a vertex as stored in the source.
	Coordinate = New("coordinate", orb.Point{})

	// Length is the edge length in metres.
	Length = New("length", 0)
	// Capacity is the number of vehicles per hour the edge can carry.
	Capacity = New("capacity", 0)
	// FreeFlowSpeed is the speed in km/h on an empty edge.
	FreeFlowSpeed = New("free_flow_speed", 0)
	// TravelTime is the free-flow traversal time of an edge.
	TravelTime = New("travel_time", 0)
	// NumLanes is the number of lanes of an edge.
	NumLanes = New("num_lanes", 1)
	// RoadGeometry is the sequence of intermediate points of an edge.
	RoadGeometry = New[[]geo.LatLng]("road_geometry", nil)
	// EdgeID is a dense sequential edge identifier assigned after loading.
	EdgeID = New("edge_id", -1)
)

// Registry maps attribute names to accessors over a format's current record.
// It is built once per importer and is not safe for concurrent mutation.
type Registry struct {
	accessors map[string]any
}

// NewRegistry returns an empty registry; every lookup yields the default.
func NewRegistry() *Registry {
	return &Registry{accessors: make(map[string]any)}
}

// Provide binds attribute a to fn. Binding an attribute twice panics.
func Provide[T any](r *Registry, a Attribute[T], fn func() T) {
	if _, dup := r.accessors[a.name]; dup {
		panic(fmt.Sprintf("attr: %s provided twice", a.name))
	}
	r.accessors[a.name] = fn
}

// Value returns the value of a for the current record, or a's default if the
// registry does not provide it. A nil registry provides nothing.
func Value[T any](r *Registry, a Attribute[T]) T {
	if r == nil {
		return a.def
	}
	if fn, ok := r.accessors[a.name].(func() T); ok {
		return fn()
	}
	return a.def
}

// Provides reports whether the registry binds the named attribute.
func (r *Registry) Provides(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.accessors[name]
	return ok
}

// Names returns the names of all bound attributes in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.accessors))
	for n := range r.accessors {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
