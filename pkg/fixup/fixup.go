// Package fixup applies named, versioned corrections to specific road networks.
//
// Raw network exports sometimes contain a handful of vertices that are
// disconnected from the rest or lie far outside the region. A [Fixup] removes
// them and optionally keeps only the largest strongly connected component.
// Because the excluded vertex IDs only make sense for one network, every
// fixup carries the vertex and edge counts of that network and refuses to run
// on anything else.
//
// Fixups are declared in TOML:
//
//	[[fixup]]
//	name = "stuttgart"
//	version = 1
//	num_vertices = 134663
//	num_edges = 307759
//	exclude_vertices = [121490, 121491]
//	largest_scc = true
//
// [Builtin] returns the fixups shipped with netdraw; [LoadFile] reads
// additional ones.
package fixup

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bits-and-blooms/bitset"
	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/graph"
)

//go:embed builtin.toml
var builtinTOML string

// Fixup describes a correction for one specific network.
type Fixup struct {
	Name            string `toml:"name"`
	Version         int    `toml:"version"`
	Description     string `toml:"description"`
	NumVertices     int    `toml:"num_vertices"`
	NumEdges        int    `toml:"num_edges"`
	ExcludeVertices []int  `toml:"exclude_vertices"`
	LargestSCC      bool   `toml:"largest_scc"`
}

// Ref returns the fixup's "name@version" reference.
func (f Fixup) Ref() string { return fmt.Sprintf("%s@%d", f.Name, f.Version) }

// Fingerprint returns the network size the fixup expects.
func (f Fixup) Fingerprint() graph.Fingerprint {
	return graph.Fingerprint{NumVertices: f.NumVertices, NumEdges: f.NumEdges}
}

// Apply checks that g is the network f was written for, removes the excluded
// vertices and, if requested, keeps only the largest strongly connected
// component of the rest.
func Apply(g *graph.Graph, f Fixup) (*graph.Graph, error) {
	if got := g.Fingerprint(); got != f.Fingerprint() {
		return nil, errors.New(errors.ErrCodeFingerprintMismatch,
			"fixup %s expects %d vertices and %d edges, network has %d and %d",
			f.Ref(), f.NumVertices, f.NumEdges, got.NumVertices, got.NumEdges)
	}

	n := uint(g.NumVertices())
	keep := bitset.New(n).FlipRange(0, n)
	for _, v := range f.ExcludeVertices {
		if v < 0 || uint(v) >= n {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"fixup %s excludes vertex %d outside [0,%d)", f.Ref(), v, n)
		}
		keep.Clear(uint(v))
	}
	out := g.ExtractVertexInducedSubgraph(keep)
	if f.LargestSCC {
		out = out.ExtractVertexInducedSubgraph(graph.StronglyConnectedComponents(out).LargestMask())
	}
	return out, nil
}

// Registry holds fixups by name, each with its versions in ascending order.
type Registry struct {
	byName map[string]*redblacktree.Tree
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*redblacktree.Tree)}
}

// Builtin returns a fresh registry with the fixups shipped with netdraw.
func Builtin() *Registry {
	r, err := Load(strings.NewReader(builtinTOML))
	if err != nil {
		panic(fmt.Sprintf("fixup: builtin registry: %v", err))
	}
	return r
}

// LoadFile reads a registry from a TOML file.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found -- '%s'", path)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a registry from TOML.
func Load(r io.Reader) (*Registry, error) {
	var doc struct {
		Fixups []Fixup `toml:"fixup"`
	}
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode fixups")
	}
	reg := NewRegistry()
	for _, f := range doc.Fixups {
		if err := reg.Add(f); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Add registers f. Names must be non-empty, versions positive, and each
// name@version unique.
func (r *Registry) Add(f Fixup) error {
	if f.Name == "" || strings.Contains(f.Name, "@") {
		return errors.New(errors.ErrCodeInvalidInput, "fixup: invalid name %q", f.Name)
	}
	if f.Version <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "fixup %s: version must be positive", f.Name)
	}
	versions, ok := r.byName[f.Name]
	if !ok {
		versions = redblacktree.NewWithIntComparator()
		r.byName[f.Name] = versions
	}
	if _, dup := versions.Get(f.Version); dup {
		return errors.New(errors.ErrCodeInvalidInput, "fixup %s defined twice", f.Ref())
	}
	versions.Put(f.Version, f)
	return nil
}

// Merge adds every fixup of o to r.
func (r *Registry) Merge(o *Registry) error {
	for _, f := range o.All() {
		if err := r.Add(f); err != nil {
			return err
		}
	}
	return nil
}

// Lookup resolves "name" to the latest version of a fixup and "name@version"
// to that exact version.
func (r *Registry) Lookup(ref string) (Fixup, error) {
	name, ver, pinned := strings.Cut(ref, "@")
	versions, ok := r.byName[name]
	if !ok {
		return Fixup{}, errors.New(errors.ErrCodeInvalidInput, "unknown fixup %q", name)
	}
	if !pinned {
		return versions.Right().Value.(Fixup), nil
	}
	v, err := strconv.Atoi(ver)
	if err != nil {
		return Fixup{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "fixup %q: bad version", ref)
	}
	f, ok := versions.Get(v)
	if !ok {
		return Fixup{}, errors.New(errors.ErrCodeInvalidInput, "unknown fixup version %q", ref)
	}
	return f.(Fixup), nil
}

// All returns every fixup ordered by name, then version.
func (r *Registry) All() []Fixup {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	slices.Sort(names)
	var out []Fixup
	for _, n := range names {
		for _, v := range r.byName[n].Values() {
			out = append(out, v.(Fixup))
		}
	}
	return out
}
