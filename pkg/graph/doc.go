// Package graph provides the in-memory road network used by netdraw.
//
// # Architecture
//
// The package sits between the import formats and the renderer:
//
//   - pkg/importer, pkg/io: stream records through the [Importer] protocol
//   - [Build]: format-agnostic construction of a [Graph]
//   - pkg/fixup, pkg/render: filtering and drawing on top of [Graph]
//
// # Building
//
// A format implements [Importer] and answers attribute queries through an
// attr.Registry. [Build] pulls all vertices, then all edges, and asks the
// registry for every attribute it stores. Attributes a format does not supply
// resolve to their declared defaults, so the builder never needs to know which
// format it is reading:
//
//	g, err := graph.Build(importer.NewCSV("data/stuttgart", 1))
//
// # Storage
//
// Vertices are identified by dense integers in [0, n) assigned in read order.
// Edges are stored sorted by tail in a compressed sparse row layout; the sort
// is stable, so edges with equal tails keep their read order. [Graph.EdgesFrom]
// returns the outgoing edges of a vertex without allocating.
//
// # Subgraphs
//
// [Graph.ExtractVertexInducedSubgraph] keeps the vertices marked in a bitset
// and every edge whose endpoints are both kept, renumbering vertices densely.
// Edge attributes, including [Edge.ID], are carried over unchanged so that data
// indexed by edge ID before filtering still addresses the right edges.
//
// [StronglyConnectedComponents] partitions the vertices; [SCC.LargestMask]
// marks the biggest component and is typically fed back into
// ExtractVertexInducedSubgraph.
package graph
