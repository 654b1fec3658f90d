// Package pkg provides the libraries behind netdraw, which draws road
// networks, travel demand and congestion.
//
// # Data flow
//
//	vertices.csv + edges.csv
//	         ↓
//	    [importer] (attribute-driven CSV import) → [graph].Build
//	         ↓
//	    [fixup] (optional: drop outliers, keep the largest SCC)
//	         ↓
//	    [render] (projection, overlays, congestion bands)
//	         ↓
//	    [graphic] (PDF, PNG or SVG pages)
//
// [pipeline] ties the stages together for the CLI and caches imported
// networks through [cache] as [io] snapshots.
//
// # Packages
//
// [attr] - Typed attribute registry through which importers expose vertex
// and edge values.
//
// [graph] - Static road graph in adjacency-array layout, vertex-induced
// subgraphs and strongly connected components.
//
// [importer] - Import from a vertex and an edge CSV table.
//
// [io] - JSON snapshots of imported graphs.
//
// [geo] - Coordinates, web-mercator projection and OSM POLY areas.
//
// [flow], [demand] - Readers for assignment output and OD pairs.
//
// [congestion] - Flow/capacity bands and their colors.
//
// [render] - Draws networks and flow patterns onto a [graphic.Graphic].
//
// [graphic] - PDF, PNG and SVG backends.
//
// [fixup] - Versioned, fingerprinted corrections for known networks.
//
// [errors] - Error codes shared by all packages.
//
// [attr]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/attr
// [graph]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/graph
// [importer]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/importer
// [io]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/io
// [geo]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/geo
// [flow]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/flow
// [demand]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/demand
// [congestion]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/congestion
// [render]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/render
// [graphic]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/graphic
// [graphic.Graphic]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/graphic#Graphic
// [fixup]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/fixup
// [errors]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/errors
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/netdraw/pkg/cache
package pkg
