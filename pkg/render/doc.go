// Package render draws road networks, travel demand and congestion into a
// graphic.Graphic.
//
// # Overview
//
// A [Renderer] owns a graph for the rest of a run. Creating it assigns every
// edge a dense edge ID in storage order; flow tables address edges by this ID,
// so it must happen before any filtering:
//
//	r := render.New(g, render.WithLogger(logger))
//	if err := r.Filter(f); err != nil { // optional
//	    return err
//	}
//	gr, err := graphic.New("pdf", "out.pdf", 14, 14, r.Viewport(nil))
//
// # Static mode
//
// [Renderer.DrawNetwork] draws every edge along its road geometry, or as a
// straight line when it has none, with a width proportional to its lanes. With
// overlays the network is drawn in light grey underneath black boundary
// outlines and faint green demand lines.
//
// # Flow mode
//
// [Renderer.DrawFlows] draws one page per selected iteration. Edges are
// bucketed by congestion band and drawn band by band in increasing severity,
// so the most congested roads end up on top.
package render
