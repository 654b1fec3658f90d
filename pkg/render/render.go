package render

import (
	"context"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/paulmach/orb"

	"github.com/matzehuels/netdraw/pkg/congestion"
	"github.com/matzehuels/netdraw/pkg/demand"
	"github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/fixup"
	"github.com/matzehuels/netdraw/pkg/flow"
	"github.com/matzehuels/netdraw/pkg/geo"
	"github.com/matzehuels/netdraw/pkg/graph"
	"github.com/matzehuels/netdraw/pkg/graphic"
)

// Line widths in millimetres, per lane.
const (
	VeryThin = 0.1
	Thin     = 0.25
)

// Colors used in static mode.
var (
	Black     = color.NRGBA{A: 0xff}
	LightGrey = color.NRGBA{R: 217, G: 217, B: 217, A: 0xff}
	Green     = color.NRGBA{G: 150, B: 130, A: 0xff}
)

// DemandAlpha is the opacity of a single demand line; dense corridors build
// up through overdraw.
const DemandAlpha = 3

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for progress messages.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// WithClassifier replaces the default congestion classifier.
func WithClassifier(c congestion.Classifier) Option {
	return func(r *Renderer) { r.classifier = c }
}

// WithPalette replaces the default band colors.
func WithPalette(p congestion.Palette) Option {
	return func(r *Renderer) { r.palette = p }
}

// Renderer draws one graph. It is not safe for concurrent use.
type Renderer struct {
	g          *graph.Graph
	numEdges   int
	logger     *log.Logger
	classifier congestion.Classifier
	palette    congestion.Palette
}

// Overlays are drawn on top of the network in static mode.
type Overlays struct {
	Boundary *geo.Area
	Demand   []demand.Pair
}

func (o Overlays) empty() bool { return o.Boundary == nil && len(o.Demand) == 0 }

// New takes ownership of g and assigns dense edge IDs in storage order.
func New(g *graph.Graph, opts ...Option) *Renderer {
	r := &Renderer{
		g:          g,
		numEdges:   g.NumEdges(),
		logger:     log.New(io.Discard),
		classifier: congestion.Default(),
		palette:    congestion.DefaultPalette(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if len(r.palette) != r.classifier.Bands {
		r.palette = r.palette.Blend(r.classifier.Bands)
	}
	for e := range g.NumEdges() {
		g.SetEdgeID(e, e)
	}
	return r
}

// Graph returns the current, possibly filtered, graph.
func (r *Renderer) Graph() *graph.Graph { return r.g }

// NumEdges returns the number of edges before filtering, which is the number
// of rows per iteration a flow table must have.
func (r *Renderer) NumEdges() int { return r.numEdges }

// Filter applies a network fixup to the graph.
func (r *Renderer) Filter(f fixup.Fixup) error {
	start := time.Now()
	g, err := fixup.Apply(r.g, f)
	if err != nil {
		return err
	}
	r.logger.Debug("applied fixup", "fixup", f.Ref(),
		"vertices", g.NumVertices(), "edges", g.NumEdges(), "duration", time.Since(start))
	r.g = g
	return nil
}

// Viewport returns the region to draw: the projected bounding box of clip, or
// of all vertices when clip is nil.
func (r *Renderer) Viewport(clip *geo.Area) geo.Rect {
	if clip != nil {
		return clip.ProjectedBounds()
	}
	var box geo.Rect
	for v := range r.g.NumVertices() {
		box = box.Extend(r.position(v))
	}
	return box
}

func (r *Renderer) position(v int) orb.Point {
	return r.g.Vertex(v).LatLng.WebMercator()
}

// drawEdge draws e along its road geometry with width lanes*width.
func (r *Renderer) drawEdge(gr graphic.Graphic, e graph.Edge, width float64) {
	gr.SetLineWidth(float64(e.NumLanes) * width)
	prev := r.position(e.Tail)
	for _, p := range e.Geometry {
		next := p.WebMercator()
		gr.DrawLine(prev, next)
		prev = next
	}
	gr.DrawLine(prev, r.position(e.Head))
}

// DrawNetwork draws the graph and the given overlays onto a single page.
func (r *Renderer) DrawNetwork(ctx context.Context, gr graphic.Graphic, ov Overlays) error {
	n := r.g.NumVertices()
	for i, p := range ov.Demand {
		if p.Origin < 0 || p.Origin >= n || p.Destination < 0 || p.Destination >= n {
			return errors.New(errors.ErrCodeInvalidInput,
				"demand pair %d: (%d,%d) is not a pair of vertices in [0,%d)", i, p.Origin, p.Destination, n)
		}
	}

	start := time.Now()
	if ov.empty() {
		gr.SetColor(Black)
	} else {
		gr.SetColor(LightGrey)
	}
	for _, e := range r.g.Edges() {
		r.drawEdge(gr, e, VeryThin)
	}
	gr.SetLineWidth(Thin)
	r.logger.Info("drew network", "edges", r.g.NumEdges(), "duration", time.Since(start))

	if ov.Boundary != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
		gr.SetColor(Black)
		for _, ring := range ov.Boundary.Rings() {
			projected := make(orb.Ring, len(ring))
			for i, p := range ring {
				projected[i] = geo.FromPoint(p).WebMercator()
			}
			gr.DrawPolygon(projected)
		}
		r.logger.Info("drew boundaries", "rings", len(ov.Boundary.Rings()))
	}

	if len(ov.Demand) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		c := Green
		c.A = DemandAlpha
		gr.SetColor(c)
		for _, p := range ov.Demand {
			gr.DrawLine(r.position(p.Origin), r.position(p.Destination))
		}
		r.logger.Info("drew travel demand", "pairs", len(ov.Demand))
	}
	return nil
}

// DrawFlows draws one page per selected iteration of p, coloring edges by
// congestion. Capacities are scaled to the analysis period in hours.
func (r *Renderer) DrawFlows(ctx context.Context, gr graphic.Graphic, p *flow.Patterns, period float64, all bool) error {
	if p.NumEdges() != r.numEdges {
		return errors.New(errors.ErrCodeFlowFileCorrupt,
			"flow table has %d rows per iteration, network has %d edges", p.NumEdges(), r.numEdges)
	}
	if !(period > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "analysis period must be positive, got %v", period)
	}
	if err := r.classifier.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "congestion classifier")
	}

	edges := r.g.Edges()
	capacity := make([]float64, len(edges))
	for i, e := range edges {
		capacity[i] = max(math.Round(period*float64(e.Capacity)), 1)
	}

	bands := make([][]int, r.classifier.Bands)
	for page, it := range p.Selected(all) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if page > 0 {
			if err := gr.NewPage(); err != nil {
				return err
			}
		}
		start := time.Now()
		for b := range bands {
			bands[b] = bands[b][:0]
		}
		flows := p.Iteration(it)
		for i, e := range edges {
			b := r.classifier.Classify(flows[e.ID], capacity[i])
			bands[b] = append(bands[b], i)
		}
		for b, members := range bands {
			gr.SetColor(r.palette.Color(b))
			for _, i := range members {
				r.drawEdge(gr, edges[i], Thin)
			}
		}
		r.logger.Info("drew flow pattern", "iteration", it, "duration", time.Since(start))
	}
	return nil
}
