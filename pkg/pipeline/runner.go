package pipeline

import (
	"bytes"
	"context"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/netdraw/pkg/cache"
	"github.com/matzehuels/netdraw/pkg/demand"
	"github.com/matzehuels/netdraw/pkg/fixup"
	"github.com/matzehuels/netdraw/pkg/flow"
	"github.com/matzehuels/netdraw/pkg/geo"
	"github.com/matzehuels/netdraw/pkg/graph"
	"github.com/matzehuels/netdraw/pkg/graphic"
	"github.com/matzehuels/netdraw/pkg/importer"
	ndio "github.com/matzehuels/netdraw/pkg/io"
	"github.com/matzehuels/netdraw/pkg/observability"
	"github.com/matzehuels/netdraw/pkg/render"
)

// Runner executes the pipeline, caching imported networks.
//
// The Runner holds no per-run state; the same Runner may execute several
// runs one after another.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// falls back to log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// LoadFixups returns the built-in fixups merged with those in file, if any.
func LoadFixups(file string) (*fixup.Registry, error) {
	reg := fixup.Builtin()
	if file == "" {
		return reg, nil
	}
	extra, err := fixup.LoadFile(file)
	if err != nil {
		return nil, err
	}
	if err := reg.Merge(extra); err != nil {
		return nil, err
	}
	return reg, nil
}

// Load reads the network named by opts.Graph. CSV imports are served from
// the cache when both tables and the import options are unchanged; the
// returned bool reports a cache hit.
func (r *Runner) Load(ctx context.Context, opts Options) (*graph.Graph, bool, error) {
	opts.SetDefaults()
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}

	source := "csv"
	if opts.IsSnapshot() {
		source = "snapshot"
	}
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, source)

	var (
		g   *graph.Graph
		hit bool
		err error
	)
	if source == "snapshot" {
		g, err = ndio.ImportJSON(opts.Graph)
	} else {
		g, hit, err = r.loadCSV(ctx, opts)
	}
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, source, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	observability.Pipeline().OnLoadComplete(ctx, source, g.NumVertices(), g.NumEdges(), time.Since(start), nil)
	return g, hit, nil
}

func (r *Runner) loadCSV(ctx context.Context, opts Options) (*graph.Graph, bool, error) {
	c := r.Cache
	if opts.NoCache {
		c = cache.NewNullCache()
	}

	key, err := graphKey(opts)
	if err != nil {
		return nil, false, err
	}
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		g, err := ndio.ReadJSON(bytes.NewReader(data))
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "graph")
			return g, true, nil
		}
		r.Logger.Debug("discarding unreadable snapshot", "err", err)
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	imp := importer.NewCSV(opts.Graph, opts.AnalysisPeriod, importer.WithVertexIDColumn(opts.VertexIDColumn))
	g, err := graph.Build(imp)
	if err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	if err := ndio.WriteJSON(g, &buf); err == nil {
		if err := c.Set(ctx, key, buf.Bytes(), cache.DefaultTTL); err != nil {
			r.Logger.Warn("could not cache network", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "graph", buf.Len())
		}
	}
	return g, false, nil
}

func graphKey(opts Options) (string, error) {
	vertices, err := cache.HashFile(filepath.Join(opts.Graph, importer.VertexFile))
	if err != nil {
		return "", err
	}
	edges, err := cache.HashFile(filepath.Join(opts.Graph, importer.EdgeFile))
	if err != nil {
		return "", err
	}
	return cache.GraphKey(vertices, edges, cache.GraphKeyOpts{
		AnalysisPeriod:  opts.AnalysisPeriod,
		VertexIDColumn:  opts.VertexIDColumn,
		SnapshotVersion: ndio.SnapshotVersion,
	}), nil
}

// inputs are the files read before any output is created.
type inputs struct {
	clip     *geo.Area
	overlays render.Overlays
	flows    *flow.Patterns
}

func readInputs(opts Options, numEdges int) (inputs, error) {
	var in inputs
	var err error
	if opts.Clip != "" {
		if in.clip, err = geo.ImportOSMPoly(opts.Clip); err != nil {
			return in, err
		}
	}
	if opts.Boundary != "" {
		if in.overlays.Boundary, err = geo.ImportOSMPoly(opts.Boundary); err != nil {
			return in, err
		}
	}
	if opts.Demand != "" {
		if in.overlays.Demand, err = demand.ReadFile(opts.Demand); err != nil {
			return in, err
		}
	}
	if opts.Flow != "" {
		if in.flows, err = flow.ReadFile(opts.Flow, numEdges); err != nil {
			return in, err
		}
	}
	return in, nil
}

// Execute runs the complete load → filter → draw pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	result := &Result{RunID: uuid.NewString()}
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}
	logger = logger.With("run", result.RunID[:8])

	start := time.Now()
	g, hit, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.CacheHit = hit
	fp := g.Fingerprint()
	result.Fingerprint = fp
	logger.Info("read network", "vertices", fp.NumVertices, "edges", fp.NumEdges,
		"cached", hit, "duration", time.Since(start))
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	palette, _ := opts.BandPalette()
	rend := render.New(g,
		render.WithLogger(logger),
		render.WithClassifier(opts.Classifier()),
		render.WithPalette(palette))

	if opts.Fixup != "" {
		if err := r.filter(ctx, rend, opts); err != nil {
			return nil, err
		}
	}

	in, err := readInputs(opts, rend.NumEdges())
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, _ := graphic.ParseFormat(opts.Format)
	gr, err := graphic.New(string(format), opts.Output, opts.Width, opts.Height,
		rend.Viewport(in.clip), graphic.WithDPI(opts.DPI))
	if err != nil {
		return nil, err
	}
	pages := &pageCounter{Graphic: gr, ctx: ctx, format: string(format), pages: 1}

	mode := "network"
	if opts.IsFlowMode() {
		mode = "flows"
	}
	start = time.Now()
	observability.Pipeline().OnDrawStart(ctx, mode, string(format))
	if opts.IsFlowMode() {
		err = rend.DrawFlows(ctx, pages, in.flows, opts.AnalysisPeriod, opts.AllIterations)
	} else {
		err = rend.DrawNetwork(ctx, pages, in.overlays)
	}
	if err == nil {
		err = gr.Close()
	} else {
		gr.Discard()
	}
	observability.Pipeline().OnDrawComplete(ctx, mode, string(format), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	result.Vertices = rend.Graph().NumVertices()
	result.Edges = rend.Graph().NumEdges()
	result.Pages = pages.pages
	result.Files = outputFiles(format, opts.Output, pages.pages)
	logger.Info("wrote graphic", "files", len(result.Files), "pages", result.Pages, "duration", time.Since(start))
	return result, nil
}

func (r *Runner) filter(ctx context.Context, rend *render.Renderer, opts Options) error {
	reg, err := LoadFixups(opts.FixupFile)
	if err != nil {
		return err
	}
	f, err := reg.Lookup(opts.Fixup)
	if err != nil {
		return err
	}
	start := time.Now()
	err = rend.Filter(f)
	g := rend.Graph()
	observability.Pipeline().OnFilterComplete(ctx, f.Ref(), g.NumVertices(), g.NumEdges(), time.Since(start), err)
	return err
}

// outputFiles lists the files a graphic with the given number of pages
// writes. PDF keeps all pages in one file.
func outputFiles(format graphic.Format, path string, pages int) []string {
	if format == graphic.PDF {
		return []string{path}
	}
	files := make([]string, pages)
	for i := range files {
		files[i] = graphic.PagePath(path, i+1)
	}
	return files
}

// pageCounter reports page breaks to the pipeline hooks.
type pageCounter struct {
	graphic.Graphic
	ctx    context.Context
	format string
	pages  int
}

func (p *pageCounter) NewPage() error {
	if err := p.Graphic.NewPage(); err != nil {
		return err
	}
	p.pages++
	observability.Pipeline().OnPage(p.ctx, p.format, p.pages)
	return nil
}
