package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/netdraw/pkg/pipeline"
)

// drawFlags binds the draw command's flags to pipeline options.
func drawFlags(cmd *cobra.Command, opts *pipeline.Options) {
	f := cmd.Flags()
	f.StringVarP(&opts.Graph, "graph", "g", "", "network: directory with vertices.csv and edges.csv, or a JSON snapshot")
	f.StringVarP(&opts.Output, "output", "o", "", "output file")
	f.StringVar(&opts.Format, "format", "", "output format: png (default), pdf, svg")
	f.Float64VarP(&opts.Width, "width", "w", pipeline.DefaultWidth, "width of the graphic in cm")
	f.Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "height of the graphic in cm")
	f.Float64Var(&opts.DPI, "dpi", 0, "resolution of PNG output (default 150)")
	f.StringVarP(&opts.Clip, "clip", "c", "", "clip the graphic to the area in an OSM POLY file")
	f.StringVarP(&opts.Boundary, "boundary", "b", "", "draw the boundaries in an OSM POLY file")
	f.StringVarP(&opts.Demand, "demand", "d", "", "draw the OD pairs in a demand CSV file")
	f.StringVarP(&opts.Flow, "flow", "f", "", "draw the flow patterns in a flow CSV file")
	f.BoolVarP(&opts.AllIterations, "all-iterations", "i", false, "draw every intermediate flow pattern")
	f.Float64VarP(&opts.AnalysisPeriod, "period", "p", pipeline.DefaultAnalysisPeriod, "analysis period in hours")
	f.StringVar(&opts.VertexIDColumn, "id-column", "", "vertex ID column of vertices.csv (default vert_id)")
	f.StringVar(&opts.Fixup, "fixup", "", "apply a network fixup, as name or name@version")
	f.StringVar(&opts.FixupFile, "fixups", "", "TOML file with additional fixups")
	f.IntVar(&opts.StepPercent, "step", 0, "width of a congestion band in percent (default 20)")
	f.IntVar(&opts.Bands, "bands", 0, "number of congestion bands (default 8)")
	f.StringSliceVar(&opts.Palette, "palette", nil, "band colors as hex, lightest first")
	f.BoolVar(&opts.NoCache, "no-cache", false, "do not read or write the network cache")
}

// drawCommand creates the draw command, the rendering entry point.
func (c *CLI) drawCommand() *cobra.Command {
	var (
		opts       pipeline.Options
		configFile string
	)
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw a network, its travel demand or its flow patterns",
		Long: `Draw a road network to PDF, PNG or SVG.

Without --flow the network is drawn once, optionally underneath boundaries
(--boundary) and travel demand (--demand). With --flow each edge is colored by
its congestion after the first and the last iteration of the assignment, or
after every iteration with --all-iterations, one page per iteration. PNG and
SVG pages after the first go to <name>_<n>.<ext>.

Options may also be read from a TOML file with --config; flags given on the
command line take precedence.`,
		Example: `  netdraw draw -g data/stuttgart -o network.png
  netdraw draw -g data/stuttgart -b region.poly -d demand.csv -o demand.pdf --format pdf
  netdraw draw -g network.json -f flows.csv -p 4 --fixup stuttgart -o congestion.svg --format svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkPeriodFlag(cmd, opts.AnalysisPeriod); err != nil {
				return err
			}
			if configFile != "" {
				cfg, err := pipeline.LoadOptions(configFile)
				if err != nil {
					return err
				}
				opts = mergeConfig(cmd, cfg, opts)
			}
			return c.runDraw(cmd, opts)
		},
	}
	drawFlags(cmd, &opts)
	cmd.Flags().StringVar(&configFile, "config", "", "read options from a TOML file")
	drawCompletions(cmd)
	return cmd
}

// checkPeriodFlag rejects -p 0 instead of letting it fall back to the default.
func checkPeriodFlag(cmd *cobra.Command, hours float64) error {
	if !cmd.Flags().Changed("period") {
		return nil
	}
	return pipeline.CheckPeriod(hours)
}

// mergeConfig returns cfg with every option given on the command line
// replaced by its flag value.
func mergeConfig(cmd *cobra.Command, cfg, flags pipeline.Options) pipeline.Options {
	overrides := map[string]func(){
		"graph":          func() { cfg.Graph = flags.Graph },
		"output":         func() { cfg.Output = flags.Output },
		"format":         func() { cfg.Format = flags.Format },
		"width":          func() { cfg.Width = flags.Width },
		"height":         func() { cfg.Height = flags.Height },
		"dpi":            func() { cfg.DPI = flags.DPI },
		"clip":           func() { cfg.Clip = flags.Clip },
		"boundary":       func() { cfg.Boundary = flags.Boundary },
		"demand":         func() { cfg.Demand = flags.Demand },
		"flow":           func() { cfg.Flow = flags.Flow },
		"all-iterations": func() { cfg.AllIterations = flags.AllIterations },
		"period":         func() { cfg.AnalysisPeriod = flags.AnalysisPeriod },
		"id-column":      func() { cfg.VertexIDColumn = flags.VertexIDColumn },
		"fixup":          func() { cfg.Fixup = flags.Fixup },
		"fixups":         func() { cfg.FixupFile = flags.FixupFile },
		"step":           func() { cfg.StepPercent = flags.StepPercent },
		"bands":          func() { cfg.Bands = flags.Bands },
		"palette":        func() { cfg.Palette = flags.Palette },
		"no-cache":       func() { cfg.NoCache = flags.NoCache },
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	return cfg
}

func (c *CLI) runDraw(cmd *cobra.Command, opts pipeline.Options) error {
	runner, err := c.newRunner(opts.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	res, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		return err
	}
	prog.done("Drew network")

	printSuccess("Wrote %d page(s)", res.Pages)
	printStats(res.Vertices, res.Edges, res.CacheHit)
	for _, f := range res.Files {
		printFile(f)
	}
	return nil
}
