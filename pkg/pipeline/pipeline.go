// Package pipeline provides the load → filter → draw pipeline behind the
// netdraw CLI.
//
// # Stages
//
//  1. Load: import the network from CSV tables (cached as a JSON snapshot) or
//     read a snapshot directly
//  2. Filter: apply an optional network fixup
//  3. Draw: render the network with overlays, or the flow patterns, into a
//     graphic of the requested format
//
// Nothing is written unless every stage succeeds.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    Graph:  "data/stuttgart",
//	    Flow:   "flows.csv",
//	    Output: "congestion.pdf",
//	    Format: "pdf",
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/netdraw/pkg/congestion"
	"github.com/matzehuels/netdraw/pkg/errors"
	"github.com/matzehuels/netdraw/pkg/graph"
	"github.com/matzehuels/netdraw/pkg/graphic"
	"github.com/matzehuels/netdraw/pkg/importer"
)

// Defaults shared by the CLI and config files.
const (
	DefaultWidth          = 14.0 // cm
	DefaultHeight         = 14.0 // cm
	DefaultAnalysisPeriod = 1.0  // hours
)

// Options contains all configuration for a pipeline run. It can be decoded
// from a TOML file with LoadOptions.
type Options struct {
	// Input
	Graph          string  `toml:"graph"` // CSV directory or JSON snapshot
	VertexIDColumn string  `toml:"vertex_id_column"`
	AnalysisPeriod float64 `toml:"analysis_period"` // hours
	Fixup          string  `toml:"fixup"`           // "name" or "name@version"
	FixupFile      string  `toml:"fixup_file"`      // extra TOML registry

	// Overlays; Flow selects flow mode and excludes the others.
	Clip          string `toml:"clip"`
	Boundary      string `toml:"boundary"`
	Demand        string `toml:"demand"`
	Flow          string `toml:"flow"`
	AllIterations bool   `toml:"all_iterations"`

	// Output
	Output string  `toml:"output"`
	Format string  `toml:"format"`
	Width  float64 `toml:"width"`  // cm
	Height float64 `toml:"height"` // cm
	DPI    float64 `toml:"dpi"`    // PNG only

	// Congestion bands
	StepPercent int      `toml:"step_percent"`
	Bands       int      `toml:"bands"`
	Palette     []string `toml:"palette"`

	NoCache bool `toml:"no_cache"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `toml:"-"`
}

// Result summarizes a pipeline run.
type Result struct {
	RunID       string
	Vertices    int // after filtering
	Edges       int // after filtering
	Pages       int
	Files       []string
	CacheHit    bool
	Fingerprint graph.Fingerprint // of the unfiltered network
}

// LoadOptions reads options from a TOML file.
func LoadOptions(path string) (Options, error) {
	var opts Options
	f, err := os.Open(path)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found -- '%s'", path)
	}
	defer f.Close()
	md, err := toml.NewDecoder(f).Decode(&opts)
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
	}
	if md.IsDefined("analysis_period") {
		if err := CheckPeriod(opts.AnalysisPeriod); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// CheckPeriod rejects an explicitly given analysis period that is not
// positive. A zero AnalysisPeriod in Options means unset, so callers that can
// tell an explicit zero apart check it here before SetDefaults.
func CheckPeriod(hours float64) error {
	if !(hours > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "analysis period must be positive, got %v", hours)
	}
	return nil
}

// SetDefaults fills in unset fields. A zero AnalysisPeriod is unset.
func (o *Options) SetDefaults() {
	if o.VertexIDColumn == "" {
		o.VertexIDColumn = importer.DefaultVertexIDColumn
	}
	if o.AnalysisPeriod == 0 {
		o.AnalysisPeriod = DefaultAnalysisPeriod
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.DPI == 0 {
		o.DPI = graphic.DefaultDPI
	}
	def := congestion.Default()
	if o.StepPercent == 0 {
		o.StepPercent = def.StepPercent
	}
	if o.Bands == 0 {
		o.Bands = def.Bands
	}
}

// ValidateForLoad checks the options needed to load a network.
func (o *Options) ValidateForLoad() error {
	if o.Graph == "" {
		return errors.New(errors.ErrCodeInvalidInput, "graph is required")
	}
	if err := CheckPeriod(o.AnalysisPeriod); err != nil {
		return err
	}
	return nil
}

// Validate checks the options for a full run. Call SetDefaults first.
func (o *Options) Validate() error {
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if o.Output == "" {
		return errors.New(errors.ErrCodeInvalidInput, "output is required")
	}
	if _, err := graphic.ParseFormat(o.Format); err != nil {
		return err
	}
	if !(o.Width > 0) || !(o.Height > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "size must be positive, got %vx%v cm", o.Width, o.Height)
	}
	if !(o.DPI > 0) {
		return errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %v", o.DPI)
	}
	if o.Flow != "" && (o.Boundary != "" || o.Demand != "") {
		return errors.New(errors.ErrCodeInvalidInput, "flow patterns cannot be combined with boundaries or demand")
	}
	if o.AllIterations && o.Flow == "" {
		return errors.New(errors.ErrCodeInvalidInput, "all iterations requires a flow file")
	}
	if _, err := o.BandPalette(); err != nil {
		return err
	}
	if err := o.Classifier().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid congestion bands")
	}
	return nil
}

// IsFlowMode reports whether the run draws flow patterns.
func (o *Options) IsFlowMode() bool { return o.Flow != "" }

// IsSnapshot reports whether Graph names a JSON snapshot rather than a
// directory of CSV tables.
func (o *Options) IsSnapshot() bool {
	if fi, err := os.Stat(o.Graph); err == nil && fi.IsDir() {
		return false
	}
	return filepath.Ext(o.Graph) == ".json"
}

// Classifier returns the congestion classifier configured by the options.
func (o *Options) Classifier() congestion.Classifier {
	return congestion.Classifier{StepPercent: o.StepPercent, Bands: o.Bands}
}

// BandPalette returns the configured band colors, or the default reds.
func (o *Options) BandPalette() (congestion.Palette, error) {
	if len(o.Palette) == 0 {
		return congestion.DefaultPalette(), nil
	}
	p, err := congestion.ParsePalette(o.Palette...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid palette")
	}
	return p, nil
}
