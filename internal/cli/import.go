package cli

import (
	"strings"

	"github.com/spf13/cobra"

	ndio "github.com/matzehuels/netdraw/pkg/io"
	"github.com/matzehuels/netdraw/pkg/pipeline"
)

// importCommand creates the import command, which converts CSV tables into a
// JSON snapshot that draw reads without re-parsing.
func (c *CLI) importCommand() *cobra.Command {
	var (
		opts   pipeline.Options
		output string
	)
	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Convert a CSV network into a JSON snapshot",
		Long: `Import the road network in <dir>/vertices.csv and <dir>/edges.csv and write it
as a JSON snapshot. Capacities in the snapshot are per analysis period.`,
		Example: `  netdraw import data/stuttgart -o stuttgart.json -p 4`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkPeriodFlag(cmd, opts.AnalysisPeriod); err != nil {
				return err
			}
			opts.Graph = args[0]
			if output == "" {
				output = strings.TrimRight(args[0], "/") + ".json"
			}
			return c.runImport(cmd, opts, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <dir>.json)")
	cmd.Flags().Float64VarP(&opts.AnalysisPeriod, "period", "p", pipeline.DefaultAnalysisPeriod, "analysis period in hours")
	cmd.Flags().StringVar(&opts.VertexIDColumn, "id-column", "", "vertex ID column of vertices.csv (default vert_id)")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "do not read or write the network cache")
	return cmd
}

func (c *CLI) runImport(cmd *cobra.Command, opts pipeline.Options, output string) error {
	runner, err := c.newRunner(opts.NoCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(cmd.Context(), "Importing network...")
	spinner.Start()
	prog := newProgress(c.Logger)
	g, hit, err := runner.Load(cmd.Context(), opts)
	if err != nil {
		spinner.StopWithError("Import failed")
		return err
	}
	if err := ndio.ExportJSON(g, output); err != nil {
		spinner.StopWithError("Writing snapshot failed")
		return err
	}
	spinner.Stop()
	prog.done("Imported network")

	printSuccess("Wrote snapshot")
	printStats(g.NumVertices(), g.NumEdges(), hit)
	printFile(output)
	printNextStep("Draw it", "netdraw draw -g "+output+" -o network.png")
	return nil
}
