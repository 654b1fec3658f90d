package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netdraw/pkg/fixup"
	"github.com/matzehuels/netdraw/pkg/pipeline"
)

// fixupsCommand lists the built-in fixups and those in an optional file.
func (c *CLI) fixupsCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "fixups",
		Short: "List the known network fixups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := pipeline.LoadFixups(file)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, fixupTable(reg.All()))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "fixups", "", "TOML file with additional fixups")
	return cmd
}

func fixupTable(fixups []fixup.Fixup) string {
	header := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("FIXUP", "VERTICES", "EDGES", "EXCLUDED", "LARGEST SCC", "DESCRIPTION").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return header
			}
			return cell
		})
	for _, f := range fixups {
		scc := "no"
		if f.LargestSCC {
			scc = "yes"
		}
		t.Row(f.Ref(), strconv.Itoa(f.NumVertices), strconv.Itoa(f.NumEdges),
			strconv.Itoa(len(f.ExcludeVertices)), scc, f.Description)
	}
	return t.String()
}
