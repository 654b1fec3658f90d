package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/netdraw/pkg/fixup"
	"github.com/matzehuels/netdraw/pkg/graphic"
	"github.com/matzehuels/netdraw/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for netdraw.

Besides commands and flags, the scripts complete output formats, fixup names
from the built-in registry (and from --fixups when given), and input files by
extension: .poly for --clip and --boundary, .csv for --demand and --flow.

  $ source <(netdraw completion bash)
  $ netdraw completion zsh > "${fpath[1]}/_netdraw"
  $ netdraw completion fish > ~/.config/fish/completions/netdraw.fish
  PS> netdraw completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
	return cmd
}

// drawCompletions registers value completions for the draw command's flags.
func drawCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("fixup", completeFixups)
	_ = cmd.MarkFlagFilename("clip", "poly")
	_ = cmd.MarkFlagFilename("boundary", "poly")
	_ = cmd.MarkFlagFilename("demand", "csv")
	_ = cmd.MarkFlagFilename("flow", "csv")
	_ = cmd.MarkFlagFilename("fixups", "toml")
	_ = cmd.MarkFlagFilename("config", "toml")
}

func completeFormats(_ *cobra.Command, _ []string, prefix string) ([]cobra.Completion, cobra.ShellCompDirective) {
	var out []cobra.Completion
	for _, f := range graphic.Formats {
		name := strings.ToLower(string(f))
		if strings.HasPrefix(name, strings.ToLower(prefix)) {
			out = append(out, name)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeFixups offers every fixup as name@version plus the bare name of
// each family, which selects its latest version.
func completeFixups(cmd *cobra.Command, _ []string, prefix string) ([]cobra.Completion, cobra.ShellCompDirective) {
	file, _ := cmd.Flags().GetString("fixups")
	reg, err := pipeline.LoadFixups(file)
	if err != nil {
		reg = fixup.Builtin()
	}
	var out []cobra.Completion
	seen := make(map[string]bool)
	for _, f := range reg.All() {
		if !seen[f.Name] && strings.HasPrefix(f.Name, prefix) {
			seen[f.Name] = true
			out = append(out, cobra.CompletionWithDesc(f.Name, "latest version"))
		}
		if ref := f.Ref(); strings.HasPrefix(ref, prefix) {
			out = append(out, cobra.CompletionWithDesc(ref, describeFixup(f)))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func describeFixup(f fixup.Fixup) string {
	if f.Description != "" {
		return f.Description
	}
	return fmt.Sprintf("%d vertices, %d edges", f.NumVertices, f.NumEdges)
}
