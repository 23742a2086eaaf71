package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/noticegen/pkg/project"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for noticegen.

Besides commands and flags, completion suggests directories for the scan-dir
argument of generate and, once the project has been restored, the target
frameworks of its assets file for --framework.

To load completions:

Bash:
  $ source <(noticegen completion bash)

Zsh:
  $ noticegen completion zsh > "${fpath[1]}/_noticegen"

Fish:
  $ noticegen completion fish > ~/.config/fish/completions/noticegen.fish

PowerShell:
  PS> noticegen completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeScanDir completes the scan-dir argument of generate with directories.
func completeScanDir(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// completeFrameworks completes --framework with the target frameworks
// restored for the scan directory being completed.
func completeFrameworks(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	scanDir := "."
	if len(args) > 0 {
		scanDir = args[0]
	}
	tfms, err := project.Frameworks(scanDir)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, tfm := range tfms {
		if strings.HasPrefix(strings.ToLower(tfm), strings.ToLower(toComplete)) {
			out = append(out, tfm)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
