package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
)

// completionShells maps a shell name to its script generator.
var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
}

// CompletionShells lists the shells WriteCompletion supports.
func CompletionShells() []string {
	names := make([]string, 0, len(completionShells))
	for name := range completionShells {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteCompletion writes the completion script of root for shell to w. The
// script completes preset and format names for -p and -f.
func WriteCompletion(root *cobra.Command, shell string, w io.Writer) error {
	gen, ok := completionShells[shell]
	if !ok {
		return fmt.Errorf("unsupported shell: %s", shell)
	}
	return gen(root, w)
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate a completion script for ppp. Besides subcommands and flags, it
completes preset names after -p/--preset and format names after -f/--format.`,
	Example: `  # Bash, current session
  source <(ppp completion bash)

  # Zsh
  ppp completion zsh > "${fpath[1]}/_ppp"

  # Fish
  ppp completion fish > ~/.config/fish/completions/ppp.fish

  # PowerShell; add ". ppp.ps1" to your profile afterwards
  ppp completion powershell > ppp.ps1`,
	DisableFlagsInUseLine: true,
	ValidArgs:             CompletionShells(),
	Args:                  usageArgs(cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs)),
	RunE: func(cmd *cobra.Command, args []string) error {
		return WriteCompletion(cmd.Root(), args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
