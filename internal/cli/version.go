package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/ppp/internal/buildinfo"
)

var versionJSON bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show ppp version and build information",
	Long: `Print the ppp release, the commit it was built from, the build date and
the Go toolchain. Bug reports about a rendition should include this line.`,
	Example: `  ppp version
  ppp version --json | jq -r .version`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeVersion(cmd, buildinfo.GetInfo(), versionJSON)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build information as a JSON object")
	rootCmd.AddCommand(versionCmd)
}

func writeVersion(cmd *cobra.Command, info buildinfo.Info, asJSON bool) error {
	out := cmd.OutOrStdout()
	if !asJSON {
		_, err := fmt.Fprintln(out, info.String())
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}
