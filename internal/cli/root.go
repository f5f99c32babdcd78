package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AbdelazizMoustafa10m/ppp/internal/convert"
	"github.com/AbdelazizMoustafa10m/ppp/internal/logging"
	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
	flagNoColor bool
)

// rootFlags holds the conversion flags of the root command.
var rootFlags renderFlags

const rootLong = `Convert an XLSForm into a human readable paper version, as HTML or text.

Rendering options come from a preset and may be overridden one by one; as
soon as an override departs from the preset the rendition is reported as
"custom". Values are read, lowest priority first, from the built-in
defaults, ppp.toml, PPP_* environment variables and command-line flags.`

// rootCmd converts a single XLSForm and hosts the helper subcommands.
var rootCmd = &cobra.Command{
	Use:   "ppp <xlsxfile>",
	Short: "Convert XLSForm to Paper version",
	Long:  rootLong,
	Example: `  # Human readable HTML with sensitive information removed
  ppp household.xlsx -p public -o household.html

  # French text rendition, developer preset plus exclusions (reported as custom)
  ppp household.xlsx -l French -f text -e

  # Public preset without input replacement
  ppp household.xlsx -p public --input-replacement=false`,
	Args:          usageArgs(cobra.MaximumNArgs(1)),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRoot(cmd, args, &rootFlags)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on command line.
		if !cmd.Flags().Changed("verbose") && os.Getenv("PPP_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Flags().Changed("quiet") && os.Getenv("PPP_QUIET") != "" {
			flagQuiet = true
		}
		if !cmd.Flags().Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("PPP_NO_COLOR") != "") {
			flagNoColor = true
		}

		logging.Setup(logging.Options{
			Verbose: flagVerbose,
			Quiet:   flagQuiet,
			JSON:    os.Getenv("PPP_LOG_FORMAT") == "json",
		})

		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		return nil
	},
}

func init() {
	addPersistentFlags(rootCmd)
	rootFlags.register(rootCmd.Flags())
	registerCompletions(rootCmd)
	rootCmd.SetFlagErrorFunc(flagError)
}

// runRoot converts args[0]. A bare "ppp" prints help; flags without an
// input file are a usage error.
func runRoot(cmd *cobra.Command, args []string, flags *renderFlags) error {
	if len(args) == 0 {
		if anyFlagChanged(cmd.Flags()) {
			return &preset.ConfigurationError{
				Field:   "xlsxfile",
				Message: "the following arguments are required: xlsxfile",
			}
		}
		return cmd.Help()
	}
	return runConvert(cmd, args[0], flags)
}

func anyFlagChanged(fs *pflag.FlagSet) bool {
	changed := false
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			changed = true
		}
	})
	return changed
}

// usageArgs reports positional argument errors as configuration errors so
// they exit with status 2.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &preset.ConfigurationError{Message: err.Error()}
		}
		return nil
	}
}

// flagError is the FlagErrorFunc of the command tree. Unknown flags and bad
// flag values exit with status 2.
func flagError(_ *cobra.Command, err error) error {
	return &preset.ConfigurationError{Message: err.Error()}
}

func addPersistentFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: PPP_VERBOSE)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: PPP_QUIET)")
	pf.StringVar(&flagConfig, "config", "", "Path to ppp.toml config file")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: PPP_NO_COLOR, NO_COLOR)")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := rootCmd.Execute()
	return reportError(os.Stderr, err)
}

// reportError writes err to w and returns the matching exit code. Conversion
// failures already carry their full message; everything else is prefixed
// with "Error:".
func reportError(w io.Writer, err error) int {
	if err == nil {
		return convert.ExitOK
	}
	var convErr *convert.Error
	if errors.As(err, &convErr) {
		fmt.Fprintln(w, convErr.Error())
	} else {
		fmt.Fprintln(w, "Error:", err)
	}
	return convert.KindOf(err).ExitCode()
}

// NewRootCmd returns a fresh root command carrying the same flags and
// subcommands as the global tree, for the man page and completion
// generators.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               rootCmd.Use,
		Short:             rootCmd.Short,
		Long:              rootCmd.Long,
		Example:           rootCmd.Example,
		Args:              rootCmd.Args,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rootCmd.PersistentPreRunE,
	}

	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose (debug) output (env: PPP_VERBOSE)")
	pf.BoolP("quiet", "q", false, "Suppress all output except errors (env: PPP_QUIET)")
	pf.String("config", "", "Path to ppp.toml config file")
	pf.Bool("no-color", false, "Disable colored output (env: PPP_NO_COLOR, NO_COLOR)")

	var flags renderFlags
	flags.register(cmd.Flags())
	registerCompletions(cmd)
	cmd.SetFlagErrorFunc(flagError)
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return runRoot(c, args, &flags)
	}

	for _, child := range rootCmd.Commands() {
		cmd.AddCommand(child)
	}
	return cmd
}
