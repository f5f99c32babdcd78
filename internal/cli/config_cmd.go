package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/ppp/internal/config"
	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
)

// configCmd groups the configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  "Inspect, validate and create ppp.toml configuration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// debugFlags accepts the same conversion flags as the root command so the
// user can preview how a given command line resolves.
var debugFlags renderFlags

// configDebugCmd implements "ppp config debug".
var configDebugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Show resolved options with source annotations",
	Long: `Display the resolved rendering options, the source each value came from
(cli flag, environment variable, config file, default or preset) and whether
the result is a bundled preset or custom.

Accepts the same flags as the convert command.`,
	Example: `  ppp config debug -p public --input-replacement=false`,
	Args:    usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, _, err := loadAndResolveConfig(debugFlags.overrides(cmd.Flags()))
		if err != nil {
			return err
		}
		eff, err := resolved.Effective()
		if err != nil {
			return err
		}
		printResolvedConfig(cmd.OutOrStdout(), resolved, eff)
		return nil
	},
}

// configValidateCmd implements "ppp config validate".
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and report issues",
	Long:  "Check ppp.toml and the PPP_* environment for errors and warnings.",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, meta, err := loadAndResolveConfig(nil)
		if err != nil {
			return err
		}
		result := config.Validate(resolved.Config, meta)
		printValidationResult(cmd.OutOrStdout(), result)
		if result.HasErrors() {
			return &preset.ConfigurationError{
				Message: fmt.Sprintf("configuration has %d error(s)", len(result.Errors())),
			}
		}
		return nil
	},
}

var (
	initPreset string
	initForce  bool
)

// configInitCmd implements "ppp config init".
var configInitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter ppp.toml",
	Long: `Write a commented ppp.toml for the chosen preset into dir (default: the
current directory). Existing files are kept unless --force is given.`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		p, err := preset.ParsePreset(initPreset)
		if err != nil {
			return err
		}

		path := filepath.Join(dir, config.ConfigFileName)
		written, err := config.WriteStarter(path, p, initForce)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !written {
			fmt.Fprintf(out, "%s already exists; use --force to overwrite\n", path)
			return nil
		}
		fmt.Fprintf(out, "%s %s (preset: %s)\n", styleSuccess.Render("Created"), path, p)
		return nil
	},
}

func init() {
	debugFlags.register(configDebugCmd.Flags())
	registerCompletions(configDebugCmd)

	configInitCmd.Flags().StringVarP(&initPreset, "preset", "p", string(preset.DefaultPreset),
		"Preset the starter file is based on ("+strings.Join(preset.PresetNames(), ", ")+")")
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing ppp.toml")
	_ = configInitCmd.RegisterFlagCompletionFunc("preset", completePresets)

	configCmd.AddCommand(configDebugCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// ---- Lipgloss styles --------------------------------------------------------

// sourceStyle returns a lipgloss style for a given ConfigSource. --no-color
// switches the profile to Ascii, which strips the colours.
func sourceStyle(src config.ConfigSource) lipgloss.Style {
	switch src {
	case config.SourceFile:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // bright blue
	case config.SourceEnv:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // bright yellow
	case config.SourceCLI:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // bright red
	case config.SourcePreset:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("13")) // bright magenta
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // bright green
	}
}

var (
	styleHeader   = lipgloss.NewStyle().Bold(true)
	styleSection  = lipgloss.NewStyle().Bold(true)
	styleErrorLbl = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarnLbl  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleSuccess  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleCustom   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// ---- printResolvedConfig ----------------------------------------------------

const fieldWidth = 20

func printHeader(out io.Writer, title string) {
	fmt.Fprintln(out, styleHeader.Render(title))
	fmt.Fprintln(out, strings.Repeat("=", len(title)))
	fmt.Fprintln(out)
}

// printResolvedConfig writes the resolved options and their sources to out.
func printResolvedConfig(out io.Writer, rc *config.ResolvedConfig, eff preset.EffectiveConfig) {
	printHeader(out, "Configuration Debug")

	if rc.Path != "" {
		fmt.Fprintf(out, "Config file: %s\n", rc.Path)
	} else {
		fmt.Fprintln(out, "Config file: none found")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[render]"))
	printField(out, "preset", fmtStr(string(eff.Preset)), rc.Sources["render.preset"])
	printField(out, "language", fmtStr(eff.Language), rc.Sources["render.language"])
	printField(out, "format", fmtStr(string(eff.Format)), rc.Sources["render.format"])
	printField(out, "debug", fmt.Sprint(eff.Debug), rc.Sources["render.debug"])
	printField(out, "highlight", fmt.Sprint(eff.Highlight), rc.Sources["render.highlight"])
	printField(out, "outpath", fmtOut(eff.OutPath), rc.Sources["render.outpath"])
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[toggles]"))
	for _, t := range preset.AllToggles() {
		printField(out, string(t), fmt.Sprint(eff.Toggles.Get(t)), rc.Sources["toggles."+string(t)])
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Provenance: %s\n", fmtProvenance(eff))
}

// printField writes a single key = value (source: ...) line.
func printField(out io.Writer, name, value string, src config.ConfigSource) {
	padded := fmt.Sprintf("  %-*s", fieldWidth, name)
	srcLabel := sourceStyle(src).Render(fmt.Sprintf("(source: %s)", src))
	fmt.Fprintf(out, "%s = %-16s %s\n", padded, value, srcLabel)
}

func fmtStr(s string) string {
	return fmt.Sprintf("%q", s)
}

func fmtOut(path string) string {
	if path == "" {
		return "stdout"
	}
	return fmtStr(path)
}

// fmtProvenance renders "public" or "custom (from public; changed: a, b)".
func fmtProvenance(eff preset.EffectiveConfig) string {
	if !eff.IsCustom() {
		return string(eff.Provenance)
	}
	changed := eff.Changed()
	names := make([]string, len(changed))
	for i, t := range changed {
		names[i] = string(t)
	}
	return fmt.Sprintf("%s (from %s; changed: %s)",
		styleCustom.Render(string(eff.Provenance)), eff.Preset, strings.Join(names, ", "))
}

// ---- printValidationResult --------------------------------------------------

// printValidationResult writes the formatted validation report to out.
func printValidationResult(out io.Writer, result *config.ValidationResult) {
	printHeader(out, "Configuration Validation")

	errs := result.Errors()
	warns := result.Warnings()

	if len(errs) == 0 && len(warns) == 0 {
		fmt.Fprintln(out, styleSuccess.Render("No issues found."))
		return
	}

	if len(errs) > 0 {
		fmt.Fprintln(out, styleErrorLbl.Render("Errors:"))
		for _, issue := range errs {
			fmt.Fprintf(out, "  [%s] %s\n", issue.Field, issue.Message)
		}
		fmt.Fprintln(out)
	}

	if len(warns) > 0 {
		fmt.Fprintln(out, styleWarnLbl.Render("Warnings:"))
		for _, issue := range warns {
			fmt.Fprintf(out, "  [%s] %s\n", issue.Field, issue.Message)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%d error(s), %d warning(s)\n", len(errs), len(warns))
}
