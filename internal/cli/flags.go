package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AbdelazizMoustafa10m/ppp/internal/config"
	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
)

// renderFlags holds the conversion flags shared by the root command and
// "config debug".
type renderFlags struct {
	Preset    string
	Language  string
	Format    string
	Debug     bool
	Highlight bool
	OutPath   string
	Toggles   map[preset.Toggle]*bool
}

// toggleFlag describes the command-line form of one toggle.
type toggleFlag struct {
	Toggle    preset.Toggle
	Shorthand string
	Usage     string
}

var toggleFlags = []toggleFlag{
	{
		Toggle:    preset.InputReplacement,
		Shorthand: "i",
		Usage: "Replace visible choice options in input fields with the 'ppp_input' " +
			"column of the XLSForm, normally to hide sensitive information",
	},
	{
		Toggle:    preset.Exclusion,
		Shorthand: "e",
		Usage: "Exclude survey components marked for exclusion, such as ODK-specific " +
			"implementation details or sensitive information",
	},
	{
		Toggle:    preset.HRRelevant,
		Shorthand: "r",
		Usage:     "Show human readable 'relevant' text instead of the codified logic",
	},
	{
		Toggle:    preset.HRConstraint,
		Shorthand: "c",
		Usage:     "Show human readable 'constraint' text instead of the codified logic",
	},
	{
		Toggle:    preset.NoConstraint,
		Shorthand: "C",
		Usage:     "Remove all constraints from the rendered form",
	},
	{
		Toggle:    preset.TextReplacements,
		Shorthand: "t",
		Usage: "Apply the 'text_replacements' worksheet, e.g. to render readable " +
			"variable names or remove sensitive information",
	},
}

const presetUsage = "Bundled option preset: 'developer' is closest to the original XLSForm, " +
	"'internal' is human readable, 'public' is human readable with sensitive " +
	"information removed, 'minimal' turns every option off (env: PPP_PRESET)"

// register adds the conversion flags to fs.
func (f *renderFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Preset, "preset", "p", string(preset.DefaultPreset),
		presetUsage+" ("+strings.Join(preset.PresetNames(), ", ")+")")
	fs.StringVarP(&f.Language, "language", "l", "",
		"Language to render; defaults to the form's default_language, else the first language alphabetically (env: PPP_LANGUAGE)")
	fs.StringVarP(&f.Format, "format", "f", string(preset.DefaultFormat),
		"Output format: "+strings.Join(preset.FormatNames(), ", ")+" (env: PPP_FORMAT)")

	f.Toggles = make(map[preset.Toggle]*bool, len(toggleFlags))
	for _, tf := range toggleFlags {
		v := new(bool)
		f.Toggles[tf.Toggle] = v
		fs.BoolVarP(v, tf.Toggle.FlagName(), tf.Shorthand, false,
			tf.Usage+"; overrides the preset (use --"+tf.Toggle.FlagName()+"=false to force off)")
	}

	fs.BoolVarP(&f.Debug, "debug", "d", false,
		"Print a JSON representation of the survey to the browser console (html only)")
	fs.BoolVarP(&f.Highlight, "highlight", "H", false,
		"Highlight survey components to assess positioning (html only)")
	fs.StringVarP(&f.OutPath, "outpath", "o", "", "Path to write output; stdout when omitted")
}

// registerCompletions adds shell completion for the enumerated flags.
func registerCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("preset", completePresets)
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
}

func completePresets(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return preset.PresetNames(), cobra.ShellCompDirectiveNoFileComp
}

func completeFormats(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return preset.FormatNames(), cobra.ShellCompDirectiveNoFileComp
}

// overrides returns only the flags the user actually set. Flags left at
// their parse defaults must not mask file, env or preset values.
func (f *renderFlags) overrides(fs *pflag.FlagSet) *config.CLIOverrides {
	o := &config.CLIOverrides{Toggles: preset.Overrides{}}

	if fs.Changed("preset") {
		o.Preset = &f.Preset
	}
	if fs.Changed("language") {
		o.Language = &f.Language
	}
	if fs.Changed("format") {
		o.Format = &f.Format
	}
	if fs.Changed("debug") {
		o.Debug = &f.Debug
	}
	if fs.Changed("highlight") {
		o.Highlight = &f.Highlight
	}
	if fs.Changed("outpath") {
		o.OutPath = &f.OutPath
	}
	for _, tf := range toggleFlags {
		if fs.Changed(tf.Toggle.FlagName()) {
			o.Toggles[tf.Toggle] = *f.Toggles[tf.Toggle]
		}
	}
	return o
}

// reset restores every value to its zero state and clears pflag's Changed
// tracking. Cobra reuses command instances, so tests call this between runs.
func (f *renderFlags) reset(fs *pflag.FlagSet) {
	f.Preset = string(preset.DefaultPreset)
	f.Language = ""
	f.Format = string(preset.DefaultFormat)
	f.Debug = false
	f.Highlight = false
	f.OutPath = ""
	for _, v := range f.Toggles {
		*v = false
	}
	fs.VisitAll(func(fl *pflag.Flag) {
		fl.Changed = false
	})
}
