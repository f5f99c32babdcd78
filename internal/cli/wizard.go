package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/ppp/internal/logging"
	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
)

// ErrWizardCancelled is returned when the user cancels the wizard, either
// with Ctrl+C or by declining the confirmation.
var ErrWizardCancelled = errors.New("wizard cancelled by user")

const wizardWidth = 80

// wizardChoices holds the values collected across the wizard pages.
type wizardChoices struct {
	Preset    string
	Toggles   []string
	Format    string
	Language  string
	OutPath   string
	Highlight bool
	Debug     bool
}

// isStdinTTY is replaced in tests.
var isStdinTTY = func() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

var wizardCmd = &cobra.Command{
	Use:   "wizard <xlsxfile>",
	Short: "Pick rendering options interactively, then convert",
	Long: `Walk through the rendering options in an interactive form.

The toggles start from the chosen preset's defaults; changing any of them
makes the rendition "custom". Initial values come from ppp.toml and the
PPP_* environment.`,
	Args: usageArgs(cobra.ExactArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isStdinTTY() {
			return errors.New("wizard requires an interactive terminal; pass flags to the convert command instead")
		}

		resolved, _, err := loadAndResolveConfig(nil)
		if err != nil {
			return err
		}
		initial, err := resolved.Effective()
		if err != nil {
			return err
		}

		req, err := runWizard(initial)
		if errors.Is(err, ErrWizardCancelled) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Wizard cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
		return executeConversion(cmd, args[0], req, logging.New("wizard").Debug)
	},
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}

// runWizard shows the wizard pages:
//  1. Preset
//  2. Toggles, pre-selected from the preset
//  3. Output options
//  4. Confirmation
func runWizard(initial preset.EffectiveConfig) (preset.Request, error) {
	c := initialChoices(initial)

	if err := runPresetPage(&c.Preset); err != nil {
		return preset.Request{}, mapWizardErr(err)
	}

	p, err := preset.ParsePreset(c.Preset)
	if err != nil {
		return preset.Request{}, err
	}
	defaults, err := preset.Defaults(p)
	if err != nil {
		return preset.Request{}, err
	}
	if p != initial.Preset {
		c.Toggles = enabledToggles(defaults)
	}

	if err := runTogglesPage(&c.Toggles); err != nil {
		return preset.Request{}, mapWizardErr(err)
	}
	if err := runOutputPage(&c); err != nil {
		return preset.Request{}, mapWizardErr(err)
	}

	req, err := wizardRequest(c)
	if err != nil {
		return preset.Request{}, err
	}
	eff, err := preset.Resolve(req)
	if err != nil {
		return preset.Request{}, err
	}

	confirmed := false
	if err := runConfirmPage(wizardSummary(eff), &confirmed); err != nil {
		return preset.Request{}, mapWizardErr(err)
	}
	if !confirmed {
		return preset.Request{}, ErrWizardCancelled
	}
	return req, nil
}

func runPresetPage(value *string) error {
	options := make([]huh.Option[string], 0, len(preset.Presets()))
	for _, p := range preset.Presets() {
		options = append(options, huh.NewOption(presetLabel(p), string(p)))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which preset?").
				Description("The preset decides the initial value of every option.").
				Options(options...).
				Value(value),
		),
	).
		WithTheme(huh.ThemeCharm()).
		WithWidth(wizardWidth).
		Run()
}

func runTogglesPage(selected *[]string) error {
	options := make([]huh.Option[string], 0, len(toggleFlags))
	for _, tf := range toggleFlags {
		options = append(options, huh.NewOption(toggleLabel(tf.Toggle), string(tf.Toggle)))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Options").
				Description("Use space to toggle. Departing from the preset makes the rendition custom.").
				Options(options...).
				Value(selected),
		),
	).
		WithTheme(huh.ThemeCharm()).
		WithWidth(wizardWidth).
		Run()
}

func runOutputPage(c *wizardChoices) error {
	formats := make([]huh.Option[string], 0, len(preset.FormatNames()))
	for _, name := range preset.FormatNames() {
		formats = append(formats, huh.NewOption(name, name))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Options(formats...).
				Value(&c.Format),
			huh.NewInput().
				Title("Language").
				Description("Leave empty for the form's default language.").
				Value(&c.Language),
			huh.NewInput().
				Title("Output path").
				Description("Leave empty to write to stdout.").
				Value(&c.OutPath),
			huh.NewConfirm().
				Title("Highlight survey components?").
				Description("html only.").
				Value(&c.Highlight),
			huh.NewConfirm().
				Title("Print the survey to the browser console?").
				Description("html only.").
				Value(&c.Debug),
		),
	).
		WithTheme(huh.ThemeCharm()).
		WithWidth(wizardWidth).
		Run()
}

func runConfirmPage(summary string, confirmed *bool) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Convert?").
				Description(summary).
				Affirmative("Convert").
				Negative("Cancel").
				Value(confirmed),
		),
	).
		WithTheme(huh.ThemeCharm()).
		WithWidth(wizardWidth).
		Run()
}

// initialChoices pre-fills the wizard from the resolved configuration.
func initialChoices(eff preset.EffectiveConfig) wizardChoices {
	p := eff.Preset
	if p == "" {
		p = preset.DefaultPreset
	}
	f := eff.Format
	if f == "" {
		f = preset.DefaultFormat
	}
	return wizardChoices{
		Preset:    string(p),
		Toggles:   enabledToggles(eff.Toggles),
		Format:    string(f),
		Language:  eff.Language,
		OutPath:   eff.OutPath,
		Highlight: eff.Highlight,
		Debug:     eff.Debug,
	}
}

// wizardRequest turns the collected choices into a Request. Every toggle is
// passed as an explicit override; the resolver reports the rendition as
// custom only when one of them differs from the preset.
func wizardRequest(c wizardChoices) (preset.Request, error) {
	p, err := preset.ParsePreset(c.Preset)
	if err != nil {
		return preset.Request{}, err
	}
	f, err := preset.ParseFormat(c.Format)
	if err != nil {
		return preset.Request{}, err
	}

	on := make(map[preset.Toggle]bool, len(c.Toggles))
	for _, name := range c.Toggles {
		t, err := preset.ParseToggle(name)
		if err != nil {
			return preset.Request{}, err
		}
		on[t] = true
	}
	overrides := preset.Overrides{}
	for _, t := range preset.AllToggles() {
		overrides[t] = on[t]
	}

	return preset.Request{
		Preset:    p,
		Overrides: overrides,
		Language:  strings.TrimSpace(c.Language),
		Format:    f,
		Debug:     c.Debug,
		Highlight: c.Highlight,
		OutPath:   strings.TrimSpace(c.OutPath),
	}, nil
}

// wizardSummary describes eff for the confirmation page.
func wizardSummary(eff preset.EffectiveConfig) string {
	var sb strings.Builder

	if eff.IsCustom() {
		fmt.Fprintf(&sb, "Preset:    custom (from %s)\n", eff.Preset)
	} else {
		fmt.Fprintf(&sb, "Preset:    %s\n", eff.Preset)
	}

	var on []string
	for _, t := range preset.AllToggles() {
		if eff.Toggles.Get(t) {
			on = append(on, string(t))
		}
	}
	if len(on) == 0 {
		sb.WriteString("Options:   none\n")
	} else {
		fmt.Fprintf(&sb, "Options:   %s\n", strings.Join(on, ", "))
	}

	fmt.Fprintf(&sb, "Format:    %s\n", eff.Format)
	lang := eff.Language
	if lang == "" {
		lang = "default"
	}
	fmt.Fprintf(&sb, "Language:  %s\n", lang)
	fmt.Fprintf(&sb, "Output:    %s\n", fmtOut(eff.OutPath))

	var extras []string
	if eff.Highlight {
		extras = append(extras, "highlight")
	}
	if eff.Debug {
		extras = append(extras, "debug")
	}
	if len(extras) > 0 {
		fmt.Fprintf(&sb, "Extras:    %s\n", strings.Join(extras, ", "))
	}

	return sb.String()
}

func enabledToggles(ts preset.Toggles) []string {
	var names []string
	for _, t := range preset.AllToggles() {
		if ts.Get(t) {
			names = append(names, string(t))
		}
	}
	return names
}

func toggleLabel(t preset.Toggle) string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// mapWizardErr converts huh-specific errors into ErrWizardCancelled so callers
// do not need to import the huh package.
func mapWizardErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrWizardCancelled
	}
	return fmt.Errorf("wizard: %w", err)
}
