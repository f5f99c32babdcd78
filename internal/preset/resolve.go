package preset

import (
	"fmt"
	"strings"
)

// Request is the input to Resolve.
type Request struct {
	// Preset selects the baseline toggle row. Empty means DefaultPreset.
	Preset Preset
	// Overrides holds toggle values the caller chose explicitly.
	Overrides Overrides
	// Language is the language to render; empty defers to the form.
	Language string
	// Format is the output format. Empty means DefaultFormat.
	Format Format
	// Debug enables the html debug payload.
	Debug bool
	// Highlight enables component highlighting.
	Highlight bool
	// OutPath is the output destination; empty means standard output.
	OutPath string
}

// EffectiveConfig is the resolved configuration for a single conversion.
// It is a value type and compares with ==.
type EffectiveConfig struct {
	Preset     Preset  `json:"preset"`
	Provenance Preset  `json:"provenance"`
	Toggles    Toggles `json:"toggles"`
	Language   string  `json:"language,omitempty"`
	Format     Format  `json:"format"`
	Debug      bool    `json:"debug"`
	Highlight  bool    `json:"highlight"`
	OutPath    string  `json:"outpath,omitempty"`
}

// IsCustom reports whether the toggles depart from the selected preset.
func (c EffectiveConfig) IsCustom() bool {
	return c.Provenance == Custom
}

// Changed lists the toggles whose values differ from the preset defaults.
func (c EffectiveConfig) Changed() []Toggle {
	base, err := Defaults(c.Preset)
	if err != nil {
		return nil
	}
	return c.Toggles.Diff(base)
}

// String renders a compact single-line summary suitable for logging.
func (c EffectiveConfig) String() string {
	var on []string
	for _, t := range allToggles {
		if c.Toggles.Get(t) {
			on = append(on, string(t))
		}
	}
	return fmt.Sprintf("preset=%s provenance=%s format=%s toggles=[%s]",
		c.Preset, c.Provenance, c.Format, strings.Join(on, ","))
}

// Resolve computes the effective configuration for req.
//
// The preset's default row is looked up and every override is applied on
// top. If any override changes a default the provenance becomes Custom;
// overrides that repeat the defaults leave the provenance unchanged.
// Highlighting with a format that has no visual layout is rejected.
func Resolve(req Request) (EffectiveConfig, error) {
	p := req.Preset
	if p == "" {
		p = DefaultPreset
	}
	if p == Custom {
		return EffectiveConfig{}, &ConfigurationError{
			Field:   "preset",
			Message: `"custom" cannot be selected directly; set individual toggles instead`,
		}
	}
	base, err := Defaults(p)
	if err != nil {
		return EffectiveConfig{}, err
	}

	toggles := req.Overrides.Apply(base)
	provenance := p
	if len(toggles.Diff(base)) > 0 {
		provenance = Custom
	}

	format := req.Format
	if format == "" {
		format = DefaultFormat
	}
	if err := validateFormat(format, req.Highlight); err != nil {
		return EffectiveConfig{}, err
	}

	return EffectiveConfig{
		Preset:     p,
		Provenance: provenance,
		Toggles:    toggles,
		Language:   req.Language,
		Format:     format,
		Debug:      req.Debug,
		Highlight:  req.Highlight,
		OutPath:    req.OutPath,
	}, nil
}

func validateFormat(f Format, highlight bool) error {
	if highlight && !f.SupportsVisual() {
		return &ConfigurationError{
			Field: "highlight",
			Message: fmt.Sprintf("can only specify highlighting when using the following formats: 'html', 'pdf' (got %q)",
				f),
		}
	}
	if !f.Supported() {
		if f == FormatPDF {
			return &ConfigurationError{Field: "format", Message: `format "pdf" is not yet supported`}
		}
		return &ConfigurationError{
			Field: "format",
			Message: fmt.Sprintf("unknown format %q; must be one of: %s",
				f, strings.Join(FormatNames(), ", ")),
		}
	}
	return nil
}
