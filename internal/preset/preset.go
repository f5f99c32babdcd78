// Package preset holds the bundled option presets of the paper renderer and
// the rules that turn a preset plus explicit toggle overrides into the
// effective rendering configuration.
//
// Resolution is pure: it performs no I/O and the only failure it reports is a
// *ConfigurationError.
package preset

import (
	"fmt"
	"strings"
)

// Preset names a bundle of default toggle values.
type Preset string

const (
	// Public renders a human readable form with sensitive information removed.
	Public Preset = "public"
	// Internal renders a human readable form that keeps sensitive information.
	Internal Preset = "internal"
	// Developer renders a form closest to the original XLSForm.
	Developer Preset = "developer"
	// Minimal turns every toggle off.
	Minimal Preset = "minimal"
	// Custom is recorded as provenance when overrides depart from the
	// selected preset. It cannot be selected directly.
	Custom Preset = "custom"
)

// DefaultPreset is used when no preset is requested.
const DefaultPreset = Developer

// selectable lists the presets a user may request, in display order.
var selectable = []Preset{Public, Internal, Developer, Minimal}

// Presets returns the selectable presets in display order.
func Presets() []Preset {
	out := make([]Preset, len(selectable))
	copy(out, selectable)
	return out
}

// PresetNames returns the selectable preset names as strings.
func PresetNames() []string {
	names := make([]string, len(selectable))
	for i, p := range selectable {
		names[i] = string(p)
	}
	return names
}

// String implements fmt.Stringer.
func (p Preset) String() string {
	return string(p)
}

// ParsePreset converts a user supplied name into a selectable Preset.
// Matching is case-insensitive. "custom" is rejected because it can only be
// reached by overriding toggles.
func ParsePreset(name string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(name)))
	if p == Custom {
		return "", &ConfigurationError{
			Field:   "preset",
			Message: `"custom" cannot be selected directly; set individual toggles instead`,
		}
	}
	if _, ok := table[p]; !ok {
		return "", &ConfigurationError{
			Field: "preset",
			Message: fmt.Sprintf("unknown preset %q; must be one of: %s",
				name, strings.Join(PresetNames(), ", ")),
		}
	}
	return p, nil
}

// table holds the default toggle values of every selectable preset.
var table = map[Preset]Toggles{
	Public: {
		InputReplacement: true,
		Exclusion:        true,
		HRRelevant:       true,
		TextReplacements: true,
	},
	Internal: {
		HRRelevant:       true,
		TextReplacements: true,
	},
	Developer: {},
	Minimal:   {},
}

// Defaults returns the default toggle row of p.
func Defaults(p Preset) (Toggles, error) {
	row, ok := table[p]
	if !ok {
		return Toggles{}, &ConfigurationError{
			Field:   "preset",
			Message: fmt.Sprintf("no defaults defined for preset %q", p),
		}
	}
	return row, nil
}
