// Package config loads ppp.toml and merges it with environment variables and
// command-line flags into a single resolved rendering configuration.
package config

import "github.com/AbdelazizMoustafa10m/ppp/internal/preset"

// Config is the top-level configuration structure mapping to ppp.toml.
type Config struct {
	Render  RenderConfig `toml:"render"`
	Toggles ToggleConfig `toml:"toggles"`
}

// RenderConfig maps to the [render] section in ppp.toml.
type RenderConfig struct {
	Preset    string `toml:"preset"`
	Language  string `toml:"language"`
	Format    string `toml:"format"`
	Debug     *bool  `toml:"debug"`
	Highlight *bool  `toml:"highlight"`
}

// ToggleConfig maps to the [toggles] section in ppp.toml. A nil field is
// not set and leaves the preset default in place.
type ToggleConfig struct {
	InputReplacement *bool `toml:"input_replacement"`
	Exclusion        *bool `toml:"exclusion"`
	HRRelevant       *bool `toml:"hr_relevant"`
	HRConstraint     *bool `toml:"hr_constraint"`
	NoConstraint     *bool `toml:"no_constraint"`
	TextReplacements *bool `toml:"text_replacements"`
}

// field returns the slot in tc that holds t.
func (tc *ToggleConfig) field(t preset.Toggle) **bool {
	switch t {
	case preset.InputReplacement:
		return &tc.InputReplacement
	case preset.Exclusion:
		return &tc.Exclusion
	case preset.HRRelevant:
		return &tc.HRRelevant
	case preset.HRConstraint:
		return &tc.HRConstraint
	case preset.NoConstraint:
		return &tc.NoConstraint
	case preset.TextReplacements:
		return &tc.TextReplacements
	default:
		return nil
	}
}

// Lookup returns the configured value of t and whether it was set.
func (tc ToggleConfig) Lookup(t preset.Toggle) (bool, bool) {
	slot := tc.field(t)
	if slot == nil || *slot == nil {
		return false, false
	}
	return **slot, true
}

// Overrides converts the set toggles into preset overrides.
func (tc ToggleConfig) Overrides() preset.Overrides {
	o := preset.Overrides{}
	for _, t := range preset.AllToggles() {
		if v, ok := tc.Lookup(t); ok {
			o[t] = v
		}
	}
	return o
}
