package config

import "github.com/AbdelazizMoustafa10m/ppp/internal/preset"

// NewDefaults returns a Config populated with the built-in defaults. Toggles
// are left unset so that the selected preset decides them.
func NewDefaults() *Config {
	return &Config{
		Render: RenderConfig{
			Preset: string(preset.DefaultPreset),
			Format: string(preset.DefaultFormat),
		},
	}
}
