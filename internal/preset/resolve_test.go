package preset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Default table ---

func TestResolve_DefaultRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		preset Preset
		want   Toggles
	}{
		{
			preset: Public,
			want: Toggles{
				InputReplacement: true,
				Exclusion:        true,
				HRRelevant:       true,
				HRConstraint:     false,
				NoConstraint:     false,
				TextReplacements: true,
			},
		},
		{
			preset: Internal,
			want: Toggles{
				HRRelevant:       true,
				TextReplacements: true,
			},
		},
		{preset: Developer, want: Toggles{}},
		{preset: Minimal, want: Toggles{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			t.Parallel()
			cfg, err := Resolve(Request{Preset: tt.preset})
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Toggles)
			assert.Equal(t, tt.preset, cfg.Preset)
			assert.Equal(t, tt.preset, cfg.Provenance, "no overrides must keep the preset as provenance")
			assert.False(t, cfg.IsCustom())
			assert.Empty(t, cfg.Changed())
		})
	}
}

func TestResolve_EmptyPresetUsesDeveloper(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Request{})
	require.NoError(t, err)
	assert.Equal(t, Developer, cfg.Preset)
	assert.Equal(t, Developer, cfg.Provenance)
	assert.Equal(t, FormatHTML, cfg.Format)
}

func TestResolve_PublicExample(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Request{Preset: Public, Overrides: Overrides{}})
	require.NoError(t, err)
	assert.Equal(t, map[Toggle]bool{
		InputReplacement: true,
		Exclusion:        true,
		HRRelevant:       true,
		HRConstraint:     false,
		NoConstraint:     false,
		TextReplacements: true,
	}, cfg.Toggles.Map())
	assert.Equal(t, Public, cfg.Provenance)
}

// --- Overrides and provenance ---

func TestResolve_DeveloperWithExclusion(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Request{Preset: Developer, Overrides: Overrides{Exclusion: true}})
	require.NoError(t, err)

	assert.Equal(t, Toggles{Exclusion: true}, cfg.Toggles)
	assert.Equal(t, Developer, cfg.Preset)
	assert.Equal(t, Custom, cfg.Provenance)
	assert.Equal(t, []Toggle{Exclusion}, cfg.Changed())
}

func TestResolve_DifferingOverrideMakesCustom(t *testing.T) {
	t.Parallel()

	for _, p := range Presets() {
		for _, tog := range AllToggles() {
			p, tog := p, tog
			t.Run(string(p)+"/"+string(tog), func(t *testing.T) {
				t.Parallel()
				base, err := Defaults(p)
				require.NoError(t, err)

				cfg, err := Resolve(Request{Preset: p, Overrides: Overrides{tog: !base.Get(tog)}})
				require.NoError(t, err)
				assert.Equal(t, Custom, cfg.Provenance)
				assert.Equal(t, !base.Get(tog), cfg.Toggles.Get(tog))
			})
		}
	}
}

func TestResolve_NoOpOverridesKeepPreset(t *testing.T) {
	t.Parallel()

	for _, p := range Presets() {
		p := p
		t.Run(string(p), func(t *testing.T) {
			t.Parallel()
			base, err := Defaults(p)
			require.NoError(t, err)

			overrides := Overrides{}
			for tog, v := range base.Map() {
				overrides[tog] = v
			}

			cfg, err := Resolve(Request{Preset: p, Overrides: overrides})
			require.NoError(t, err)
			assert.Equal(t, p, cfg.Provenance)
			assert.Equal(t, base, cfg.Toggles)
		})
	}
}

func TestResolve_ExplicitFalseOverride(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Request{Preset: Public, Overrides: Overrides{InputReplacement: false}})
	require.NoError(t, err)
	assert.False(t, cfg.Toggles.InputReplacement)
	assert.True(t, cfg.Toggles.Exclusion)
	assert.Equal(t, Custom, cfg.Provenance)
}

func TestResolve_MixedOverridesOneChanging(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Request{
		Preset: Internal,
		Overrides: Overrides{
			HRRelevant:   true, // same as default
			HRConstraint: true, // differs
		},
	})
	require.NoError(t, err)
	assert.Equal(t, Custom, cfg.Provenance)
	assert.Equal(t, []Toggle{HRConstraint}, cfg.Changed())
}

func TestResolve_IsPure(t *testing.T) {
	t.Parallel()

	req := Request{
		Preset:    Internal,
		Overrides: Overrides{Exclusion: true, TextReplacements: false},
		Language:  "English",
		Format:    FormatText,
		OutPath:   "out.txt",
	}

	first, err := Resolve(req)
	require.NoError(t, err)
	second, err := Resolve(req)
	require.NoError(t, err)

	assert.True(t, first == second, "identical inputs must yield identical configs")
	assert.Equal(t, Overrides{Exclusion: true, TextReplacements: false}, req.Overrides, "overrides must not be mutated")
}

func TestResolve_CarriesNonToggleSettings(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Request{
		Preset:    Minimal,
		Language:  "Français",
		Format:    FormatHTML,
		Debug:     true,
		Highlight: true,
		OutPath:   "/tmp/form.html",
	})
	require.NoError(t, err)
	assert.Equal(t, "Français", cfg.Language)
	assert.Equal(t, FormatHTML, cfg.Format)
	assert.True(t, cfg.Debug)
	assert.True(t, cfg.Highlight)
	assert.Equal(t, "/tmp/form.html", cfg.OutPath)
}

// --- Validation ---

func TestResolve_HighlightFormatCompatibility(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  Format
		wantErr bool
	}{
		{name: "html succeeds", format: FormatHTML, wantErr: false},
		{name: "text fails", format: FormatText, wantErr: true},
		{name: "pdf is reserved", format: FormatPDF, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Resolve(Request{Preset: Developer, Format: tt.format, Highlight: true})
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			var cfgErr *ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "expected *ConfigurationError, got %T", err)
		})
	}
}

func TestResolve_HighlightTextMessage(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Request{Format: FormatText, Highlight: true})
	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "highlight", cfgErr.Field)
	assert.Contains(t, err.Error(), "'html', 'pdf'")
}

func TestResolve_TextWithoutHighlight(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Request{Format: FormatText})
	require.NoError(t, err)
	assert.Equal(t, FormatText, cfg.Format)
}

func TestResolve_RejectsCustomAndUnknownPresets(t *testing.T) {
	t.Parallel()

	for _, p := range []Preset{Custom, "secret"} {
		_, err := Resolve(Request{Preset: p})
		require.Error(t, err, "preset %q", p)
		var cfgErr *ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
		assert.Equal(t, "preset", cfgErr.Field)
	}
}

func TestResolve_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := Resolve(Request{Format: "docx"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestEffectiveConfig_String(t *testing.T) {
	t.Parallel()

	cfg, err := Resolve(Request{Preset: Internal, Overrides: Overrides{NoConstraint: true}})
	require.NoError(t, err)
	assert.Equal(t,
		"preset=internal provenance=custom format=html toggles=[hr_relevant,no_constraint,text_replacements]",
		cfg.String())
}
