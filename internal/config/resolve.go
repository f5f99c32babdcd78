package config

import (
	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
)

// ConfigSource identifies where a configuration value came from.
type ConfigSource string

const (
	// SourceDefault indicates the value came from built-in defaults.
	SourceDefault ConfigSource = "default"
	// SourcePreset indicates a toggle value taken from the preset row.
	SourcePreset ConfigSource = "preset"
	// SourceFile indicates the value came from ppp.toml.
	SourceFile ConfigSource = "file"
	// SourceEnv indicates the value came from an environment variable.
	SourceEnv ConfigSource = "env"
	// SourceCLI indicates the value came from a CLI flag.
	SourceCLI ConfigSource = "cli"
)

// ResolvedConfig holds the merged configuration with source tracking.
type ResolvedConfig struct {
	Config  *Config
	OutPath string
	Sources map[string]ConfigSource // key is dotted path, e.g. "render.preset"
	Path    string                  // config file used (empty if none)
}

// CLIOverrides captures flag values the user actually supplied. A nil
// pointer, or a toggle absent from Toggles, means "not set".
type CLIOverrides struct {
	Preset    *string
	Language  *string
	Format    *string
	Debug     *bool
	Highlight *bool
	OutPath   *string
	Toggles   preset.Overrides
}

// EnvFunc looks up environment variables. os.LookupEnv in production.
type EnvFunc func(key string) (string, bool)

// Environment variables read by the env layer.
const (
	EnvPreset   = "PPP_PRESET"
	EnvLanguage = "PPP_LANGUAGE"
	EnvFormat   = "PPP_FORMAT"
)

// Resolve merges configuration in priority order:
// CLI flags > environment variables > config file > defaults.
//
// Toggles have no default layer: a toggle that no layer sets is recorded with
// SourcePreset and is decided later by the preset table.
func Resolve(defaults *Config, fileConfig *Config, envFn EnvFunc, overrides *CLIOverrides) *ResolvedConfig {
	rc := &ResolvedConfig{
		Config:  &Config{},
		Sources: make(map[string]ConfigSource),
	}

	if defaults == nil {
		defaults = &Config{}
	}
	if envFn == nil {
		envFn = func(string) (string, bool) { return "", false }
	}
	if overrides == nil {
		overrides = &CLIOverrides{}
	}

	resolveRenderFromDefaults(rc, defaults)
	for _, t := range preset.AllToggles() {
		rc.Sources[toggleKey(t)] = SourcePreset
	}

	if fileConfig != nil {
		resolveRenderFromFile(rc, fileConfig)
		resolveTogglesFromFile(rc, fileConfig)
	}

	resolveFromEnv(rc, envFn)
	resolveFromCLI(rc, overrides)

	return rc
}

// Request converts the resolved values into a preset.Request, parsing the
// preset and format names.
func (rc *ResolvedConfig) Request() (preset.Request, error) {
	r := rc.Config.Render

	p, err := preset.ParsePreset(r.Preset)
	if err != nil {
		return preset.Request{}, err
	}
	f, err := preset.ParseFormat(r.Format)
	if err != nil {
		return preset.Request{}, err
	}

	return preset.Request{
		Preset:    p,
		Overrides: rc.Config.Toggles.Overrides(),
		Language:  r.Language,
		Format:    f,
		Debug:     derefBool(r.Debug),
		Highlight: derefBool(r.Highlight),
		OutPath:   rc.OutPath,
	}, nil
}

// Effective resolves the preset table against the merged configuration.
func (rc *ResolvedConfig) Effective() (preset.EffectiveConfig, error) {
	req, err := rc.Request()
	if err != nil {
		return preset.EffectiveConfig{}, err
	}
	return preset.Resolve(req)
}

// --- Layer 1: Defaults ---

func resolveRenderFromDefaults(rc *ResolvedConfig, defaults *Config) {
	r := &rc.Config.Render
	d := &defaults.Render

	setString(&r.Preset, d.Preset, "render.preset", SourceDefault, rc.Sources)
	setString(&r.Language, d.Language, "render.language", SourceDefault, rc.Sources)
	setString(&r.Format, d.Format, "render.format", SourceDefault, rc.Sources)
	setBool(&r.Debug, d.Debug, "render.debug", SourceDefault, rc.Sources)
	setBool(&r.Highlight, d.Highlight, "render.highlight", SourceDefault, rc.Sources)
	rc.Sources["render.outpath"] = SourceDefault
}

// --- Layer 2: File ---

func resolveRenderFromFile(rc *ResolvedConfig, file *Config) {
	r := &rc.Config.Render
	f := &file.Render

	mergeString(&r.Preset, f.Preset, "render.preset", SourceFile, rc.Sources)
	mergeString(&r.Language, f.Language, "render.language", SourceFile, rc.Sources)
	mergeString(&r.Format, f.Format, "render.format", SourceFile, rc.Sources)
	mergeBool(&r.Debug, f.Debug, "render.debug", SourceFile, rc.Sources)
	mergeBool(&r.Highlight, f.Highlight, "render.highlight", SourceFile, rc.Sources)
}

func resolveTogglesFromFile(rc *ResolvedConfig, file *Config) {
	for _, t := range preset.AllToggles() {
		if v, ok := file.Toggles.Lookup(t); ok {
			setToggle(rc, t, v, SourceFile)
		}
	}
}

// --- Layer 3: Environment ---

// Environment variable mapping:
//
//	PPP_PRESET    -> render.preset
//	PPP_LANGUAGE  -> render.language
//	PPP_FORMAT    -> render.format
func resolveFromEnv(rc *ResolvedConfig, envFn EnvFunc) {
	r := &rc.Config.Render

	if val, ok := envFn(EnvPreset); ok && val != "" {
		r.Preset = val
		rc.Sources["render.preset"] = SourceEnv
	}
	if val, ok := envFn(EnvLanguage); ok {
		r.Language = val
		rc.Sources["render.language"] = SourceEnv
	}
	if val, ok := envFn(EnvFormat); ok && val != "" {
		r.Format = val
		rc.Sources["render.format"] = SourceEnv
	}
}

// --- Layer 4: CLI overrides ---

func resolveFromCLI(rc *ResolvedConfig, overrides *CLIOverrides) {
	r := &rc.Config.Render

	if overrides.Preset != nil {
		r.Preset = *overrides.Preset
		rc.Sources["render.preset"] = SourceCLI
	}
	if overrides.Language != nil {
		r.Language = *overrides.Language
		rc.Sources["render.language"] = SourceCLI
	}
	if overrides.Format != nil {
		r.Format = *overrides.Format
		rc.Sources["render.format"] = SourceCLI
	}
	if overrides.Debug != nil {
		v := *overrides.Debug
		r.Debug = &v
		rc.Sources["render.debug"] = SourceCLI
	}
	if overrides.Highlight != nil {
		v := *overrides.Highlight
		r.Highlight = &v
		rc.Sources["render.highlight"] = SourceCLI
	}
	if overrides.OutPath != nil {
		rc.OutPath = *overrides.OutPath
		rc.Sources["render.outpath"] = SourceCLI
	}
	for _, t := range preset.AllToggles() {
		if v, ok := overrides.Toggles[t]; ok {
			setToggle(rc, t, v, SourceCLI)
		}
	}
}

// --- Helpers ---

func toggleKey(t preset.Toggle) string {
	return "toggles." + string(t)
}

func setToggle(rc *ResolvedConfig, t preset.Toggle, v bool, source ConfigSource) {
	slot := rc.Config.Toggles.field(t)
	if slot == nil {
		return
	}
	*slot = &v
	rc.Sources[toggleKey(t)] = source
}

// setString unconditionally sets the target to the given value and records the source.
func setString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	*target = value
	sources[path] = source
}

// mergeString overwrites the target only if value is non-empty. An empty
// string in the file means "not set in file".
func mergeString(target *string, value string, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != "" {
		*target = value
		sources[path] = source
	}
}

// setBool copies value (which may be nil) into target and records the source.
func setBool(target **bool, value *bool, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != nil {
		v := *value
		*target = &v
	} else {
		*target = nil
	}
	sources[path] = source
}

// mergeBool overwrites the target only if value is set.
func mergeBool(target **bool, value *bool, path string, source ConfigSource, sources map[string]ConfigSource) {
	if value != nil {
		v := *value
		*target = &v
		sources[path] = source
	}
}

func derefBool(b *bool) bool {
	return b != nil && *b
}
