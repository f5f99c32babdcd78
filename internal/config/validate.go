package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
)

// ValidationSeverity indicates whether a validation issue is an error or warning.
type ValidationSeverity string

const (
	// SeverityError indicates a fatal validation issue; the configuration is unusable.
	SeverityError ValidationSeverity = "error"
	// SeverityWarning indicates the configuration works but may not do what
	// the user expects.
	SeverityWarning ValidationSeverity = "warning"
)

// ValidationIssue represents a single validation finding.
type ValidationIssue struct {
	Severity ValidationSeverity
	Field    string // dotted path, e.g., "render.format"
	Message  string
}

// ValidationResult holds all validation findings.
type ValidationResult struct {
	Issues []ValidationIssue
}

// HasErrors returns true if any issue has error severity.
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors()) > 0
}

// HasWarnings returns true if any issue has warning severity.
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings()) > 0
}

// Errors returns only error-severity issues.
func (vr *ValidationResult) Errors() []ValidationIssue {
	return vr.filter(SeverityError)
}

// Warnings returns only warning-severity issues.
func (vr *ValidationResult) Warnings() []ValidationIssue {
	return vr.filter(SeverityWarning)
}

func (vr *ValidationResult) filter(sev ValidationSeverity) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range vr.Issues {
		if issue.Severity == sev {
			out = append(out, issue)
		}
	}
	return out
}

// Validate checks cfg for unusable names and option conflicts, and reports
// unknown keys found in meta (nil when no file was loaded).
func Validate(cfg *Config, meta *toml.MetaData) *ValidationResult {
	vr := &ValidationResult{}

	if cfg == nil {
		addError(vr, "", "configuration is nil")
		return vr
	}

	validateRender(vr, &cfg.Render)
	validateUnknownKeys(vr, meta)

	return vr
}

// validateRender checks the [render] section. Empty preset and format values
// are allowed; the defaults fill them in.
func validateRender(vr *ValidationResult, r *RenderConfig) {
	if r.Preset != "" {
		if _, err := preset.ParsePreset(r.Preset); err != nil {
			addError(vr, "render.preset", configMessage(err))
		}
	}

	format := preset.DefaultFormat
	if r.Format != "" {
		f, err := preset.ParseFormat(r.Format)
		if err != nil {
			addError(vr, "render.format", configMessage(err))
			return
		}
		format = f
	}

	if derefBool(r.Highlight) && !format.SupportsVisual() {
		addError(vr, "render.highlight",
			fmt.Sprintf("highlighting requires a visual format (html, pdf); format is %q", format))
	}
	if derefBool(r.Debug) && format != preset.FormatHTML {
		addWarning(vr, "render.debug",
			fmt.Sprintf("debug mode only affects html output; format is %q", format))
	}
	if r.Language != "" && strings.TrimSpace(r.Language) == "" {
		addWarning(vr, "render.language", "language is blank")
	}
}

// validateUnknownKeys checks for TOML keys that did not map to any config struct field.
func validateUnknownKeys(vr *ValidationResult, meta *toml.MetaData) {
	if meta == nil {
		return
	}

	for _, key := range meta.Undecoded() {
		path := strings.Join(key, ".")
		addWarning(vr, path, "unknown configuration key")
	}
}

// configMessage extracts the bare message from a *preset.ConfigurationError.
func configMessage(err error) string {
	var cfgErr *preset.ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr.Message
	}
	return err.Error()
}

// addError appends an error-severity issue to the validation result.
func addError(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityError,
		Field:    field,
		Message:  message,
	})
}

// addWarning appends a warning-severity issue to the validation result.
func addWarning(vr *ValidationResult, field, message string) {
	vr.Issues = append(vr.Issues, ValidationIssue{
		Severity: SeverityWarning,
		Field:    field,
		Message:  message,
	})
}
