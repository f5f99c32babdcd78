package preset

import (
	"fmt"
	"strings"
)

// Format is an output document format.
type Format string

const (
	// FormatHTML renders an HTML document.
	FormatHTML Format = "html"
	// FormatText renders plain text.
	FormatText Format = "text"
	// FormatPDF is reserved; it is recognised but not yet supported.
	FormatPDF Format = "pdf"
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatHTML

// supportedFormats lists the formats that can currently be generated.
var supportedFormats = []Format{FormatHTML, FormatText}

// FormatNames returns the names of the supported formats.
func FormatNames() []string {
	names := make([]string, len(supportedFormats))
	for i, f := range supportedFormats {
		names[i] = string(f)
	}
	return names
}

// String implements fmt.Stringer.
func (f Format) String() string {
	return string(f)
}

// Supported reports whether f can currently be generated.
func (f Format) Supported() bool {
	for _, s := range supportedFormats {
		if f == s {
			return true
		}
	}
	return false
}

// SupportsVisual reports whether f has a visual layout, which is required
// for component highlighting.
func (f Format) SupportsVisual() bool {
	return f == FormatHTML || f == FormatPDF
}

// ParseFormat converts a user supplied name into a supported Format.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	if f == FormatPDF {
		return "", &ConfigurationError{
			Field:   "format",
			Message: `format "pdf" is not yet supported`,
		}
	}
	if !f.Supported() {
		return "", &ConfigurationError{
			Field: "format",
			Message: fmt.Sprintf("unknown format %q; must be one of: %s",
				name, strings.Join(FormatNames(), ", ")),
		}
	}
	return f, nil
}
