package render

import (
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"io"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	htmlTemplate = "templates/document.html.tmpl"
	textTemplate = "templates/document.txt.tmpl"
)

// ErrContextClosed is returned when a closed Context is used.
var ErrContextClosed = errors.New("render context closed")

// Context owns the parsed document templates. Build one with NewContext,
// share it across renderers for the lifetime of a run, and Close it when the
// run ends.
type Context struct {
	mu     sync.RWMutex
	html   *htmltemplate.Template
	text   *texttemplate.Template
	closed bool
}

// NewContext parses the embedded templates.
func NewContext() (*Context, error) {
	funcs := map[string]any{
		"rule": func(s string) string { return strings.Repeat("=", len([]rune(s))) },
		"check": func(on bool) string {
			if on {
				return "x"
			}
			return " "
		},
	}

	h, err := htmltemplate.New("document.html.tmpl").Funcs(funcs).ParseFS(templateFS, htmlTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", htmlTemplate, err)
	}
	t, err := texttemplate.New("document.txt.tmpl").Funcs(funcs).ParseFS(templateFS, textTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", textTemplate, err)
	}
	return &Context{html: h, text: t}, nil
}

// Execute renders data with the template for format.
func (c *Context) Execute(w io.Writer, format preset.Format, data any) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return ErrContextClosed
	}
	switch format {
	case preset.FormatHTML:
		return c.html.Execute(w, data)
	case preset.FormatText:
		return c.text.Execute(w, data)
	default:
		return fmt.Errorf("no template for format %q", format)
	}
}

// Close releases the templates. Closing twice is a no-op.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.html = nil
	c.text = nil
	return nil
}
