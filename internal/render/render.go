// Package render defines the Renderer collaborator that turns a resolved
// configuration and an XLSForm file into a paper rendition, and ships Engine,
// a Renderer that produces the document frame around the form body.
package render

import (
	"context"
	"io"

	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
)

// Job is a single conversion request.
type Job struct {
	// InFile is the path of the source XLSForm.
	InFile string
	// Out receives the rendered document.
	Out io.Writer
	// Config is the resolved rendering configuration.
	Config preset.EffectiveConfig
}

// Language returns the requested language; empty defers to the form.
func (j Job) Language() string { return j.Config.Language }

// Format returns the output format.
func (j Job) Format() preset.Format { return j.Config.Format }

// Renderer converts one XLSForm into a document. Domain failures, such as a
// malformed spreadsheet or an unknown language, are returned as
// *ConversionError; any other error is an I/O failure.
type Renderer interface {
	Run(ctx context.Context, job Job) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, job Job) error

// Run calls f(ctx, job).
func (f RendererFunc) Run(ctx context.Context, job Job) error {
	return f(ctx, job)
}
