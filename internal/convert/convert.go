// Package convert runs a single XLSForm conversion: it resolves the rendering
// options, opens the output destination, invokes the Renderer and classifies
// the outcome so the CLI can turn it into a message and an exit code.
package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AbdelazizMoustafa10m/ppp/internal/logging"
	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
	"github.com/AbdelazizMoustafa10m/ppp/internal/render"
)

// Kind classifies the outcome of a conversion.
type Kind int

const (
	// KindOK means the document was written.
	KindOK Kind = iota
	// KindConfiguration means the options were rejected before any I/O.
	KindConfiguration
	// KindConversion means the renderer rejected the form.
	KindConversion
	// KindIO means reading or writing failed outside the renderer's domain.
	KindIO
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindConfiguration:
		return "configuration"
	case KindConversion:
		return "conversion"
	case KindIO:
		return "io"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Exit codes returned by the CLI for each Kind.
const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitConfiguration = 2
)

// ExitCode returns the process exit code for k.
func (k Kind) ExitCode() int {
	switch k {
	case KindOK:
		return ExitOK
	case KindConfiguration:
		return ExitConfiguration
	default:
		return ExitFailure
	}
}

// Error wraps a failed conversion with the input file name.
type Error struct {
	File string
	Err  error
}

// Error formats the user-facing message.
func (e *Error) Error() string {
	return fmt.Sprintf("An error occurred while attempting to convert '%s':\n%s", e.File, e.Err)
}

// Unwrap returns the renderer's error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Result is the typed outcome of Run.
type Result struct {
	Kind   Kind
	Config preset.EffectiveConfig
	// Output is the file written, or empty when the document went to stdout.
	Output string
	Bytes  int
	Err    error
}

// OK reports whether the conversion succeeded.
func (r Result) OK() bool {
	return r.Kind == KindOK
}

// Job describes one conversion.
type Job struct {
	InFile  string
	Request preset.Request
	// Stdout receives the document when Request.OutPath is empty.
	Stdout io.Writer
}

// Run resolves job.Request, renders job.InFile with r and writes the
// document. The document is buffered and only written once the renderer has
// succeeded, so a failed conversion never leaves a partial output behind.
func Run(ctx context.Context, r render.Renderer, job Job) Result {
	logger := logging.New("convert")

	cfg, err := preset.Resolve(job.Request)
	if err != nil {
		return Result{Kind: KindConfiguration, Err: err}
	}
	if cfg.IsCustom() {
		logger.Debug("options depart from preset", "preset", cfg.Preset, "changed", cfg.Changed())
	}
	logger.Debug("resolved options", "config", cfg.String())

	var buf bytes.Buffer
	rerr := r.Run(ctx, render.Job{InFile: job.InFile, Out: &buf, Config: cfg})
	if rerr != nil {
		return classify(job.InFile, cfg, rerr)
	}

	res := Result{Kind: KindOK, Config: cfg, Output: cfg.OutPath, Bytes: buf.Len()}
	if cfg.OutPath == "" {
		out := job.Stdout
		if out == nil {
			out = os.Stdout
		}
		if _, err := out.Write(buf.Bytes()); err != nil {
			return Result{Kind: KindIO, Config: cfg, Err: fmt.Errorf("writing to stdout: %w", err)}
		}
	} else if err := writeFile(cfg.OutPath, buf.Bytes()); err != nil {
		return Result{Kind: KindIO, Config: cfg, Err: err}
	}

	logger.Info("converted form", "file", job.InFile, "output", outputName(cfg.OutPath),
		"preset", cfg.Provenance, "format", cfg.Format, "bytes", res.Bytes)
	return res
}

// KindOf classifies an error returned by Run or by option parsing.
func KindOf(err error) Kind {
	if err == nil {
		return KindOK
	}
	var cfgErr *preset.ConfigurationError
	if errors.As(err, &cfgErr) {
		return KindConfiguration
	}
	var convErr *render.ConversionError
	if errors.As(err, &convErr) {
		return KindConversion
	}
	return KindIO
}

func classify(file string, cfg preset.EffectiveConfig, err error) Result {
	switch kind := KindOf(err); kind {
	case KindConfiguration:
		return Result{Kind: kind, Config: cfg, Err: err}
	case KindConversion:
		return Result{Kind: kind, Config: cfg, Err: &Error{File: file, Err: err}}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return Result{Kind: KindIO, Config: cfg, Err: fmt.Errorf("converting %s: %w", file, err)}
	}
	return Result{Kind: KindIO, Config: cfg, Err: &Error{File: file, Err: err}}
}

// writeFile writes data to a temp file next to path and renames it into
// place.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ppp-*")
	if err != nil {
		return fmt.Errorf("creating output in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("moving output to %s: %w", path, err)
	}
	return nil
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
