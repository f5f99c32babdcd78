package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
	"github.com/AbdelazizMoustafa10m/ppp/internal/render"
)

// recordingRenderer captures the job it receives and writes body.
type recordingRenderer struct {
	calls int
	job   render.Job
	body  string
	err   error
}

func (r *recordingRenderer) Run(_ context.Context, job render.Job) error {
	r.calls++
	r.job = job
	if job.Out != nil && r.body != "" {
		_, _ = job.Out.Write([]byte(r.body))
	}
	return r.err
}

func TestRun_WritesToStdout(t *testing.T) {
	t.Parallel()

	rr := &recordingRenderer{body: "<html></html>"}
	var stdout bytes.Buffer

	res := Run(context.Background(), rr, Job{
		InFile:  "form.xlsx",
		Request: preset.Request{Preset: preset.Public, Language: "English"},
		Stdout:  &stdout,
	})

	require.NoError(t, res.Err)
	assert.True(t, res.OK())
	assert.Equal(t, KindOK, res.Kind)
	assert.Equal(t, "<html></html>", stdout.String())
	assert.Empty(t, res.Output)
	assert.Equal(t, len("<html></html>"), res.Bytes)

	require.Equal(t, 1, rr.calls)
	assert.Equal(t, "form.xlsx", rr.job.InFile)
	assert.Equal(t, "English", rr.job.Language())
	assert.Equal(t, preset.FormatHTML, rr.job.Format())
	assert.Equal(t, preset.Public, rr.job.Config.Provenance)
	assert.True(t, rr.job.Config.Toggles.InputReplacement)
}

func TestRun_WritesToOutPath(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "form.txt")
	rr := &recordingRenderer{body: "paper form\n"}
	var stdout bytes.Buffer

	res := Run(context.Background(), rr, Job{
		InFile:  "form.xlsx",
		Request: preset.Request{Format: preset.FormatText, OutPath: out},
		Stdout:  &stdout,
	})

	require.NoError(t, res.Err)
	assert.Equal(t, out, res.Output)
	assert.Empty(t, stdout.String(), "nothing goes to stdout when an outpath is given")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "paper form\n", string(data))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must be cleaned up")
}

func TestRun_ConfigurationErrorSkipsRenderer(t *testing.T) {
	t.Parallel()

	rr := &recordingRenderer{}
	res := Run(context.Background(), rr, Job{
		InFile:  "form.xlsx",
		Request: preset.Request{Format: preset.FormatText, Highlight: true},
	})

	assert.Equal(t, KindConfiguration, res.Kind)
	assert.Equal(t, ExitConfiguration, res.Kind.ExitCode())
	var cfgErr *preset.ConfigurationError
	assert.True(t, errors.As(res.Err, &cfgErr))
	assert.Zero(t, rr.calls, "renderer must not run on configuration errors")
}

func TestRun_ConversionErrorMessage(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "form.html")
	rr := &recordingRenderer{
		body: "partial",
		err:  &render.ConversionError{File: "bad.xlsx", Message: "language 'Klingon' not found"},
	}
	var stdout bytes.Buffer

	res := Run(context.Background(), rr, Job{
		InFile:  "bad.xlsx",
		Request: preset.Request{OutPath: out},
		Stdout:  &stdout,
	})

	assert.Equal(t, KindConversion, res.Kind)
	assert.Equal(t, ExitFailure, res.Kind.ExitCode())
	require.Error(t, res.Err)
	assert.Equal(t,
		"An error occurred while attempting to convert 'bad.xlsx':\nlanguage 'Klingon' not found",
		res.Err.Error())

	var convErr *render.ConversionError
	assert.True(t, errors.As(res.Err, &convErr))

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output file on failure")
	assert.Empty(t, stdout.String())
}

func TestRun_FailurePreservesExistingOutput(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "form.html")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o644))

	rr := &recordingRenderer{err: &render.ConversionError{Message: "boom"}}
	res := Run(context.Background(), rr, Job{InFile: "a.xlsx", Request: preset.Request{OutPath: out}})
	require.Error(t, res.Err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestRun_OtherRendererErrorsAreIO(t *testing.T) {
	t.Parallel()

	rr := &recordingRenderer{err: errors.New("disk full")}
	res := Run(context.Background(), rr, Job{InFile: "a.xlsx", Stdout: &bytes.Buffer{}})

	assert.Equal(t, KindIO, res.Kind)
	assert.Contains(t, res.Err.Error(), "An error occurred while attempting to convert 'a.xlsx'")
	assert.Contains(t, res.Err.Error(), "disk full")
}

func TestRun_RendererConfigurationErrorKeepsKind(t *testing.T) {
	t.Parallel()

	rr := &recordingRenderer{err: &preset.ConfigurationError{Field: "language", Message: "unsupported"}}
	res := Run(context.Background(), rr, Job{InFile: "a.xlsx", Stdout: &bytes.Buffer{}})
	assert.Equal(t, KindConfiguration, res.Kind)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	rr := &recordingRenderer{err: context.Canceled}
	res := Run(context.Background(), rr, Job{InFile: "a.xlsx", Stdout: &bytes.Buffer{}})
	assert.Equal(t, KindIO, res.Kind)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestRun_MissingOutputDirectory(t *testing.T) {
	t.Parallel()

	out := filepath.Join(t.TempDir(), "missing", "form.html")
	rr := &recordingRenderer{body: "x"}
	res := Run(context.Background(), rr, Job{InFile: "a.xlsx", Request: preset.Request{OutPath: out}})

	assert.Equal(t, KindIO, res.Kind)
	assert.Contains(t, res.Err.Error(), "creating output")
}

func TestKind_StringAndExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		name string
		code int
	}{
		{KindOK, "ok", 0},
		{KindConfiguration, "configuration", 2},
		{KindConversion, "conversion", 1},
		{KindIO, "io", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.kind.String())
		assert.Equal(t, tt.code, tt.kind.ExitCode())
	}
	assert.Equal(t, "kind(9)", Kind(9).String())
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	convErr := &render.ConversionError{Message: "bad sheet"}
	assert.Equal(t, KindOK, KindOf(nil))
	assert.Equal(t, KindConfiguration, KindOf(&preset.ConfigurationError{Message: "x"}))
	assert.Equal(t, KindConversion, KindOf(convErr))
	assert.Equal(t, KindConversion, KindOf(&Error{File: "a.xlsx", Err: convErr}))
	assert.Equal(t, KindIO, KindOf(errors.New("disk full")))
}
