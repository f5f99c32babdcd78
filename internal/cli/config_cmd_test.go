package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AbdelazizMoustafa10m/ppp/internal/config"
)

// ---- helpers ----------------------------------------------------------------

// runCLI executes the root command with args and returns stdout, stderr and
// the exit code.
func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs(args)

	var code int
	stderr := captureStderr(t, func() { code = Execute() })
	return stdout.String(), stderr, code
}

// writeConfig writes content to a ppp.toml in a fresh directory and returns
// its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// fieldLine returns the first output line describing field.
func fieldLine(t *testing.T, output, field string) string {
	t.Helper()
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), field+" ") {
			return line
		}
	}
	t.Fatalf("no line for field %q in output:\n%s", field, output)
	return ""
}

// ---- config debug -----------------------------------------------------------

func TestConfigDebug_Defaults(t *testing.T) {
	resetRootCmd(t)

	out, _, code := runCLI(t, "--no-color", "config", "debug")
	require.Equal(t, 0, code)

	assert.Contains(t, out, "Configuration Debug")
	assert.Contains(t, out, "Config file: none found")
	assert.Contains(t, fieldLine(t, out, "preset"), `"developer"`)
	assert.Contains(t, fieldLine(t, out, "preset"), "(source: default)")
	assert.Contains(t, fieldLine(t, out, "format"), `"html"`)
	assert.Contains(t, fieldLine(t, out, "outpath"), "stdout")
	assert.Contains(t, fieldLine(t, out, "exclusion"), "(source: preset)")
	assert.Contains(t, out, "Provenance: developer\n")
}

func TestConfigDebug_FlagsMakeCustom(t *testing.T) {
	resetRootCmd(t)

	out, _, code := runCLI(t, "--no-color", "config", "debug", "-p", "public", "--input-replacement=false")
	require.Equal(t, 0, code)

	assert.Contains(t, fieldLine(t, out, "preset"), "(source: cli)")
	line := fieldLine(t, out, "input_replacement")
	assert.Contains(t, line, "false")
	assert.Contains(t, line, "(source: cli)")
	assert.Contains(t, fieldLine(t, out, "exclusion"), "true")
	assert.Contains(t, out, "Provenance: custom (from public; changed: input_replacement)")
}

func TestConfigDebug_FileAndEnvSources(t *testing.T) {
	resetRootCmd(t)
	path := writeConfig(t, `
[render]
preset = "internal"

[toggles]
hr_relevant = true
`)
	t.Setenv("PPP_FORMAT", "text")

	out, _, code := runCLI(t, "--no-color", "--config", path, "config", "debug")
	require.Equal(t, 0, code)

	assert.Contains(t, out, "Config file: "+path)
	assert.Contains(t, fieldLine(t, out, "preset"), "(source: file)")
	assert.Contains(t, fieldLine(t, out, "format"), "(source: env)")
	assert.Contains(t, fieldLine(t, out, "hr_relevant"), "(source: file)")
	assert.Contains(t, out, "Provenance: internal\n", "file value equal to the preset default keeps the preset")
}

func TestConfigDebug_ConfigurationError(t *testing.T) {
	resetRootCmd(t)

	_, stderr, code := runCLI(t, "config", "debug", "-f", "text", "-H")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "highlighting")
}

// ---- config validate --------------------------------------------------------

func TestConfigValidate_NoIssues(t *testing.T) {
	resetRootCmd(t)
	path := writeConfig(t, `
[render]
preset = "public"
format = "html"
highlight = true
`)

	out, _, code := runCLI(t, "--no-color", "--config", path, "config", "validate")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Configuration Validation")
	assert.Contains(t, out, "No issues found.")
}

func TestConfigValidate_NoFile(t *testing.T) {
	resetRootCmd(t)

	out, _, code := runCLI(t, "--no-color", "config", "validate")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No issues found.")
}

func TestConfigValidate_Errors(t *testing.T) {
	resetRootCmd(t)
	path := writeConfig(t, `
[render]
preset = "custom"
format = "text"
highlight = true
debug = true
colour = "red"
`)

	out, stderr, code := runCLI(t, "--no-color", "--config", path, "config", "validate")
	assert.Equal(t, 2, code)

	assert.Contains(t, out, "Errors:")
	assert.Contains(t, out, "[render.preset]")
	assert.Contains(t, out, "[render.highlight]")
	assert.Contains(t, out, "Warnings:")
	assert.Contains(t, out, "[render.debug]")
	assert.Contains(t, out, "[render.colour] unknown configuration key")
	assert.Contains(t, out, "2 error(s), 2 warning(s)")
	assert.Contains(t, stderr, "configuration has 2 error(s)")
}

func TestConfigValidate_EnvIsChecked(t *testing.T) {
	resetRootCmd(t)
	t.Setenv("PPP_FORMAT", "pdf")

	out, _, code := runCLI(t, "--no-color", "config", "validate")
	assert.Equal(t, 2, code)
	assert.Contains(t, out, "[render.format]")
	assert.Contains(t, out, "not yet supported")
}

// ---- config init ------------------------------------------------------------

func TestConfigInit_WritesStarter(t *testing.T) {
	resetRootCmd(t)
	dir := t.TempDir()

	out, _, code := runCLI(t, "--no-color", "config", "init", dir, "-p", "public")
	require.Equal(t, 0, code)

	path := filepath.Join(dir, config.ConfigFileName)
	assert.Contains(t, out, "Created "+path)

	cfg, _, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "public", cfg.Render.Preset)
	assert.Equal(t, "html", cfg.Render.Format)
}

func TestConfigInit_KeepsExistingWithoutForce(t *testing.T) {
	resetRootCmd(t)
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o644))

	out, _, code := runCLI(t, "config", "init", dir)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))
}

func TestConfigInit_Force(t *testing.T) {
	resetRootCmd(t)
	dir := t.TempDir()
	path := filepath.Join(dir, config.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("# mine\n"), 0o644))

	_, _, code := runCLI(t, "config", "init", dir, "--force")
	require.Equal(t, 0, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `preset = "developer"`)
}

func TestConfigInit_RejectsCustomPreset(t *testing.T) {
	resetRootCmd(t)

	_, stderr, code := runCLI(t, "config", "init", t.TempDir(), "-p", "custom")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "cannot be selected directly")
}

func TestConfigCmd_ShowsHelp(t *testing.T) {
	resetRootCmd(t)

	out, _, code := runCLI(t, "config")
	assert.Equal(t, 0, code)
	for _, sub := range []string{"debug", "validate", "init"} {
		assert.Contains(t, out, sub)
	}
}
