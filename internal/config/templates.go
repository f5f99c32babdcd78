package config

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
)

//go:embed templates/ppp.toml.tmpl
var templateFS embed.FS

const configTemplate = "templates/ppp.toml.tmpl"

// starterVars is the data passed to the ppp.toml starter template.
type starterVars struct {
	Preset  preset.Preset
	Presets []string
	Format  preset.Format
	Formats []string
	Toggles []starterToggle
}

type starterToggle struct {
	Name    string
	Default bool
}

// RenderStarter writes a commented ppp.toml that selects p. Each toggle is
// listed, commented out, with its default under p.
func RenderStarter(w io.Writer, p preset.Preset) error {
	row, err := preset.Defaults(p)
	if err != nil {
		return err
	}

	content, err := templateFS.ReadFile(configTemplate)
	if err != nil {
		return fmt.Errorf("reading embedded template: %w", err)
	}
	tmpl, err := template.New("ppp.toml").Parse(string(content))
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", configTemplate, err)
	}

	vars := starterVars{
		Preset:  p,
		Presets: preset.PresetNames(),
		Format:  preset.DefaultFormat,
		Formats: preset.FormatNames(),
	}
	for _, t := range preset.AllToggles() {
		vars.Toggles = append(vars.Toggles, starterToggle{Name: string(t), Default: row.Get(t)})
	}

	if err := tmpl.Execute(w, vars); err != nil {
		return fmt.Errorf("executing template %s: %w", configTemplate, err)
	}
	return nil
}

// WriteStarter renders the starter config for p into path. An existing file
// is left untouched unless force is set; the returned bool reports whether
// the file was written.
func WriteStarter(path string, p preset.Preset, force bool) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		if !force {
			log.Debug("skipping existing file", "path", path)
			return false, nil
		}
		log.Debug("overwriting existing file", "path", path)
	}

	var buf bytes.Buffer
	if err := RenderStarter(&buf, p); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("writing file %s: %w", path, err)
	}
	log.Debug("created config file", "path", path)
	return true, nil
}
