package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"

	"github.com/AbdelazizMoustafa10m/ppp/internal/logging"
	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
)

// FormPattern matches the file names accepted as XLSForm input.
const FormPattern = "*.{xlsx,xlsm,xls}"

var (
	zipMagic = []byte("PK\x03\x04")
	cfbMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// toggleLabels are the display labels of the rendering options.
var toggleLabels = map[preset.Toggle]string{
	preset.InputReplacement: "Input replacement",
	preset.Exclusion:        "Exclusion",
	preset.HRRelevant:       "Human readable relevant",
	preset.HRConstraint:     "Human readable constraint",
	preset.NoConstraint:     "No constraint",
	preset.TextReplacements: "Text replacements",
}

// Engine renders the document frame of a paper rendition: title, source,
// language, preset provenance, option summary and, in html debug mode, a
// JSON payload logged to the browser console.
type Engine struct {
	rc     *Context
	logger *log.Logger
}

// NewEngine returns an Engine that renders with rc. The caller owns rc.
func NewEngine(rc *Context) *Engine {
	return &Engine{rc: rc, logger: logging.New("render")}
}

type document struct {
	Title       string
	Source      string
	Language    string
	Preset      preset.Preset
	Provenance  preset.Preset
	Custom      bool
	Options     []option
	Highlight   bool
	Debug       bool
	Survey      debugPayload
	Fingerprint string
}

type option struct {
	Name    string
	Label   string
	Enabled bool
}

// debugPayload is serialised into the html debug script.
type debugPayload struct {
	File        string                 `json:"file"`
	Fingerprint string                 `json:"fingerprint"`
	Size        int                    `json:"size"`
	Config      preset.EffectiveConfig `json:"config"`
}

// Run validates the input file and writes the rendered frame to job.Out.
func (e *Engine) Run(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if job.Out == nil {
		return errors.New("render: job has no output writer")
	}

	data, err := readForm(job.InFile)
	if err != nil {
		return err
	}
	fingerprint := fmt.Sprintf("%016x", xxhash.Sum64(data))
	e.logger.Debug("read form", "file", job.InFile, "bytes", len(data), "xxhash", fingerprint)

	if job.Config.Debug && job.Format() != preset.FormatHTML {
		e.logger.Warn("debug mode only affects html output", "format", job.Format())
	}

	doc := newDocument(job, fingerprint, len(data))

	var buf bytes.Buffer
	if err := e.rc.Execute(&buf, job.Format(), doc); err != nil {
		return fmt.Errorf("rendering %s document: %w", job.Format(), err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := job.Out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s document: %w", job.Format(), err)
	}
	return nil
}

// readForm checks that path names a readable XLSForm and returns its bytes.
func readForm(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, conversionErrorf(path, nil, "file not found: %s", path)
		}
		return nil, conversionErrorf(path, err, "cannot access %s", path)
	}
	if info.IsDir() {
		return nil, conversionErrorf(path, nil, "%s is a directory, not a spreadsheet", path)
	}

	name := strings.ToLower(filepath.Base(path))
	ok, err := doublestar.Match(FormPattern, name)
	if err != nil {
		return nil, fmt.Errorf("matching %q: %w", name, err)
	}
	if !ok {
		return nil, conversionErrorf(path, nil,
			"unsupported file type %q; expected an Excel workbook (.xlsx, .xlsm, .xls)", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, conversionErrorf(path, err, "cannot read %s", path)
	}
	if len(data) == 0 {
		return nil, conversionErrorf(path, nil, "%s is empty", path)
	}

	magic := zipMagic
	if filepath.Ext(name) == ".xls" {
		magic = cfbMagic
	}
	if !bytes.HasPrefix(data, magic) {
		return nil, conversionErrorf(path, nil, "%s is not a valid Excel workbook", path)
	}
	return data, nil
}

func newDocument(job Job, fingerprint string, size int) document {
	cfg := job.Config

	language := cfg.Language
	if language == "" {
		language = "default"
	}

	doc := document{
		Title:       formTitle(job.InFile),
		Source:      filepath.Base(job.InFile),
		Language:    language,
		Preset:      cfg.Preset,
		Provenance:  cfg.Provenance,
		Custom:      cfg.IsCustom(),
		Highlight:   cfg.Highlight,
		Debug:       cfg.Debug && cfg.Format == preset.FormatHTML,
		Fingerprint: fingerprint,
		Survey: debugPayload{
			File:        filepath.Base(job.InFile),
			Fingerprint: fingerprint,
			Size:        size,
			Config:      cfg,
		},
	}
	for _, t := range preset.AllToggles() {
		doc.Options = append(doc.Options, option{
			Name:    string(t),
			Label:   toggleLabels[t],
			Enabled: cfg.Toggles.Get(t),
		})
	}
	return doc
}

// formTitle derives a title from the file name: "household_survey-v2.xlsx"
// becomes "household survey v2".
func formTitle(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	title := strings.Join(strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	}), " ")
	if title == "" {
		return base
	}
	return title
}
