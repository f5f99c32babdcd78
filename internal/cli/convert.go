package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/ppp/internal/config"
	"github.com/AbdelazizMoustafa10m/ppp/internal/convert"
	"github.com/AbdelazizMoustafa10m/ppp/internal/logging"
	"github.com/AbdelazizMoustafa10m/ppp/internal/preset"
	"github.com/AbdelazizMoustafa10m/ppp/internal/render"
)

// rendererFactory builds the Renderer for a run and returns a function that
// releases it. Tests replace it with a fake.
var rendererFactory = newEngineRenderer

func newEngineRenderer() (render.Renderer, func() error, error) {
	rc, err := render.NewContext()
	if err != nil {
		return nil, nil, fmt.Errorf("building render context: %w", err)
	}
	return render.NewEngine(rc), rc.Close, nil
}

// runConvert converts xlsxfile using the flags the user supplied.
func runConvert(cmd *cobra.Command, xlsxfile string, flags *renderFlags) error {
	logger := logging.New("cli")

	resolved, _, err := loadAndResolveConfig(flags.overrides(cmd.Flags()))
	if err != nil {
		return err
	}
	req, err := resolved.Request()
	if err != nil {
		return err
	}
	return executeConversion(cmd, xlsxfile, req, logger.Debug)
}

// executeConversion runs the conversion for req and returns the typed error
// of the result, if any.
func executeConversion(cmd *cobra.Command, xlsxfile string, req preset.Request, debugf func(any, ...any)) error {
	renderer, release, err := rendererFactory()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := release(); cerr != nil {
			debugf("releasing renderer", "error", cerr)
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	res := convert.Run(ctx, renderer, convert.Job{
		InFile:  xlsxfile,
		Request: req,
		Stdout:  cmd.OutOrStdout(),
	})
	if !res.OK() {
		debugf("conversion failed", "kind", res.Kind, "file", xlsxfile)
		return res.Err
	}
	return nil
}

// loadAndResolveConfig loads ppp.toml (from --config, or found by walking up
// from the working directory), then merges it with the environment and
// overrides. It returns the resolved config and the TOML metadata (nil when
// no file was loaded).
func loadAndResolveConfig(overrides *config.CLIOverrides) (*config.ResolvedConfig, *toml.MetaData, error) {
	var (
		fileCfg *config.Config
		meta    *toml.MetaData
		cfgPath string
	)

	if flagConfig != "" {
		cfgPath = flagConfig
	} else {
		found, err := config.FindConfigFile(".")
		if err != nil {
			return nil, nil, fmt.Errorf("finding config file: %w", err)
		}
		cfgPath = found
	}

	if cfgPath != "" {
		fc, md, err := config.LoadFromFile(cfgPath)
		if err != nil {
			return nil, nil, err
		}
		fileCfg = fc
		meta = &md
		logging.New("config").Debug("loaded config file", "path", cfgPath)
	}

	resolved := config.Resolve(config.NewDefaults(), fileCfg, os.LookupEnv, overrides)
	resolved.Path = cfgPath

	return resolved, meta, nil
}
