package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reprint/internal/config"
	"reprint/internal/driver"
	"reprint/internal/trace"
)

// errReported marks failures already printed per file.
var errReported = errors.New("some files failed")

func exitCode(err error) int {
	if errors.Is(err, driver.ErrChanged) {
		return 2
	}
	return 1
}

type globalFlags struct {
	quiet          bool
	timings        bool
	maxDiagnostics int
	jobs           int
	ui             progressMode
	noCache        bool
	configPath     string
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	flags := cmd.Root().PersistentFlags()
	var g globalFlags
	var err error
	if g.quiet, err = flags.GetBool("quiet"); err != nil {
		return g, err
	}
	if g.timings, err = flags.GetBool("timings"); err != nil {
		return g, err
	}
	if g.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return g, err
	}
	if g.jobs, err = flags.GetInt("jobs"); err != nil {
		return g, err
	}
	if g.noCache, err = flags.GetBool("no-cache"); err != nil {
		return g, err
	}
	if g.configPath, err = flags.GetString("config"); err != nil {
		return g, err
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return g, err
	}
	if g.ui, err = parseProgressMode(uiValue); err != nil {
		return g, err
	}
	return g, nil
}

// loadConfig reads --config, or searches upwards from the working directory.
// A missing file is not an error: defaults apply.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	cfg, err := config.Load(".")
	if errors.Is(err, config.ErrNoConfig) {
		return cfg, nil
	}
	return cfg, err
}

// session is everything a command needs to call the driver.
type session struct {
	flags   globalFlags
	cfg     *config.Config
	opts    driver.Options
	cleanup func()
}

func newSession(cmd *cobra.Command, recipePath string) (*session, error) {
	g, err := readGlobalFlags(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(g.configPath)
	if err != nil {
		return nil, err
	}
	if recipePath != "" {
		// рецепт из отдельного файла заменяет правила, [print] остаётся от конфига
		recipe, err := config.LoadFile(recipePath)
		if err != nil {
			return nil, err
		}
		cfg.Rename, cfg.Replace = recipe.Rename, recipe.Replace
	}
	rec, err := cfg.Recipe()
	if err != nil {
		return nil, err
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return nil, err
	}
	tracer, stopTracing, err := setupTracing(cmd)
	if err != nil {
		stopProfiling()
		return nil, err
	}
	cleanup := func() {
		stopTracing()
		stopProfiling()
	}
	opts := driver.Options{
		Jobs:      g.jobs,
		MaxErrors: g.maxDiagnostics,
		Recipe:    rec,
		Printer:   cfg.PrinterOptions(),
		Tracer:    tracer,
		Timings:   g.timings,
	}
	if !g.noCache {
		cache, err := driver.OpenDiskCache("reprint")
		if err != nil {
			// без кэша тоже работаем
			if !g.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "reprint: cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}
	return &session{flags: g, cfg: cfg, opts: opts, cleanup: cleanup}, nil
}

// run executes fn over paths, with the progress UI when enabled.
func (s *session) run(ctx context.Context, title string, paths []string, stdoutBusy bool,
	fn func(context.Context, []string, driver.Options) ([]driver.Result, error)) ([]driver.Result, error) {
	files, err := driver.ListFiles(paths)
	if err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = trace.WithTracer(ctx, s.opts.Tracer)
	if !s.flags.quiet && showProgress(s.flags.ui, len(files), stdoutBusy) {
		return runWithUI(ctx, title, files, s.opts, func(ctx context.Context, _ []string, opts driver.Options) ([]driver.Result, error) {
			return fn(ctx, files, opts)
		})
	}
	return fn(ctx, files, s.opts)
}
