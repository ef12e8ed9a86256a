package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/alnah/go-pdf2html"
	"github.com/alnah/go-pdf2html/internal/config"
	"github.com/alnah/go-pdf2html/internal/fileutil"
	"github.com/alnah/go-pdf2html/internal/hints"
	"github.com/alnah/go-pdf2html/internal/raster"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput             = errors.New("no input specified")
	ErrUsage               = errors.New("invalid usage")
	ErrInvalidWorkerCount  = errors.New("invalid worker count")
	ErrOutputFilenameBatch = errors.New("--output-filename needs exactly one input script")
	ErrDuplicateOutput     = errors.New("scripts resolve to the same output")
	ErrConversionFailed    = errors.New("conversion failed")
	ErrDegraded            = errors.New("converted with missing backgrounds")
)

// convertOptions is the merged result of config file and flags.
type convertOptions struct {
	destDir    string
	tmpDir     string
	filename   string
	first      int
	last       int
	resolution pdf2html.Resolution
	background pdf2html.Resolution
	singleHTML bool
	nonText    bool
	strict     bool
	dataDir    string
	workers    int
	timeout    time.Duration
	debug      bool
	quiet      bool
	verbose    bool
}

// runConvert orchestrates the conversion of every input script.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		var err error
		if cfg, err = config.LoadConfig(flags.common.config); err != nil {
			var hint string
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(flags.common.config) {
				hint = hints.ForConfigNotFound(config.SearchPaths(flags.common.config))
			}
			return fmt.Errorf("loading config: %w%s", err, hint)
		}
	}

	opts := mergeFlags(flags, cfg, env)
	if len(positionalArgs) == 0 {
		return fmt.Errorf("%w: pass one or more scripts or directories", ErrNoInput)
	}

	files, err := discoverScripts(positionalArgs, opts.destDir)
	if err != nil {
		return fmt.Errorf("discovering scripts: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .yaml, .yml or .json scripts found", ErrNoInput)
	}
	if opts.filename != "" && len(files) > 1 {
		return fmt.Errorf("%w: got %d", ErrOutputFilenameBatch, len(files))
	}
	if files, err = separateDocuments(files, opts.singleHTML); err != nil {
		return err
	}

	workers := min(raster.ResolvePoolSize(opts.workers), len(files))
	pool := raster.NewPool(workers, opts.timeout)
	defer func() { _ = pool.Close() }()

	params := &conversionParams{
		opts:       opts,
		logger:     newLogger(env.Stderr, opts),
		rasterizer: &poolRasterizer{pool: pool},
	}
	if workers == 1 && len(files) == 1 && !opts.quiet && isTerminal(env.Stderr) {
		params.progress = env.Stderr
	}

	results := convertBatch(ctx, workers, files, params)
	return printResults(results, opts, env)
}

// mergeFlags combines defaults, config and flags. CLI wins.
func mergeFlags(flags *convertFlags, cfg *config.Config, env *Environment) *convertOptions {
	opts := &convertOptions{
		destDir:    cfg.Output.Dir,
		tmpDir:     cfg.Output.TmpDir,
		filename:   cfg.Output.Filename,
		first:      cfg.Pages.First,
		last:       cfg.Pages.Last,
		resolution: pdf2html.Resolution{H: cfg.Resolution.H, V: cfg.Resolution.V},
		background: pdf2html.Resolution{H: cfg.Background.H, V: cfg.Background.V},
		singleHTML: cfg.Output.SingleHTML,
		nonText:    cfg.Background.Enabled,
		strict:     cfg.Background.Strict,
		dataDir:    cfg.Assets.BasePath,
		workers:    cfg.Workers,
		timeout:    time.Duration(cfg.Background.TimeoutSeconds) * time.Second,
		debug:      cfg.Debug,
	}

	if dir := env.Getenv(dataDirEnv); dir != "" {
		opts.dataDir = dir
	}

	if flags.output.destDir != "" {
		opts.destDir = flags.output.destDir
	}
	if flags.output.tmpDir != "" {
		opts.tmpDir = flags.output.tmpDir
	}
	if flags.output.filename != "" {
		opts.filename = flags.output.filename
	}
	if flags.pages.first != 0 {
		opts.first = flags.pages.first
	}
	if flags.pages.last != 0 {
		opts.last = flags.pages.last
	}
	if flags.resolution.h != 0 {
		opts.resolution.H = flags.resolution.h
	}
	if flags.resolution.v != 0 {
		opts.resolution.V = flags.resolution.v
	}
	if flags.resolution.h2 != 0 {
		opts.background.H = flags.resolution.h2
	}
	if flags.resolution.v2 != 0 {
		opts.background.V = flags.resolution.v2
	}
	if flags.set["single-html"] {
		opts.singleHTML = flags.output.singleHTML
	}
	if flags.set["process-nontext"] {
		opts.nonText = flags.processNonText
	}
	if flags.set["strict"] {
		opts.strict = flags.strict
	}
	if flags.set["debug"] {
		opts.debug = flags.common.debug
	}
	if flags.dataDir != "" {
		opts.dataDir = flags.dataDir
	}
	if flags.workers != 0 {
		opts.workers = flags.workers
	}
	opts.quiet = flags.common.quiet
	opts.verbose = flags.common.verbose

	if opts.first == 0 {
		opts.first = 1
	}
	if opts.last == 0 {
		opts.last = math.MaxInt
	}
	if opts.resolution.H == 0 {
		opts.resolution.H = pdf2html.DefaultDPI
	}
	if opts.resolution.V == 0 {
		opts.resolution.V = pdf2html.DefaultDPI
	}
	if opts.background.H == 0 {
		opts.background.H = pdf2html.DefaultDPI
	}
	if opts.background.V == 0 {
		opts.background.V = pdf2html.DefaultDPI
	}
	return opts
}

// newLogger returns the library logger: debug records with --debug,
// warnings otherwise, nothing with --quiet.
func newLogger(w io.Writer, opts *convertOptions) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case opts.debug:
		level = slog.LevelDebug
	case opts.verbose:
		level = slog.LevelInfo
	case opts.quiet:
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > raster.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, raster.MaxPoolSize)
	}
	return nil
}
