package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/alnah/go-pdf2html"
	"github.com/alnah/go-pdf2html/internal/fileutil"
	"github.com/alnah/go-pdf2html/internal/hints"
	"github.com/alnah/go-pdf2html/internal/script"
)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	opts       *convertOptions
	logger     *slog.Logger
	rasterizer script.Rasterizer
	progress   io.Writer
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Pages      int
	Err        error                     // document not written
	Background *pdf2html.BackgroundError // document written, pages degraded
	Duration   time.Duration
}

// convertBatch converts documents concurrently. Pages of one document are
// always processed in order by a single worker.
func convertBatch(ctx context.Context, workers int, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}
	concurrency := max(1, min(workers, len(files)))

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile converts a single script and returns the result.
func convertFile(ctx context.Context, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	opts := params.opts
	if opts.filename != "" {
		f.Filename = opts.filename
	}
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath(),
	}
	done := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	doc, err := script.Load(f.InputPath, script.WithRasterizer(params.rasterizer))
	if err != nil {
		return done(err)
	}

	stagingDir, cleanup, err := prepareStaging(opts.tmpDir)
	if err != nil {
		return done(fmt.Errorf("%w: %w", pdf2html.ErrStaging, err))
	}
	defer cleanup()

	cfg := pdf2html.Config{
		DestDir:              f.DestDir,
		TmpDir:               stagingDir,
		OutputFilename:       f.Filename,
		FirstPage:            opts.first,
		LastPage:             opts.last,
		Resolution:           opts.resolution,
		BackgroundResolution: opts.background,
		SingleHTML:           opts.singleHTML,
		ProcessNonText:       opts.nonText,
		Debug:                opts.debug,
	}

	rendererOpts := []pdf2html.Option{
		pdf2html.WithLogger(params.logger.With("script", f.InputPath)),
		pdf2html.WithAssetPath(opts.dataDir),
	}
	if params.progress != nil {
		rendererOpts = append(rendererOpts, pdf2html.WithProgress(params.progress))
	}
	if opts.strict {
		rendererOpts = append(rendererOpts, pdf2html.WithStrictBackground())
	}

	r, err := pdf2html.NewRenderer(cfg, rendererOpts...)
	if err != nil {
		return done(err)
	}

	res, err := r.Process(ctx, doc)
	if res != nil {
		result.OutputPath = res.OutputPath
		result.Pages = res.Pages
		var bgErr *pdf2html.BackgroundError
		if errors.As(err, &bgErr) {
			result.Background = bgErr
			err = nil
		}
	}
	return done(err)
}

// prepareStaging returns the staging directory of one document. Every
// document gets a fresh subdirectory of tmpDir, even when tmpDir is the
// destination, so concurrent documents never share staged names. Cleanup
// removes it once empty.
func prepareStaging(tmpDir string) (string, func(), error) {
	base := tmpDir
	if base == "" {
		base = os.TempDir()
	}
	if err := fileutil.EnsureDir(base); err != nil {
		return "", nil, err
	}
	dir, err := os.MkdirTemp(base, "pdf2html-*")
	if err != nil {
		return "", nil, err
	}
	return dir, func() { _ = os.Remove(dir) }, nil
}

// ResultSummary holds the count of conversions by outcome.
type ResultSummary struct {
	Succeeded int
	Degraded  int
	Failed    int
}

// countResults tallies conversions by outcome.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Background != nil:
			summary.Degraded++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports every conversion and returns the batch error:
// the first failure, else the first degraded document, else nil.
func printResults(results []ConversionResult, opts *convertOptions, env *Environment) error {
	summary := countResults(results)

	var firstFailure, firstDegraded error
	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err, env.Getenv))
			if firstFailure == nil {
				firstFailure = r.Err
			}
			continue
		case r.Background != nil:
			fmt.Fprintf(env.Stderr, "WARNING %s: %v%s\n", r.InputPath, r.Background,
				hints.ForBackgroundFailure(r.Background.FailedPages()))
			if firstDegraded == nil {
				firstDegraded = r.Background
			}
		}

		if opts.quiet {
			continue
		}
		if opts.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d pages, %v)\n", r.InputPath, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !opts.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d degraded, %d failed\n", summary.Succeeded, summary.Degraded, summary.Failed)
	}

	switch {
	case firstFailure != nil:
		return fmt.Errorf("%w: %d of %d document(s): %w", ErrConversionFailed, summary.Failed, len(results), firstFailure)
	case firstDegraded != nil:
		return fmt.Errorf("%w: %w", ErrDegraded, firstDegraded)
	}
	return nil
}
