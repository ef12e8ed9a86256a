package pdf2html

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alnah/go-pdf2html/internal/assets"
	"github.com/alnah/go-pdf2html/internal/fileutil"
	"github.com/alnah/go-pdf2html/internal/staging"
)

// Renderer converts page sources into HTML documents using one
// configuration. A Renderer holds no per-run state; Process may be called
// repeatedly, and concurrently for different destinations.
type Renderer struct {
	cfg         Config
	boilerplate *assets.Boilerplate

	logger     *slog.Logger
	assetPath  string
	background BackgroundRenderer
	progress   io.Writer
	strict     bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for diagnostics. Staging activity is logged
// at debug level when Config.Debug is set.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithAssetPath overrides boilerplate fragments with files from dir.
// Fragments missing from dir fall back to the embedded ones.
func WithAssetPath(dir string) Option {
	return func(r *Renderer) {
		r.assetPath = dir
	}
}

// WithBackgroundRenderer sets the raster backend of the background pass.
func WithBackgroundRenderer(b BackgroundRenderer) Option {
	return func(r *Renderer) {
		r.background = b
	}
}

// WithProgress writes "Working: " and one dot per page to w.
func WithProgress(w io.Writer) Option {
	return func(r *Renderer) {
		r.progress = w
	}
}

// WithStrictBackground aborts the run on the first background failure
// instead of emitting the page without background.
func WithStrictBackground() Option {
	return func(r *Renderer) {
		r.strict = true
	}
}

// NewRenderer validates cfg and loads the boilerplate fragments.
func NewRenderer(cfg Config, opts ...Option) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		cfg:    cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}

	resolver, err := assets.NewResolver(r.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	bp, err := assets.LoadBoilerplate(resolver)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetLoad, err)
	}
	if resolver.HasCustomLoader() {
		r.logger.Debug("boilerplate override", "dir", r.assetPath)
	}
	r.boilerplate = bp
	return r, nil
}

// Config returns the configuration of r.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Process runs one document: pre-process, every requested page in
// ascending order (background first, then foreground), post-process and,
// in single-file mode, assembly. Staged files and the staging directory
// are removed on every exit path.
//
// A page event sequencing defect in src is returned as a *SequenceError.
// Background failures do not stop the run unless WithStrictBackground is
// set: the Result is returned together with a *BackgroundError.
func (r *Renderer) Process(ctx context.Context, src PageSource) (res *Result, err error) {
	if src == nil {
		return nil, ErrNilSource
	}
	cfg := r.cfg

	numPages := src.NumPages()
	if numPages < 1 {
		return nil, ErrEmptyDocument
	}
	if cfg.FirstPage > numPages {
		return nil, fmt.Errorf("%w: first page %d beyond document length %d", ErrInvalidPageRange, cfg.FirstPage, numPages)
	}
	last := min(cfg.LastPage, numPages)

	bg := r.background
	if cfg.ProcessNonText && bg == nil {
		b, ok := src.(BackgroundRenderer)
		if !ok {
			return nil, ErrNoBackgroundRenderer
		}
		bg = b
	}

	if err := fileutil.EnsureDir(cfg.DestDir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutput, err)
	}
	if err := fileutil.EnsureDir(cfg.stagingDir()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStaging, err)
	}

	reg := staging.New(cfg.stagingDir(),
		staging.WithLogger(r.logger),
		staging.WithVerbose(cfg.Debug),
	)
	defer func() {
		if terr := reg.Teardown(); terr != nil && cfg.Debug {
			r.logger.Debug("staging cleanup incomplete", "error", terr)
		}
	}()

	asm := newAssembler(&cfg, r.boilerplate, reg)
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		asm.abort()
		if seq, ok := rec.(*SequenceError); ok {
			res, err = nil, seq
			return
		}
		panic(rec)
	}()

	if err := asm.open(); err != nil {
		asm.abort()
		return nil, err
	}

	emitter := NewPageEmitter(asm.html, asm.css, cfg.SingleHTML)
	var pass *backgroundPass
	if cfg.ProcessNonText {
		pass = newBackgroundPass(bg, &cfg, reg)
	}

	res = &Result{
		OutputPath: asm.outputPath(),
		SingleHTML: cfg.SingleHTML,
	}
	var failed []PageError

	r.progressf("Working: ")
	defer r.progressf("\n")
	for i := cfg.FirstPage; i <= last; i++ {
		if err := ctx.Err(); err != nil {
			asm.abort()
			return nil, err
		}

		if pass != nil {
			path, err := pass.render(ctx, i)
			switch {
			case err == nil:
				emitter.SetBackground(i, path)
				res.Backgrounds++
			case ctx.Err() != nil:
				asm.abort()
				return nil, ctx.Err()
			case r.strict:
				asm.abort()
				return nil, &BackgroundError{Pages: []PageError{{Page: i, Err: err}}}
			default:
				r.logger.Warn("page emitted without background", "page", i, "error", err)
				failed = append(failed, PageError{Page: i, Err: err})
			}
		}

		emitter.expect(i)
		if err := src.DisplayPage(ctx, i, cfg.Resolution, emitter); err != nil {
			asm.abort()
			var seq *SequenceError
			if errors.As(err, &seq) {
				return nil, seq
			}
			return nil, fmt.Errorf("%w: page %d: %w", ErrDisplayPage, i, err)
		}
		if err := emitter.finishPage(i); err != nil {
			asm.abort()
			return nil, err
		}
		res.Pages++
		r.progressf(".")
	}

	if err := asm.close(); err != nil {
		asm.abort()
		return nil, err
	}

	if len(failed) > 0 {
		return res, &BackgroundError{Pages: failed}
	}
	return res, nil
}

func (r *Renderer) progressf(s string) {
	if r.progress != nil {
		_, _ = io.WriteString(r.progress, s)
	}
}
