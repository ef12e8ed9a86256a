package pdf2html

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for library operations.
var (
	// Configuration validation errors.
	ErrEmptyDestDir          = errors.New("destination directory cannot be empty")
	ErrInvalidOutputFilename = errors.New("invalid output filename")
	ErrInvalidPageRange      = errors.New("invalid page range")
	ErrInvalidResolution     = errors.New("invalid resolution")

	// Collaborator errors.
	ErrNilSource            = errors.New("page source cannot be nil")
	ErrEmptyDocument        = errors.New("document has no pages")
	ErrNoBackgroundRenderer = errors.New("background rendering enabled without a background renderer")
	ErrDisplayPage          = errors.New("page display failed")
	ErrInvalidPageSize      = errors.New("invalid page size")
	ErrInvalidState         = errors.New("non-finite text state")

	// Staging and output errors. These abort the run.
	ErrStaging  = errors.New("staging I/O failed")
	ErrOutput   = errors.New("output I/O failed")
	ErrAssembly = errors.New("single-file assembly failed")

	// ErrSequence marks a page-event ordering defect in the caller.
	ErrSequence = errors.New("page event sequence violated")

	// ErrBackgroundRender marks page-scoped background raster failures.
	ErrBackgroundRender = errors.New("background render failed")

	ErrAssetLoad = errors.New("failed to load boilerplate assets")
)

// SequenceError reports a page-event ordering defect: a page begun while
// another page or line is open, an unexpected page index, or a page that
// was never ended. It signals a bug in the code driving the events, so the
// emitter panics with it and Process returns it without repairing output.
type SequenceError struct {
	Page   int
	Reason string
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%v: page %d: %s", ErrSequence, e.Page, e.Reason)
}

func (e *SequenceError) Unwrap() error { return ErrSequence }

// PageError is a failure scoped to one page.
type PageError struct {
	Page int
	Err  error
}

func (e PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e PageError) Unwrap() error { return e.Err }

// BackgroundError lists the pages whose background could not be produced.
// The document itself was written; those pages simply have no background.
type BackgroundError struct {
	Pages []PageError
}

func (e *BackgroundError) Error() string {
	pages := e.FailedPages()
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("%v for %d page(s): %s", ErrBackgroundRender, len(pages), strings.Join(parts, ", "))
}

// Unwrap exposes ErrBackgroundRender and every page error to errors.Is/As.
func (e *BackgroundError) Unwrap() []error {
	errs := make([]error, 0, len(e.Pages)+1)
	errs = append(errs, ErrBackgroundRender)
	for _, p := range e.Pages {
		errs = append(errs, p)
	}
	return errs
}

// FailedPages returns the failed page indexes in ascending order.
func (e *BackgroundError) FailedPages() []int {
	pages := make([]int, len(e.Pages))
	for i, p := range e.Pages {
		pages[i] = p.Page
	}
	sort.Ints(pages)
	return pages
}
