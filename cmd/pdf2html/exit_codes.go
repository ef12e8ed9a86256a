package main

import (
	"errors"
	"os"

	"github.com/alnah/go-pdf2html"
	"github.com/alnah/go-pdf2html/internal/config"
	"github.com/alnah/go-pdf2html/internal/raster"
	"github.com/alnah/go-pdf2html/internal/script"
)

// Exit codes for the pdf2html CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful conversion
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or script
	ExitIO       = 3 // File not found, permission denied, write failure
	ExitBrowser  = 4 // Browser/Chrome errors
	ExitDegraded = 5 // Documents written, some pages without background
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Degraded output (exit 5)
	if errors.Is(err, ErrDegraded) {
		return ExitDegraded
	}

	// Browser errors (exit 4)
	if errors.Is(err, raster.ErrBrowserConnect) ||
		errors.Is(err, raster.ErrPageCreate) ||
		errors.Is(err, raster.ErrPageLoad) ||
		errors.Is(err, raster.ErrScreenshot) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, pdf2html.ErrStaging) ||
		errors.Is(err, pdf2html.ErrOutput) ||
		errors.Is(err, pdf2html.ErrAssembly) ||
		errors.Is(err, raster.ErrDecode) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, script.ErrInvalidScript) ||
		errors.Is(err, script.ErrNoPages) ||
		errors.Is(err, pdf2html.ErrEmptyDestDir) ||
		errors.Is(err, pdf2html.ErrInvalidOutputFilename) ||
		errors.Is(err, pdf2html.ErrInvalidPageRange) ||
		errors.Is(err, pdf2html.ErrInvalidResolution) ||
		errors.Is(err, pdf2html.ErrAssetLoad) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrOutputFilenameBatch) ||
		errors.Is(err, ErrDuplicateOutput) ||
		errors.Is(err, pdf2html.ErrInvalidState) {
		return ExitUsage
	}

	return ExitGeneral
}
