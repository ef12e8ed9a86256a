package raster

import "errors"

// Sentinel errors for raster operations.
var (
	ErrInvalidSize = errors.New("invalid raster size")
	ErrDecode      = errors.New("failed to decode image")
	ErrEmptySVG    = errors.New("svg markup is empty")

	// Browser errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrScreenshot     = errors.New("failed to capture screenshot")
)
