package script

import "errors"

// Sentinel errors for script operations.
var (
	ErrInvalidScript = errors.New("invalid script")
	ErrNoPages       = errors.New("script has no pages")
	ErrPageIndex     = errors.New("page index out of range")
	ErrNoRasterizer  = errors.New("svg background requires a rasterizer")
)
