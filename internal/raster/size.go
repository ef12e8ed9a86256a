package raster

import (
	"fmt"
	"math"
)

// MaxDimension caps either side of a raster, in pixels.
const MaxDimension = 1 << 14

// pointsPerInch converts page units to inches.
const pointsPerInch = 72.0

// PixelSize converts a page size in points to whole pixels at the given
// horizontal and vertical DPI, rounding up.
func PixelSize(widthPt, heightPt, dpiH, dpiV float64) (w, h int, err error) {
	fw := math.Ceil(widthPt * dpiH / pointsPerInch)
	fh := math.Ceil(heightPt * dpiV / pointsPerInch)
	if !(fw >= 1 && fh >= 1) || fw > MaxDimension || fh > MaxDimension {
		return 0, 0, fmt.Errorf("%w: %gx%g pt at %gx%g dpi", ErrInvalidSize, widthPt, heightPt, dpiH, dpiV)
	}
	return int(fw), int(fh), nil
}

func checkSize(w, h int) error {
	if w < 1 || h < 1 || w > MaxDimension || h > MaxDimension {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return nil
}
