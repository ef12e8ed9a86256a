package pdf2html

import (
	"context"
	"image"

	"seehuhn.de/go/geom/matrix"
)

// PageSource is the external renderer. Process asks it to display each
// requested page in ascending order; the source answers by calling the
// PageHandler exactly once with BeginPage(index, ...) and once with EndPage,
// with any number of state and content events in between.
type PageSource interface {
	NumPages() int
	DisplayPage(ctx context.Context, index int, res Resolution, h PageHandler) error
}

// PageHandler receives the events of one displayed page. Width, height,
// transform translations and pen positions are in pixels at the resolution
// passed to DisplayPage, with the origin at the bottom-left of the page.
type PageHandler interface {
	BeginPage(index int, width, height float64) error
	InstallFont(f Font)
	InstallFontSize(size float64)
	InstallTransform(m matrix.Matrix)
	InstallColor(c Color)
	MoveTo(x, y float64)
	ShowText(text string) error
	EndPage() error
}

// BackgroundRenderer rasterizes the non-text content of a page.
// It is called before the page is displayed, at the background resolution.
type BackgroundRenderer interface {
	RenderBackground(ctx context.Context, index int, res Resolution) (image.Image, error)
}
