package main

import (
	"context"
	"image"

	"github.com/alnah/go-pdf2html/internal/raster"
	"github.com/alnah/go-pdf2html/internal/script"
)

// poolRasterizer borrows a browser from the pool for each SVG page, so
// parallel documents share at most pool.Size() Chrome instances and a batch
// without SVG backgrounds never starts one.
type poolRasterizer struct {
	pool *raster.Pool
}

// Compile-time interface implementation check.
var _ script.Rasterizer = (*poolRasterizer)(nil)

func (p *poolRasterizer) Rasterize(ctx context.Context, svg []byte, w, h int) (image.Image, error) {
	r := p.pool.Acquire()
	defer p.pool.Release(r)
	return r.Rasterize(ctx, svg, w, h)
}
