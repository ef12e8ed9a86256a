// Package raster produces page background images.
//
// Three backends cover the common cases: Blank paints a solid page,
// Resample scales an existing image (PNG, JPEG, GIF, BMP, TIFF or WebP) to
// the raster size, and SVGRasterizer renders SVG markup in headless Chrome.
// Pool shares SVGRasterizers between concurrent documents.
package raster
