package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Blank returns a w by h image filled with c.
func Blank(w, h int, c color.Color) (image.Image, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img, nil
}
