//go:build integration

package raster_test

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/alnah/go-pdf2html/internal/raster"
)

func TestSVGRasterizer_Integration(t *testing.T) {
	r := raster.NewSVGRasterizer(time.Minute)
	defer r.Close()

	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 20 10"><rect width="20" height="10" fill="#0000ff"/></svg>`
	img, err := r.Rasterize(context.Background(), []byte(svg), 40, 20)
	if err != nil {
		t.Fatalf("Rasterize() error: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 20 {
		t.Errorf("size = %v, want 40x20", img.Bounds())
	}

	got := color.RGBAModel.Convert(img.At(20, 10)).(color.RGBA)
	if got.B < 200 || got.R > 50 {
		t.Errorf("center pixel = %v, want blue", got)
	}
}
