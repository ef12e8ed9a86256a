package script

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"seehuhn.de/go/geom/matrix"

	"github.com/alnah/go-pdf2html"
	"github.com/alnah/go-pdf2html/internal/raster"
)

// Rasterizer renders SVG markup to an image of the given size.
type Rasterizer interface {
	Rasterize(ctx context.Context, svg []byte, w, h int) (image.Image, error)
}

// Option configures a Document.
type Option func(*Document)

// WithRasterizer sets the backend for backgroundSVG pages.
func WithRasterizer(r Rasterizer) Option {
	return func(d *Document) {
		d.rasterizer = r
	}
}

// Document is a validated script. It replays pages into a PageHandler and
// renders their backgrounds.
type Document struct {
	dir        string
	pages      []Page
	ops        [][]op
	rasterizer Rasterizer
}

// Compile-time interface checks.
var (
	_ pdf2html.PageSource         = (*Document)(nil)
	_ pdf2html.BackgroundRenderer = (*Document)(nil)
)

// New validates s. Relative background paths resolve against dir.
func New(s *Script, dir string, opts ...Option) (*Document, error) {
	if s == nil || len(s.Pages) == 0 {
		return nil, ErrNoPages
	}

	d := &Document{dir: dir, pages: s.Pages, ops: make([][]op, len(s.Pages))}
	for i := range s.Pages {
		p := &s.Pages[i]
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrInvalidScript, i+1, err)
		}
		d.ops[i] = make([]op, len(p.Ops))
		for j := range p.Ops {
			o, err := p.Ops[j].compile()
			if err != nil {
				return nil, fmt.Errorf("%w: page %d op %d: %v", ErrInvalidScript, i+1, j+1, err)
			}
			d.ops[i][j] = o
		}
	}

	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// NumPages returns the number of pages.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// NeedsRasterizer reports whether any page has an SVG background.
func (d *Document) NeedsRasterizer() bool {
	for _, p := range d.pages {
		if p.BackgroundSVG != "" {
			return true
		}
	}
	return false
}

func (d *Document) page(index int) (*Page, error) {
	if index < 1 || index > len(d.pages) {
		return nil, fmt.Errorf("%w: %d (document has %d)", ErrPageIndex, index, len(d.pages))
	}
	return &d.pages[index-1], nil
}

// DisplayPage replays page index. Points are scaled to pixels by res: the
// page transform is installed first and every script transform is composed
// with it.
func (d *Document) DisplayPage(ctx context.Context, index int, res pdf2html.Resolution, h pdf2html.PageHandler) error {
	p, err := d.page(index)
	if err != nil {
		return err
	}
	sx, sy := res.Scale()
	base := matrix.Scale(sx, sy)

	if err := h.BeginPage(index, p.Width*sx, p.Height*sy); err != nil {
		return err
	}
	h.InstallTransform(base)

	for _, o := range d.ops[index-1] {
		switch o.kind {
		case opFont:
			h.InstallFont(o.font)
		case opSize:
			h.InstallFontSize(o.num)
		case opTransform:
			h.InstallTransform(o.m.Mul(base))
		case opColor:
			h.InstallColor(o.color)
		case opMove:
			h.MoveTo(o.x, o.y)
		case opText:
			if err := h.ShowText(o.text); err != nil {
				return err
			}
		}
	}
	return h.EndPage()
}

// RenderBackground rasterizes page index at res. Pages without a
// background source get a white page.
func (d *Document) RenderBackground(ctx context.Context, index int, res pdf2html.Resolution) (image.Image, error) {
	p, err := d.page(index)
	if err != nil {
		return nil, err
	}
	w, h, err := raster.PixelSize(p.Width, p.Height, res.H, res.V)
	if err != nil {
		return nil, err
	}

	switch {
	case p.BackgroundSVG != "":
		if d.rasterizer == nil {
			return nil, ErrNoRasterizer
		}
		return d.rasterizer.Rasterize(ctx, []byte(p.BackgroundSVG), w, h)
	case p.Background != "":
		path := p.Background
		if !filepath.IsAbs(path) {
			path = filepath.Join(d.dir, path)
		}
		src, err := raster.DecodeFile(path)
		if err != nil {
			return nil, err
		}
		return raster.Resample(src, w, h)
	case p.BackgroundColor != "":
		c, _ := pdf2html.ParseColor(p.BackgroundColor) // validated by New
		return raster.Blank(w, h, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
	default:
		return raster.Blank(w, h, color.White)
	}
}
