package pdf2html

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/alnah/go-pdf2html/internal/fileutil"
	"github.com/alnah/go-pdf2html/internal/staging"
)

// backgroundPass renders and writes one raster background per page.
// In single-file mode backgrounds are staged and registered so the
// assembly can inline them; otherwise they go straight to the destination
// and outlive the run.
type backgroundPass struct {
	renderer BackgroundRenderer
	res      Resolution
	dir      string
	registry *staging.Registry // nil in multi-file mode
}

func newBackgroundPass(r BackgroundRenderer, cfg *Config, reg *staging.Registry) *backgroundPass {
	p := &backgroundPass{
		renderer: r,
		res:      cfg.BackgroundResolution,
		dir:      cfg.DestDir,
	}
	if cfg.SingleHTML {
		p.dir = reg.Dir()
		p.registry = reg
	}
	return p
}

// render produces the background of page index and returns its path.
func (p *backgroundPass) render(ctx context.Context, index int) (string, error) {
	img, err := p.renderer.RenderBackground(ctx, index, p.res)
	if err != nil {
		return "", err
	}
	if img == nil || img.Bounds().Empty() {
		return "", errors.New("renderer returned an empty image")
	}

	name := pageFilename(index)
	if p.registry != nil {
		if _, err := p.registry.Add(name); err != nil {
			return "", err
		}
	}
	path := filepath.Join(p.dir, name)
	if err := writePNG(path, img); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, fileutil.FilePermissions) // #nosec G304 -- page file name inside the run's directory
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
