package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-pdf2html/internal/fileutil"
	"github.com/alnah/go-pdf2html/internal/process"
)

// DefaultTimeout bounds one page load in the browser.
const DefaultTimeout = 30 * time.Second

// svgPage wraps SVG markup so it fills exactly the viewport.
const svgPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"/><style>
html,body{margin:0;padding:0;background:#fff;overflow:hidden;}
svg{display:block;width:%dpx;height:%dpx;}
</style></head><body>%s</body></html>
`

// SVGRasterizer renders SVG markup to images in headless Chrome.
// The browser starts on first use and lives until Close.
// Rod downloads Chromium on first run if no browser is found.
type SVGRasterizer struct {
	timeout  time.Duration
	settings BrowserSettings

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewSVGRasterizer creates a rasterizer. A zero timeout uses DefaultTimeout.
func NewSVGRasterizer(timeout time.Duration) *SVGRasterizer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &SVGRasterizer{timeout: timeout, settings: BrowserSettingsFrom(os.Getenv)}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *SVGRasterizer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := r.settings.newLauncher()
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l
	r.browser = browser
	return nil
}

// Rasterize renders svg into a w by h image.
func (r *SVGRasterizer) Rasterize(ctx context.Context, svg []byte, w, h int) (image.Image, error) {
	if err := checkSize(w, h); err != nil {
		return nil, err
	}
	markup := strings.TrimSpace(string(svg))
	if !strings.Contains(markup, "<svg") {
		return nil, ErrEmptySVG
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// One page at a time per browser.
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	path, cleanup, err := fileutil.WriteTempFile(fmt.Sprintf(svgPage, w, h, markup), "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + path})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	page = page.Context(ctx).Timeout(timeout)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             w,
		Height:            h,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	shot, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	return img, nil
}

// Close shuts the browser down and kills its process tree.
func (r *SVGRasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil

	if r.launcher != nil {
		// Chrome helpers survive a plain Kill, so take the whole group.
		if pid := r.launcher.PID(); pid > 0 {
			process.KillProcessGroup(pid)
		}
		r.launcher.Kill()
		r.launcher.Cleanup()
		r.launcher = nil
	}
	return err
}
