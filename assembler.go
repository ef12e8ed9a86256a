package pdf2html

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-pdf2html/internal/assets"
	"github.com/alnah/go-pdf2html/internal/fileutil"
	"github.com/alnah/go-pdf2html/internal/staging"
)

const (
	styleLink  = `<link rel="stylesheet" type="text/css" href="` + CSSFilename + `"/>` + "\n"
	styleOpen  = `<style type="text/css">` + "\n"
	styleClose = "</style>\n"
)

// assembler owns the output streams of one run.
//
// Multi-file mode streams straight into the destination: head, the style
// sheet link and neck first, then pages, then tail. Single-file mode streams
// the body and the style sheet into staged files, and close concatenates them
// with the boilerplate into the destination. Both modes produce the same
// head, style, neck, body, tail order.
type assembler struct {
	cfg      *Config
	bp       *assets.Boilerplate
	registry *staging.Registry

	html *stream
	css  *stream
}

func newAssembler(cfg *Config, bp *assets.Boilerplate, reg *staging.Registry) *assembler {
	return &assembler{cfg: cfg, bp: bp, registry: reg}
}

func (a *assembler) outputPath() string {
	return filepath.Join(a.cfg.DestDir, a.cfg.OutputFilename)
}

// htmlPath is where the body streams to.
func (a *assembler) htmlPath() string {
	if a.cfg.SingleHTML {
		return a.registry.Path(a.cfg.partialFilename())
	}
	return a.outputPath()
}

func (a *assembler) cssPath() string {
	if a.cfg.SingleHTML {
		return a.registry.Path(CSSFilename)
	}
	return filepath.Join(a.cfg.DestDir, CSSFilename)
}

// open is the pre-process step.
func (a *assembler) open() error {
	if a.cfg.SingleHTML {
		for _, name := range []string{a.cfg.partialFilename(), CSSFilename} {
			if _, err := a.registry.Add(name); err != nil {
				return fmt.Errorf("%w: %v", ErrStaging, err)
			}
		}
	}

	var err error
	if a.html, err = createStream(a.htmlPath()); err != nil {
		return a.openErr(err)
	}
	if a.css, err = createStream(a.cssPath()); err != nil {
		return a.openErr(err)
	}

	if !a.cfg.SingleHTML {
		_, _ = a.html.Write(a.bp.Head)
		_, _ = a.html.WriteString(styleLink)
		_, _ = a.html.Write(a.bp.Neck)
	}
	_, _ = a.css.Write(a.bp.CSS)

	if err := errors.Join(a.html.Err(), a.css.Err()); err != nil {
		return a.openErr(err)
	}
	return nil
}

func (a *assembler) openErr(err error) error {
	if a.cfg.SingleHTML {
		return fmt.Errorf("%w: %v", ErrStaging, err)
	}
	return fmt.Errorf("%w: %v", ErrOutput, err)
}

// close is the post-process step. In single-file mode it also runs the
// assembly into the destination.
func (a *assembler) close() error {
	if !a.cfg.SingleHTML {
		_, _ = a.html.Write(a.bp.Tail)
	}
	htmlErr := a.html.Close()
	cssErr := a.css.Close()
	if err := errors.Join(htmlErr, cssErr); err != nil {
		return a.openErr(err)
	}

	if a.cfg.SingleHTML {
		return a.assemble()
	}
	return nil
}

func (a *assembler) assemble() error {
	out, err := createStream(a.outputPath())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAssembly, err)
	}
	defer out.Close()

	_, _ = out.Write(a.bp.Head)
	_, _ = out.WriteString(styleOpen)
	if _, err := fileutil.CopyFileTo(out, a.cssPath()); err != nil {
		return fmt.Errorf("%w: reading staged %s: %v", ErrAssembly, CSSFilename, err)
	}
	_, _ = out.WriteString(styleClose)
	_, _ = out.Write(a.bp.Neck)
	if _, err := fileutil.CopyFileTo(out, a.htmlPath()); err != nil {
		return fmt.Errorf("%w: reading staged %s: %v", ErrAssembly, a.cfg.partialFilename(), err)
	}
	_, _ = out.Write(a.bp.Tail)

	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrAssembly, err)
	}
	return nil
}

// abort closes whatever is open after a failure. Partial output is left
// in place; staged files go with the registry teardown.
func (a *assembler) abort() {
	if a.html != nil {
		_ = a.html.Close()
	}
	if a.css != nil {
		_ = a.css.Close()
	}
}
