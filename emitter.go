package pdf2html

import (
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
	"seehuhn.de/go/geom/matrix"
)

// PageEmitter turns page events into HTML markup.
//
// Within a page it moves between two line states. A line is a positioned
// element carrying the style classes of one run of unchanged graphics state;
// it is opened by text and closed by any state change or by the end of the
// page. Every page starts and ends with no line open. Beginning a page while
// a page or line is still open panics with a *SequenceError.
type PageEmitter struct {
	out    io.Writer
	styles *styleSheet
	state  *StateTracker
	inline bool

	// backgrounds maps page index to the written background file.
	backgrounds map[int]string

	expected int // page index allowed by the orchestrator, 0 for any
	began    bool

	page     int
	width    float64
	height   float64
	pageOpen bool
	lineOpen bool

	err error
}

// Compile-time interface check.
var _ PageHandler = (*PageEmitter)(nil)

// NewPageEmitter creates an emitter writing page markup to out and style
// rules to css. With inline set, backgrounds are embedded as base64 data
// instead of being referenced by file name.
func NewPageEmitter(out, css io.Writer, inline bool) *PageEmitter {
	return &PageEmitter{
		out:         out,
		styles:      newStyleSheet(css),
		state:       NewStateTracker(),
		inline:      inline,
		backgrounds: make(map[int]string),
	}
}

// SetBackground records that page index has a background image at path.
func (e *PageEmitter) SetBackground(index int, path string) {
	e.backgrounds[index] = path
}

// State exposes the tracker for inspection.
func (e *PageEmitter) State() *StateTracker { return e.state }

// LineOpen reports whether a line is awaiting its close tag.
func (e *PageEmitter) LineOpen() bool { return e.lineOpen }

// PageOpen reports whether a page container is open.
func (e *PageEmitter) PageOpen() bool { return e.pageOpen }

// Err returns the first write error.
func (e *PageEmitter) Err() error { return e.err }

// BeginPage opens the container of page index and resets the page state.
func (e *PageEmitter) BeginPage(index int, width, height float64) error {
	if e.lineOpen {
		panic(&SequenceError{Page: index, Reason: "line still open at page begin"})
	}
	if e.pageOpen {
		panic(&SequenceError{Page: index, Reason: fmt.Sprintf("page %d was not ended", e.page)})
	}
	if e.expected != 0 {
		if index != e.expected {
			panic(&SequenceError{Page: index, Reason: fmt.Sprintf("expected page %d", e.expected)})
		}
		if e.began {
			panic(&SequenceError{Page: index, Reason: "page begun twice"})
		}
	}
	if !positive(width) || !positive(height) {
		return fmt.Errorf("%w: page %d: %gx%g", ErrInvalidPageSize, index, width, height)
	}

	e.page, e.width, e.height = index, width, height
	e.pageOpen, e.began = true, true
	e.resetPageState()

	w, h := formatNumber(width), formatNumber(height)
	e.printf(`<div id="p%x" class="p" style="width:%spx;height:%spx;`, index, w, h)
	if path, ok := e.backgrounds[index]; ok {
		e.write("background-image:url(")
		if err := e.writeBackgroundRef(path); err != nil {
			return err
		}
		e.printf(");background-position:0 0;background-size:%spx %spx;background-repeat:no-repeat;", w, h)
	}
	e.write(`">`)
	return e.err
}

// resetPageState installs the defaults every page starts from.
func (e *PageEmitter) resetPageState() {
	e.lineOpen = false
	e.state.Reset()
}

func (e *PageEmitter) writeBackgroundRef(path string) error {
	if !e.inline {
		e.write(filepath.Base(path))
		return e.err
	}

	f, err := os.Open(path) // #nosec G304 -- staged background written by this run
	if err != nil {
		return fmt.Errorf("%w: reading background: %v", ErrStaging, err)
	}
	defer f.Close()

	e.write("'data:image/png;base64,")
	if e.err != nil {
		return e.err
	}
	out := &trackedWriter{w: e.out}
	enc := base64.NewEncoder(base64.StdEncoding, out)
	if _, err := io.Copy(enc, f); err != nil {
		if out.err != nil {
			e.fail(fmt.Errorf("%w: %v", ErrOutput, err))
		} else {
			e.fail(fmt.Errorf("%w: embedding background: %v", ErrStaging, err))
		}
		return e.err
	}
	if err := enc.Close(); err != nil {
		e.fail(fmt.Errorf("%w: %v", ErrOutput, err))
		return e.err
	}
	e.write("'")
	return e.err
}

// InstallFont installs f, closing the current line if it changed.
func (e *PageEmitter) InstallFont(f Font) {
	if e.state.InstallFont(f) {
		e.closeLine()
	}
}

// InstallFontSize installs size, closing the current line if it changed.
// A NaN or infinite size fails the run with ErrInvalidState.
func (e *PageEmitter) InstallFontSize(size float64) {
	if !finite(size) {
		e.fail(fmt.Errorf("%w: page %d: font size %g", ErrInvalidState, e.page, size))
		return
	}
	if e.state.InstallFontSize(size) {
		e.closeLine()
	}
}

// InstallTransform installs m, closing the current line if it changed.
func (e *PageEmitter) InstallTransform(m matrix.Matrix) {
	if !finite(m[:]...) {
		e.fail(fmt.Errorf("%w: page %d: transform %v", ErrInvalidState, e.page, m))
		return
	}
	if e.state.InstallTransform(m) {
		e.closeLine()
	}
}

// InstallColor installs c, closing the current line if it changed.
func (e *PageEmitter) InstallColor(c Color) {
	if e.state.InstallColor(c) {
		e.closeLine()
	}
}

// MoveTo moves the pen. A new position starts a new line.
func (e *PageEmitter) MoveTo(x, y float64) {
	if !finite(x, y) {
		e.fail(fmt.Errorf("%w: page %d: position (%g, %g)", ErrInvalidState, e.page, x, y))
		return
	}
	if e.state.MoveTo(x, y) {
		e.closeLine()
	}
}

// ShowText appends text to the current line, opening one if needed.
func (e *PageEmitter) ShowText(text string) error {
	if !e.pageOpen {
		panic(&SequenceError{Page: e.page, Reason: "text outside of a page"})
	}
	if text == "" {
		return e.err
	}
	if !e.lineOpen {
		e.openLine()
	}
	e.write(html.EscapeString(norm.NFC.String(text)))
	return e.err
}

// EndPage closes any open line, then the page container.
func (e *PageEmitter) EndPage() error {
	if !e.pageOpen {
		panic(&SequenceError{Page: e.page, Reason: "page ended without begin"})
	}
	e.closeLine()
	e.write("</div>\n")
	e.pageOpen = false
	return e.err
}

func (e *PageEmitter) openLine() {
	s := e.state
	f := e.styles.fontID(s.Font())
	sz := e.styles.sizeID(s.DrawFontSize())
	c := e.styles.colorID(s.Color())
	t := e.styles.transformID(s.DrawMatrix())
	x, y := s.Origin()
	e.printf(`<div class="l f%x s%x c%x t%x" style="left:%spx;bottom:%spx;">`,
		f, sz, c, t, formatNumber(round(x, sizePrecision)), formatNumber(round(y, sizePrecision)))
	e.lineOpen = true
}

// closeLine is a no-op when no line is open.
func (e *PageEmitter) closeLine() {
	if !e.lineOpen {
		return
	}
	e.write("</div>")
	e.lineOpen = false
}

// expect restricts the next BeginPage to index.
func (e *PageEmitter) expect(index int) {
	e.expected = index
	e.began = false
}

// finishPage checks that the page expected by expect was begun and ended.
func (e *PageEmitter) finishPage(index int) error {
	defer e.expect(0)
	if e.pageOpen {
		return &SequenceError{Page: index, Reason: "page not ended"}
	}
	if !e.began {
		return &SequenceError{Page: index, Reason: "page never begun"}
	}
	return e.err
}

func (e *PageEmitter) write(s string) {
	if e.err != nil {
		return
	}
	if _, err := io.WriteString(e.out, s); err != nil {
		e.fail(fmt.Errorf("%w: %v", ErrOutput, err))
	}
}

func (e *PageEmitter) printf(format string, args ...any) {
	e.write(fmt.Sprintf(format, args...))
}

func (e *PageEmitter) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// trackedWriter remembers a write failure so copy errors can be told
// apart from read failures.
type trackedWriter struct {
	w   io.Writer
	err error
}

func (t *trackedWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil && t.err == nil {
		t.err = err
	}
	return n, err
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
