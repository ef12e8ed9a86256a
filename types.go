package pdf2html

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// File names produced in the destination and staging directories.
const (
	CSSFilename       = "all.css"
	PartialSuffix     = ".part"
	DefaultOutputName = "index.html"
)

// Resolution bounds in dots per inch.
const (
	MinDPI     = 1.0
	MaxDPI     = 9600.0
	DefaultDPI = 72.0
)

// Resolution is a horizontal and vertical DPI pair.
type Resolution struct {
	H float64
	V float64
}

// Validate checks that both axes are within [MinDPI, MaxDPI].
func (r Resolution) Validate() error {
	for _, v := range []float64{r.H, r.V} {
		if math.IsNaN(v) || v < MinDPI || v > MaxDPI {
			return fmt.Errorf("%w: %gx%g (each axis must be between %g and %g)", ErrInvalidResolution, r.H, r.V, MinDPI, MaxDPI)
		}
	}
	return nil
}

// Scale returns the factor from points (1/72 inch) to pixels on each axis.
func (r Resolution) Scale() (sx, sy float64) {
	return r.H / DefaultDPI, r.V / DefaultDPI
}

// Config is the immutable description of one document run.
type Config struct {
	DestDir        string // final deliverable and, in multi-file mode, its assets
	TmpDir         string // staging area, may equal DestDir
	OutputFilename string // e.g. "index.html"

	FirstPage int // 1-based, inclusive
	LastPage  int // inclusive, clamped to the document length

	Resolution           Resolution // foreground pass
	BackgroundResolution Resolution // background raster pass

	SingleHTML     bool // inline css and backgrounds into one file
	ProcessNonText bool // run the background pass
	Debug          bool // report staging activity
}

// DefaultConfig returns a configuration writing index.html into dir for the
// first page, at 72 DPI, multi-file, without backgrounds.
func DefaultConfig(dir string) Config {
	return Config{
		DestDir:              dir,
		TmpDir:               dir,
		OutputFilename:       DefaultOutputName,
		FirstPage:            1,
		LastPage:             1,
		Resolution:           Resolution{H: DefaultDPI, V: DefaultDPI},
		BackgroundResolution: Resolution{H: DefaultDPI, V: DefaultDPI},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DestDir == "" {
		return ErrEmptyDestDir
	}
	if err := validateOutputFilename(c.OutputFilename); err != nil {
		return err
	}
	if c.FirstPage < 1 || c.LastPage < c.FirstPage {
		return fmt.Errorf("%w: %d-%d (first must be >= 1 and <= last)", ErrInvalidPageRange, c.FirstPage, c.LastPage)
	}
	if err := c.Resolution.Validate(); err != nil {
		return fmt.Errorf("foreground: %w", err)
	}
	if c.ProcessNonText {
		if err := c.BackgroundResolution.Validate(); err != nil {
			return fmt.Errorf("background: %w", err)
		}
	}
	return nil
}

// stagingDir returns TmpDir, falling back to DestDir.
func (c *Config) stagingDir() string {
	if c.TmpDir == "" {
		return c.DestDir
	}
	return c.TmpDir
}

// partialFilename names the staged body stream. The suffix keeps it apart
// from the deliverable when staging and destination are the same directory.
func (c *Config) partialFilename() string {
	return c.OutputFilename + PartialSuffix
}

func validateOutputFilename(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidOutputFilename)
	case strings.ContainsAny(name, "/\\\x00"), name != filepath.Base(name), name == "." || name == "..":
		return fmt.Errorf("%w: %q must be a bare file name", ErrInvalidOutputFilename, name)
	case name == CSSFilename:
		return fmt.Errorf("%w: %q is reserved for the style sheet", ErrInvalidOutputFilename, name)
	case isPageFilename(name):
		return fmt.Errorf("%w: %q is reserved for page backgrounds", ErrInvalidOutputFilename, name)
	case strings.HasSuffix(name, PartialSuffix):
		return fmt.Errorf("%w: %q ends in the staging suffix %q", ErrInvalidOutputFilename, name, PartialSuffix)
	}
	return nil
}

// isPageFilename reports whether name has the p<hex>.png shape used for
// backgrounds. Matching is case-insensitive since some file systems are.
func isPageFilename(name string) bool {
	lower := strings.ToLower(name)
	digits, ok := strings.CutPrefix(lower, "p")
	if !ok {
		return false
	}
	digits, ok = strings.CutSuffix(digits, ".png")
	if !ok || digits == "" {
		return false
	}
	for _, c := range digits {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return false
		}
	}
	return true
}

// Color is an 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Black is the color installed at the start of every page.
var Black = Color{}

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor parses "#rgb" or "#rrggbb" (case-insensitive).
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want #rgb or #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %v", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Font identifies a font installed by the renderer. The zero value means
// no font; Name distinguishes fonts, Family feeds the CSS font-family.
type Font struct {
	Name   string
	Family string
}

// IsZero reports whether f is the "no font" value.
func (f Font) IsZero() bool {
	return f == Font{}
}

// Result describes a finished run.
type Result struct {
	OutputPath  string // deliverable path
	Pages       int    // pages emitted
	Backgrounds int    // backgrounds written
	SingleHTML  bool
}

func pageFilename(index int) string {
	return fmt.Sprintf("p%x.png", index)
}
