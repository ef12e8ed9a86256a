package script

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"seehuhn.de/go/geom/matrix"

	"github.com/alnah/go-pdf2html"
	"github.com/alnah/go-pdf2html/internal/yamlutil"
)

// Script is the decoded file.
type Script struct {
	Pages []Page `yaml:"pages"`
}

// Page is one page of a script.
type Page struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// At most one background source.
	Background      string `yaml:"background"`      // image file
	BackgroundSVG   string `yaml:"backgroundSVG"`   // inline SVG markup
	BackgroundColor string `yaml:"backgroundColor"` // solid fill

	Ops []Op `yaml:"ops"`
}

// Op is one drawing operation. Exactly one field is set.
type Op struct {
	Font      *FontOp   `yaml:"font"`
	Size      *float64  `yaml:"size"`
	Transform []float64 `yaml:"transform"` // a b c d e f
	Color     string    `yaml:"color"`
	Move      []float64 `yaml:"move"` // x y
	Text      *string   `yaml:"text"`
}

// FontOp selects a font.
type FontOp struct {
	Name   string `yaml:"name"`
	Family string `yaml:"family"`
}

// kind identifies the field set on an Op.
type kind int

const (
	opFont kind = iota
	opSize
	opTransform
	opColor
	opMove
	opText
)

// op is a validated Op.
type op struct {
	kind  kind
	font  pdf2html.Font
	num   float64
	m     matrix.Matrix
	color pdf2html.Color
	x, y  float64
	text  string
}

// Load reads and validates the script at path.
func Load(path string, opts ...Option) (*Document, error) {
	var s Script
	if err := yamlutil.ReadFileStrict(path, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScript, path, err)
	}
	return New(&s, filepath.Dir(path), opts...)
}

// Parse decodes and validates script data. Relative background paths are
// resolved against dir.
func Parse(data []byte, dir string, opts ...Option) (*Document, error) {
	var s Script
	if err := yamlutil.UnmarshalStrict(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScript, err)
	}
	return New(&s, dir, opts...)
}

func (p *Page) validate() error {
	if !finitePositive(p.Width) || !finitePositive(p.Height) {
		return fmt.Errorf("page size %gx%g must be positive", p.Width, p.Height)
	}
	n := 0
	for _, src := range []string{p.Background, p.BackgroundSVG, p.BackgroundColor} {
		if strings.TrimSpace(src) != "" {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("background, backgroundSVG and backgroundColor are exclusive")
	}
	if p.BackgroundColor != "" {
		if _, err := pdf2html.ParseColor(p.BackgroundColor); err != nil {
			return err
		}
	}
	return nil
}

func (o *Op) compile() (op, error) {
	var out []op
	if o.Font != nil {
		out = append(out, op{kind: opFont, font: pdf2html.Font{Name: o.Font.Name, Family: o.Font.Family}})
	}
	if o.Size != nil {
		if !(*o.Size >= 0) || math.IsInf(*o.Size, 0) {
			return op{}, fmt.Errorf("size %g must be non-negative", *o.Size)
		}
		out = append(out, op{kind: opSize, num: *o.Size})
	}
	if o.Transform != nil {
		if len(o.Transform) != 6 {
			return op{}, fmt.Errorf("transform needs 6 numbers, got %d", len(o.Transform))
		}
		var m matrix.Matrix
		copy(m[:], o.Transform)
		out = append(out, op{kind: opTransform, m: m})
	}
	if o.Color != "" {
		c, err := pdf2html.ParseColor(o.Color)
		if err != nil {
			return op{}, err
		}
		out = append(out, op{kind: opColor, color: c})
	}
	if o.Move != nil {
		if len(o.Move) != 2 {
			return op{}, fmt.Errorf("move needs 2 numbers, got %d", len(o.Move))
		}
		out = append(out, op{kind: opMove, x: o.Move[0], y: o.Move[1]})
	}
	if o.Text != nil {
		out = append(out, op{kind: opText, text: *o.Text})
	}

	if len(out) != 1 {
		return op{}, fmt.Errorf("operation must set exactly one field, got %d", len(out))
	}
	return out[0], nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
