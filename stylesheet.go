package pdf2html

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/geom/matrix"
)

// Precision used when interning derived values. Sizes closer than 1/100 px
// and matrix coefficients closer than 1e-4 share one style class.
const (
	sizePrecision   = 100
	matrixPrecision = 10000
)

// styleSheet interns style values into numbered classes and writes one CSS
// rule per distinct value, the first time that value is used. Classes live
// for the whole document; pages only reset which ones are current.
type styleSheet struct {
	w          io.Writer
	fonts      map[Font]int
	sizes      map[float64]int
	colors     map[Color]int
	transforms map[matrix.Matrix]int
}

func newStyleSheet(w io.Writer) *styleSheet {
	return &styleSheet{
		w:          w,
		fonts:      make(map[Font]int),
		sizes:      make(map[float64]int),
		colors:     make(map[Color]int),
		transforms: make(map[matrix.Matrix]int),
	}
}

func (s *styleSheet) fontID(f Font) int {
	if id, ok := s.fonts[f]; ok {
		return id
	}
	id := len(s.fonts)
	s.fonts[f] = id
	fmt.Fprintf(s.w, ".f%x{font-family:%s;}\n", id, fontFamily(f))
	return id
}

func (s *styleSheet) sizeID(size float64) int {
	key := round(size, sizePrecision)
	if id, ok := s.sizes[key]; ok {
		return id
	}
	id := len(s.sizes)
	s.sizes[key] = id
	fmt.Fprintf(s.w, ".s%x{font-size:%spx;}\n", id, formatNumber(key))
	return id
}

func (s *styleSheet) colorID(c Color) int {
	if id, ok := s.colors[c]; ok {
		return id
	}
	id := len(s.colors)
	s.colors[c] = id
	fmt.Fprintf(s.w, ".c%x{color:%s;}\n", id, c.Hex())
	return id
}

func (s *styleSheet) transformID(m matrix.Matrix) int {
	var key matrix.Matrix
	for i := 0; i < 4; i++ {
		key[i] = round(m[i], matrixPrecision)
	}
	if id, ok := s.transforms[key]; ok {
		return id
	}
	id := len(s.transforms)
	s.transforms[key] = id

	// Page space has y up, CSS has y down: conjugate by a vertical flip.
	css := "none"
	if key != matrix.Identity {
		css = fmt.Sprintf("matrix(%s,%s,%s,%s,0,0)",
			formatNumber(key[0]), formatNumber(negate(key[1])), formatNumber(negate(key[2])), formatNumber(key[3]))
	}
	fmt.Fprintf(s.w, ".t%x{transform:%s;-ms-transform:%s;-webkit-transform:%s;}\n", id, css, css, css)
	return id
}

// fontFamily renders a CSS font-family value for f.
func fontFamily(f Font) string {
	family := f.Family
	if family == "" {
		family = f.Name
	}
	if family == "" {
		return "sans-serif"
	}
	family = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '\n', '\r', ';', '{', '}', '<', '>':
			return -1
		}
		return r
	}, family)
	return `"` + family + `",sans-serif`
}

func round(v float64, precision float64) float64 {
	r := math.Round(v*precision) / precision
	if r == 0 {
		return 0 // normalize -0
	}
	return r
}

// negate returns -v without producing -0.
func negate(v float64) float64 {
	if v == 0 {
		return 0
	}
	return -v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
