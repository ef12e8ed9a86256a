package pdf2html

import (
	"math"

	"seehuhn.de/go/geom/matrix"
)

// StateTracker holds the graphics attributes currently in effect on a page.
// Each Install method compares against the active value and reports whether
// it changed, so the emitter opens new markup only on real changes.
//
// Besides the raw values it keeps the derived draw quantities used for style
// classes: the transform is split into a uniform scale (folded into the
// effective font size), a normalized matrix, and a translation. Scaling the
// transform and shrinking the font size by the same factor therefore maps to
// the same style classes.
type StateTracker struct {
	font     Font
	fontSize float64
	ctm      matrix.Matrix
	color    Color
	penX     float64
	penY     float64

	drawScale    float64
	drawFontSize float64
	drawMatrix   matrix.Matrix
	drawTx       float64
	drawTy       float64
}

// NewStateTracker returns a tracker holding the page defaults.
func NewStateTracker() *StateTracker {
	s := &StateTracker{}
	s.Reset()
	return s
}

// Reset installs the page defaults: no font, size 0, identity transform,
// black, pen at the origin.
func (s *StateTracker) Reset() {
	s.font = Font{}
	s.fontSize = 0
	s.ctm = matrix.Identity
	s.color = Black
	s.penX, s.penY = 0, 0
	s.derive()
}

// InstallFont makes f current.
func (s *StateTracker) InstallFont(f Font) bool {
	if f == s.font {
		return false
	}
	s.font = f
	return true
}

// InstallFontSize makes size current.
func (s *StateTracker) InstallFontSize(size float64) bool {
	if size == s.fontSize {
		return false
	}
	s.fontSize = size
	s.derive()
	return true
}

// InstallTransform makes m the current transformation matrix.
func (s *StateTracker) InstallTransform(m matrix.Matrix) bool {
	if m == s.ctm {
		return false
	}
	s.ctm = m
	s.derive()
	return true
}

// InstallColor makes c the current fill color.
func (s *StateTracker) InstallColor(c Color) bool {
	if c == s.color {
		return false
	}
	s.color = c
	return true
}

// MoveTo sets the pen position in text space.
func (s *StateTracker) MoveTo(x, y float64) bool {
	if x == s.penX && y == s.penY {
		return false
	}
	s.penX, s.penY = x, y
	return true
}

// derive recomputes the draw quantities from the transform and font size.
func (s *StateTracker) derive() {
	m := s.ctm
	scale := math.Hypot(m[2], m[3])
	if scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	s.drawScale = scale
	s.drawFontSize = s.fontSize * scale
	s.drawMatrix = matrix.Matrix{m[0] / scale, m[1] / scale, m[2] / scale, m[3] / scale, 0, 0}
	s.drawTx, s.drawTy = m[4], m[5]
}

// Font returns the current font.
func (s *StateTracker) Font() Font { return s.font }

// FontSize returns the current font size in text space.
func (s *StateTracker) FontSize() float64 { return s.fontSize }

// Transform returns the current transformation matrix.
func (s *StateTracker) Transform() matrix.Matrix { return s.ctm }

// Color returns the current fill color.
func (s *StateTracker) Color() Color { return s.color }

// DrawScale returns the uniform scale extracted from the transform.
func (s *StateTracker) DrawScale() float64 { return s.drawScale }

// DrawFontSize returns the font size in pixels after the transform scale.
func (s *StateTracker) DrawFontSize() float64 { return s.drawFontSize }

// DrawMatrix returns the transform without scale and translation.
func (s *StateTracker) DrawMatrix() matrix.Matrix { return s.drawMatrix }

// Origin returns the pen position mapped through the transform.
func (s *StateTracker) Origin() (x, y float64) {
	m := s.ctm
	return m[0]*s.penX + m[2]*s.penY + s.drawTx, m[1]*s.penX + m[3]*s.penY + s.drawTy
}
