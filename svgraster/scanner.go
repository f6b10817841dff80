package svgraster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/golang/freetype/raster"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ rasterx.Scanner = (*ScannerFT)(nil) // assert interface conformance

// ScannerFT is a rasterx.Scanner backed by the freetype
// rasterizer. Unlike rasterx.ScannerGV, it supports
// the even-odd winding rule.
type ScannerFT struct {
	r      *raster.Rasterizer
	dest   draw.Image
	source image.Image
	clip   image.Rectangle

	minX, minY, maxX, maxY fixed.Int26_6 // keep track of bounds
}

// NewScannerFT returns a scanner drawing on `dest`, with
// the non-zero rule and an opaque black color.
func NewScannerFT(width, height int, dest draw.Image) *ScannerFT {
	s := &ScannerFT{r: raster.NewRasterizer(width, height), dest: dest}
	s.r.UseNonZeroWinding = true
	s.source = image.NewUniform(color.Black)
	s.Clear()
	return s
}

func (s *ScannerFT) set(a fixed.Point26_6) {
	if s.maxX < a.X {
		s.maxX = a.X
	}
	if s.maxY < a.Y {
		s.maxY = a.Y
	}
	if s.minX > a.X {
		s.minX = a.X
	}
	if s.minY > a.Y {
		s.minY = a.Y
	}
}

// Start starts a new path at the given point.
func (s *ScannerFT) Start(a fixed.Point26_6) {
	s.set(a)
	s.r.Start(a)
}

// Line adds a linear segment to the current curve.
func (s *ScannerFT) Line(b fixed.Point26_6) {
	s.set(b)
	s.r.Add1(b)
}

// Draw renders the accumulated path to the destination.
func (s *ScannerFT) Draw() {
	s.r.Rasterize(spanPainter{s})
}

// GetPathExtent returns the extent of the path.
func (s *ScannerFT) GetPathExtent() fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{Min: fixed.Point26_6{X: s.minX, Y: s.minY}, Max: fixed.Point26_6{X: s.maxX, Y: s.maxY}}
}

// SetBounds sets the size of the rasterized area, in pixels.
func (s *ScannerFT) SetBounds(width, height int) {
	s.r.SetBounds(width, height)
}

// SetColor accepts a color.Color or a rasterx.ColorFunc.
func (s *ScannerFT) SetColor(clr interface{}) {
	switch c := clr.(type) {
	case color.Color:
		s.source = image.NewUniform(c)
	case rasterx.ColorFunc:
		s.source = funcImage(c)
	}
}

// SetWinding selects the non-zero (true) or even-odd (false) rule.
func (s *ScannerFT) SetWinding(useNonZeroWinding bool) {
	s.r.UseNonZeroWinding = useNonZeroWinding
}

// Clear cancels any previous accumulated scans.
func (s *ScannerFT) Clear() {
	s.r.Clear()
	const mxfi = fixed.Int26_6(math.MaxInt32)
	s.minX, s.minY, s.maxX, s.maxY = mxfi, mxfi, -mxfi, -mxfi
}

// SetClip restricts rendering to `rect`; image.ZR disables clipping.
func (s *ScannerFT) SetClip(rect image.Rectangle) {
	s.clip = rect
}

// funcImage is an unbounded image computed by a ColorFunc
type funcImage rasterx.ColorFunc

func (f funcImage) ColorModel() color.Model { return color.RGBAModel }

func (f funcImage) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (f funcImage) At(x, y int) color.Color { return f(x, y) }

// spanPainter composites the spans of the rasterizer
// over the destination of the scanner
type spanPainter struct {
	s *ScannerFT
}

func (p spanPainter) Paint(ss []raster.Span, _ bool) {
	bounds := p.s.dest.Bounds()
	if p.s.clip != image.ZR {
		bounds = bounds.Intersect(p.s.clip)
	}
	for _, sp := range ss {
		r := image.Rect(sp.X0, sp.Y, sp.X1, sp.Y+1).Intersect(bounds)
		if r.Empty() || sp.Alpha == 0 {
			continue
		}
		alpha := sp.Alpha
		if alpha > 0xffff {
			alpha = 0xffff
		}
		mask := image.NewUniform(color.Alpha16{A: uint16(alpha)})
		draw.DrawMask(p.s.dest, r, p.s.source, r.Min, mask, image.Point{}, draw.Over)
	}
}
