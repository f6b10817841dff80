// Implements a raster backend to render SVG documents,
// by wrapping rasterx. Paths are scanned with the freetype
// rasterizer, which honors the even-odd rule.
package svgraster

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/phamquanglong/qr-styling/cornersquare"
	"github.com/phamquanglong/qr-styling/svgdoc"
	"github.com/phamquanglong/qr-styling/svgpath"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ svgpath.Adder = (*Renderer)(nil) // assert interface conformance

// Renderer fills paths on an image.
type Renderer struct {
	filler *rasterx.Filler
	adder  rasterx.Adder // filler, possibly behind a transform
}

// NewRenderer returns a renderer filling paths with `scanner`.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	filler := rasterx.NewFiller(width, height, scanner)
	return &Renderer{filler: filler, adder: filler}
}

// Clear discards the current path.
func (rd *Renderer) Clear() {
	rd.filler.Clear()
}

// SetWinding selects the non-zero (true) or even-odd (false) rule.
func (rd *Renderer) SetWinding(useNonZeroWinding bool) {
	rd.filler.SetWinding(useNonZeroWinding)
}

// SetFillColor sets the color of the next fill.
func (rd *Renderer) SetFillColor(c color.Color, opacity float64) {
	rd.filler.SetColor(rasterx.ApplyOpacity(c, opacity))
}

// SetTransform applies `m` to the points added afterwards.
func (rd *Renderer) SetTransform(m rasterx.Matrix2D) {
	if m == rasterx.Identity {
		rd.adder = rd.filler
		return
	}
	rd.adder = &rasterx.MatrixAdder{Adder: rd.filler, M: m}
}

func (rd *Renderer) Start(a fixed.Point26_6) { rd.adder.Start(a) }

func (rd *Renderer) Line(b fixed.Point26_6) { rd.adder.Line(b) }

func (rd *Renderer) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) { rd.adder.QuadBezier(b, c) }

func (rd *Renderer) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	rd.adder.CubeBezier(b, c, d)
}

func (rd *Renderer) Stop(closeLoop bool) { rd.adder.Stop(closeLoop) }

// Fill paints the current path.
func (rd *Renderer) Fill() {
	rd.filler.Draw()
}

// DrawElement fills the path `e`, honoring its fill color,
// opacity, fill rule and transform. `base` is applied
// after the element transform.
func (rd *Renderer) DrawElement(e *svgdoc.Element, base rasterx.Matrix2D) error {
	d, _ := e.Attribute(cornersquare.AttrD)
	path, err := svgpath.Parse(d)
	if err != nil {
		return err
	}
	style, err := ReadStyle(e)
	if err != nil {
		return err
	}
	if style.Fill == nil {
		return nil
	}

	rd.Clear()
	rd.SetWinding(style.UseNonZeroWinding)
	rd.SetFillColor(style.Fill, style.Opacity)
	rd.SetTransform(base.Mult(style.Transform))
	path.AddTo(rd)
	rd.Fill()
	return nil
}

// RasterDocument renders `doc` into a new image, with `scale`
// pixels per user unit.
func RasterDocument(doc *svgdoc.Document, scale float64) (*image.RGBA, error) {
	w, h := int(math.Ceil(doc.Width*scale)), int(math.Ceil(doc.Height*scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	scanner := NewScannerFT(w, h, img)
	renderer := NewRenderer(w, h, scanner)
	base := rasterx.Identity.Scale(scale, scale)
	for i, e := range doc.Elements {
		if err := renderer.DrawElement(e, base); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
	}
	return img, nil
}

// RasterSVGToImage reads an SVG document and renders it
// at its natural size.
func RasterSVGToImage(svg io.Reader) (*image.RGBA, error) {
	doc, err := svgdoc.Read(svg, svgdoc.IgnoreErrorMode)
	if err != nil {
		return nil, err
	}
	return RasterDocument(doc, 1)
}
