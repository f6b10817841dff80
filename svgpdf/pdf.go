// Implements a PDF backend to render SVG documents,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/phamquanglong/qr-styling/cornersquare"
	"github.com/phamquanglong/qr-styling/svgdoc"
	"github.com/phamquanglong/qr-styling/svgpath"
	"github.com/phamquanglong/qr-styling/svgraster"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ svgpath.Adder = (*pather)(nil) // assert interface conformance

// Renderer fills paths on the current page of a PDF.
type Renderer struct {
	filler filler
}

// implements the path commands, in user units
type pather struct {
	pdf    *gofpdf.Fpdf
	px, py float64 // current point
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) *Renderer {
	return &Renderer{filler: filler{pather: pather{pdf: pdf}}}
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p *pather) Start(a fixed.Point26_6) {
	p.px, p.py = fixedTof(a)
	p.pdf.MoveTo(p.px, p.py)
}

func (p *pather) Line(b fixed.Point26_6) {
	p.px, p.py = fixedTof(b)
	p.pdf.LineTo(p.px, p.py)
}

// PDF has no quadratic curves: the "v" operator of CurveTo
// is a cubic, so the curve is elevated to degree 3.
func (p *pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveBezierCubicTo(
		p.px+2*(cx-p.px)/3, p.py+2*(cy-p.py)/3,
		x+2*(cx-x)/3, y+2*(cy-y)/3,
		x, y)
	p.px, p.py = x, y
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
	p.px, p.py = x, y
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

func (f filler) SetColor(c color.Color, opacity float64) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	f.pdf.SetFillColor(int(nc.R), int(nc.G), int(nc.B))
	opacity *= float64(nc.A) / 255.
	f.pdf.SetAlpha(opacity, "")
}

func (f filler) Draw() {
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

// DrawElement fills the path `e`.
func (rd *Renderer) DrawElement(e *svgdoc.Element) error {
	d, _ := e.Attribute(cornersquare.AttrD)
	path, err := svgpath.Parse(d)
	if err != nil {
		return err
	}
	style, err := svgraster.ReadStyle(e)
	if err != nil {
		return err
	}
	if style.Fill == nil || len(path) == 0 {
		return nil
	}
	rd.filler.SetWinding(style.UseNonZeroWinding)
	rd.filler.SetColor(style.Fill, style.Opacity)
	var adder svgpath.Adder = &rd.filler.pather
	if style.Transform != rasterx.Identity {
		adder = &rasterx.MatrixAdder{Adder: &rd.filler.pather, M: style.Transform}
	}
	path.AddTo(adder)
	rd.filler.Draw()
	return nil
}

// NewPDF returns a one page document, whose size
// in points is the one of `doc`.
func NewPDF(doc *svgdoc.Document) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: doc.Width, Ht: doc.Height},
	})
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	pdf.AddPage()
	return pdf
}

// Draw renders every element of `doc` on the current page of `pdf`.
func Draw(pdf *gofpdf.Fpdf, doc *svgdoc.Document) error {
	rd := NewRenderer(pdf)
	for i, e := range doc.Elements {
		if err := rd.DrawElement(e); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return pdf.Error()
}

// WriteDocument writes `doc` as a PDF file.
func WriteDocument(doc *svgdoc.Document, w io.Writer) error {
	pdf := NewPDF(doc)
	if err := Draw(pdf, doc); err != nil {
		return err
	}
	return pdf.Output(w)
}
