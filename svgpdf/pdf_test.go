package svgpdf

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/phamquanglong/qr-styling/cornersquare"
	"github.com/phamquanglong/qr-styling/svgdoc"
	"github.com/phamquanglong/qr-styling/svgraster"
)

func markersDocument() *svgdoc.Document {
	doc := svgdoc.New(210, 70)
	doc.Title = "corner squares"
	doc.AddRect(0, 0, 210, 70, "white")
	for i, style := range []cornersquare.Style{cornersquare.Dot, cornersquare.Style2, cornersquare.Style4} {
		cornersquare.New(style, doc).Draw(float64(i)*70, 0, 70, float64(i)*1.5707963267948966)
	}
	return doc
}

func TestWriteDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDocument(markersDocument(), &buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("unexpected output %q", buf.Bytes()[:10])
	}
}

func TestFillOperators(t *testing.T) {
	doc := markersDocument()
	pdf := NewPDF(doc)
	pdf.SetCompression(false)
	if err := Draw(pdf, doc); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	// the background uses the non-zero rule, the markers even-odd
	if n := strings.Count(out, "\nf\n"); n != 1 {
		t.Errorf("expected 1 non-zero fill, got %d", n)
	}
	if n := strings.Count(out, "\nf*\n"); n != 3 {
		t.Errorf("expected 3 even-odd fills, got %d", n)
	}
	// each marker has two closed contours
	if n := strings.Count(out, "\nh\n"); n != 7 {
		t.Errorf("expected 7 closed contours, got %d", n)
	}
}

func TestQuadraticAsCubic(t *testing.T) {
	doc := svgdoc.New(10, 10)
	doc.AddPath().SetAttribute("d", "M 0 0 Q 3 9 6 0 T 9 0 Z")
	pdf := NewPDF(doc)
	pdf.SetCompression(false)
	if err := Draw(pdf, doc); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	// the page height is 10pt, so (2, 6) is written as (2, 4)
	if !strings.Contains(out, "2.00000 4.00000 4.00000 4.00000 6.00000 10.00000 c") {
		t.Errorf("expected an elevated cubic, got\n%s", out)
	}
	if n := strings.Count(out, " c\n"); n != 2 {
		t.Errorf("expected 2 cubic curves, got %d", n)
	}
	if strings.Contains(out, " v\n") {
		t.Error("unexpected v operator")
	}
}

func TestDrawErrors(t *testing.T) {
	doc := svgdoc.New(10, 10)
	e := doc.AddRect(0, 0, 10, 10, "black")
	e.SetAttribute("transform", "rotate(1,2)")
	if err := WriteDocument(doc, new(bytes.Buffer)); !errors.Is(err, svgraster.ErrBadTransform) {
		t.Errorf("expected ErrBadTransform, got %v", err)
	}

	doc = svgdoc.New(10, 10)
	doc.AddPath().SetAttribute("d", "M 0 0 B 1 1 2 2")
	if err := WriteDocument(doc, new(bytes.Buffer)); err == nil {
		t.Error("expected error for unsupported path command")
	}
}
