package svgraster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/phamquanglong/qr-styling/cornersquare"
	"github.com/phamquanglong/qr-styling/svgdoc"
	"github.com/srwiley/rasterx"
)

func alphaAt(img *image.RGBA, x, y int) uint8 {
	return img.RGBAAt(x, y).A
}

func renderMarker(t *testing.T, style cornersquare.Style, rotation float64) *image.RGBA {
	t.Helper()
	doc := svgdoc.New(70, 70)
	cornersquare.New(style, doc).Draw(0, 0, 70, rotation)
	img, err := RasterDocument(doc, 1)
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestRingHole(t *testing.T) {
	for _, style := range cornersquare.AvailableStyles {
		img := renderMarker(t, style, 0)
		if a := alphaAt(img, 35, 35); a != 0 {
			t.Errorf("%s: center should be transparent, got alpha %d", style, a)
		}
		if a := alphaAt(img, 34, 4); a != 0xff {
			t.Errorf("%s: top side should be filled, got alpha %d", style, a)
		}
		if a := alphaAt(img, 4, 34); a != 0xff {
			t.Errorf("%s: left side should be filled, got alpha %d", style, a)
		}
	}
}

func TestSquareCorners(t *testing.T) {
	img := renderMarker(t, cornersquare.Square, 0)
	for _, p := range [][2]int{{0, 0}, {69, 0}, {0, 69}, {69, 69}} {
		if a := alphaAt(img, p[0], p[1]); a != 0xff {
			t.Errorf("corner %v should be filled, got alpha %d", p, a)
		}
	}
	// hole spans [10, 60]
	if a := alphaAt(img, 11, 11); a != 0 {
		t.Errorf("hole corner should be transparent, got alpha %d", a)
	}
}

func TestRotationMovesSquareCorner(t *testing.T) {
	img := renderMarker(t, cornersquare.Style2, 0)
	if a := alphaAt(img, 1, 1); a != 0 {
		t.Errorf("top-left corner should be rounded, got alpha %d", a)
	}
	if a := alphaAt(img, 68, 68); a != 0xff {
		t.Errorf("bottom-right corner should be square, got alpha %d", a)
	}

	img = renderMarker(t, cornersquare.Style2, math.Pi)
	if a := alphaAt(img, 1, 1); a != 0xff {
		t.Errorf("rotated: top-left corner should be square, got alpha %d", a)
	}
	if a := alphaAt(img, 68, 68); a != 0 {
		t.Errorf("rotated: bottom-right corner should be rounded, got alpha %d", a)
	}
}

func TestFillRule(t *testing.T) {
	// both contours are drawn clockwise
	const d = "M 0 0 h 10 v 10 h -10 Z M 2 2 h 6 v 6 h -6 Z"
	for _, test := range []struct {
		rule string
		want uint8
	}{
		{"evenodd", 0},
		{"nonzero", 0xff},
	} {
		doc := svgdoc.New(10, 10)
		e := doc.AddPath()
		e.SetAttribute("d", d)
		e.SetAttribute("fill-rule", test.rule)
		img, err := RasterDocument(doc, 1)
		if err != nil {
			t.Fatal(err)
		}
		if a := alphaAt(img, 5, 5); a != test.want {
			t.Errorf("%s: expected alpha %d, got %d", test.rule, test.want, a)
		}
	}
}

func TestFillColor(t *testing.T) {
	doc := svgdoc.New(20, 10)
	doc.AddRect(0, 0, 10, 10, "#f00")
	doc.AddRect(10, 0, 10, 10, "none")
	img, err := RasterDocument(doc, 2)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if c := img.RGBAAt(10, 10); c != (color.RGBA{R: 0xff, A: 0xff}) {
		t.Errorf("expected red, got %v", c)
	}
	if a := alphaAt(img, 30, 10); a != 0 {
		t.Errorf("fill none should draw nothing, got alpha %d", a)
	}
}

func TestParseTransform(t *testing.T) {
	m, err := ParseTransform("rotate(90,35,35)")
	if err != nil {
		t.Fatal(err)
	}
	x, y := m.Transform(70, 0)
	if math.Abs(x-70) > 1e-9 || math.Abs(y-70) > 1e-9 {
		t.Errorf("expected (70,70), got (%v,%v)", x, y)
	}

	m, err = ParseTransform("translate(1,2) scale(2)")
	if err != nil {
		t.Fatal(err)
	}
	if x, y = m.Transform(1, 1); x != 3 || y != 4 {
		t.Errorf("expected (3,4), got (%v,%v)", x, y)
	}

	m, err = ParseTransform("")
	if err != nil || m != rasterx.Identity {
		t.Errorf("expected identity, got %v %v", m, err)
	}
}

func TestBadTransform(t *testing.T) {
	for _, v := range []string{
		"rotate(1,2)",
		"rotate(90",
		"spin(3)",
		"scale(a)",
		"matrix(1 0 0 1 0)",
	} {
		if _, err := ParseTransform(v); !errors.Is(err, ErrBadTransform) {
			t.Errorf("%s: expected ErrBadTransform, got %v", v, err)
		}
	}

	doc := svgdoc.New(10, 10)
	e := doc.AddRect(0, 0, 10, 10, "black")
	e.SetAttribute("transform", "rotate(")
	if _, err := RasterDocument(doc, 1); !errors.Is(err, ErrBadTransform) {
		t.Errorf("expected ErrBadTransform, got %v", err)
	}
}

func TestRasterSVGToImage(t *testing.T) {
	const input = `<svg width="8" height="8"><rect width="8" height="4" fill="blue"/></svg>`
	img, err := RasterSVGToImage(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if c := img.RGBAAt(2, 2); c != (color.RGBA{B: 0xff, A: 0xff}) {
		t.Errorf("expected blue, got %v", c)
	}
	if a := alphaAt(img, 2, 6); a != 0 {
		t.Errorf("expected transparent, got alpha %d", a)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
}
