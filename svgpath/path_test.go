package svgpath

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"golang.org/x/image/math/fixed"
)

func TestFormatNumber(t *testing.T) {
	for _, c := range []struct {
		f    float64
		want string
	}{
		{35, "35"},
		{0.1, "0.1"},
		{-17.5, "-17.5"},
		{math.Copysign(0, -1), "0"},
		{1e-7, "0.0000001"},
		{10.0 / 3, "3.3333333333333335"},
	} {
		if got := FormatNumber(c.f); got != c.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", c.f, got, c.want)
		}
	}
}

func TestToSVGPath(t *testing.T) {
	var p Path
	p.MoveTo(35, 0)
	p.ArcBy(35, true, false, 0.1, 0)
	p.Close()
	p.MoveBy(0, 10)
	p.HLineBy(-2)
	p.VLineBy(3)
	p.LineTo(1, 2)
	const want = "M 35 0 a 35 35 0 1 0 0.1 0 Z m 0 10 h -2 v 3 L 1 2"
	if got := p.ToSVGPath(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if p.String() != want {
		t.Fatal("String and ToSVGPath should agree")
	}
	p.Clear()
	if len(p) != 0 {
		t.Fatal("Clear should empty the path")
	}
}

func TestParse(t *testing.T) {
	for _, d := range []string{
		"M 35 0 a 35 35 0 1 0 0.1 0 Z m 0 10 a 25 25 0 1 1 -0.1 0 Z",
		"M 10 20 v 35 h 35 v -35 Z M 15 25 h 25 v 25 h -25 Z",
		"M 0 25 L 0 0 L 25 0 h 20 a 25 25 0 0 1 25 25 Z",
		"M 0 0 C 0 10 10 10 10 0 S 20 -10 20 0 q 5 10 10 0 t 10 0 Z",
	} {
		p, err := Parse(d)
		if err != nil {
			t.Fatalf("parsing %q: %s", d, err)
		}
		if got := p.ToSVGPath(); got != d {
			t.Errorf("expected %q, got %q", d, got)
		}
	}
}

func TestParseCompact(t *testing.T) {
	p, err := Parse("M1,2L3-4,5.5.5h-1e1z")
	if err != nil {
		t.Fatal(err)
	}
	want := Path{
		MoveTo{X: 1, Y: 2},
		LineTo{X: 3, Y: -4},
		LineTo{X: 5.5, Y: 0.5},
		HLineTo{X: -10, Rel: true},
		Close{},
	}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("expected %v, got %v", want, p)
	}

	p, err = Parse("m 1 1 2 2")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p[1].(LineTo); !ok || !p[1].(LineTo).Rel {
		t.Fatalf("implicit relative line expected, got %#v", p[1])
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("M 0 0 B 1 1"); !errors.Is(err, ErrUnsupportedCommand) {
		t.Errorf("expected unsupported command, got %v", err)
	}
	if _, err := Parse("M 0 0 L 1"); !errors.Is(err, ErrParamMismatch) {
		t.Errorf("expected param mismatch, got %v", err)
	}
	if _, err := Parse("M 0 0 C 1 1 2 2 3"); !errors.Is(err, ErrParamMismatch) {
		t.Errorf("expected param mismatch, got %v", err)
	}
	if _, err := Parse("M 0 0 Z 1"); !errors.Is(err, ErrParamMismatch) {
		t.Errorf("expected param mismatch, got %v", err)
	}
	if _, err := Parse("1 2 M 0 0"); err == nil {
		t.Error("expected error for data before the first command")
	}
	if _, err := Parse("M 0 x"); err == nil {
		t.Error("expected error for invalid number")
	}
}

func TestAbsolute(t *testing.T) {
	var p Path
	p.MoveTo(10, 20)
	p.VLineBy(35)
	p.HLineBy(35)
	p.Close()
	p.MoveBy(5, 5)
	p.ArcBy(1, false, true, 2, 2)
	want := Path{
		MoveTo{X: 10, Y: 20},
		VLineTo{Y: 55},
		HLineTo{X: 45},
		Close{},
		MoveTo{X: 15, Y: 25},
		ArcTo{RX: 1, RY: 1, Sweep: true, X: 17, Y: 27},
	}
	if got := p.Absolute(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

// recorder keeps the points sent by AddTo
type recorder struct {
	starts, stops int
	closed        int
	last          fixed.Point26_6
	cubics, quads int
	ctrls         []fixed.Point26_6 // first control point of each curve
}

func (r *recorder) Start(a fixed.Point26_6)         { r.starts++; r.last = a }
func (r *recorder) Line(b fixed.Point26_6)          { r.last = b }
func (r *recorder) QuadBezier(b, c fixed.Point26_6) {
	r.quads++
	r.ctrls = append(r.ctrls, b)
	r.last = c
}
func (r *recorder) CubeBezier(b, c, d fixed.Point26_6) {
	r.cubics++
	r.ctrls = append(r.ctrls, b)
	r.last = d
}
func (r *recorder) Stop(closeLoop bool) {
	r.stops++
	if closeLoop {
		r.closed++
	}
}

func TestAddToArcEndPoint(t *testing.T) {
	var p Path
	p.MoveTo(0, 25)
	p.ArcBy(25, false, false, 25, 25)
	var r recorder
	p.AddTo(&r)
	if r.last != toFixedP(25, 50) {
		t.Fatalf("arc should end exactly on its end point, got %v", r.last)
	}
	if r.cubics < 4 || r.cubics > 5 { // a quarter circle spans pi/2, split in pi/8 segments
		t.Fatalf("expected 4 or 5 cubic segments, got %d", r.cubics)
	}
	if r.starts != 1 || r.stops != 1 || r.closed != 0 {
		t.Fatalf("unexpected start/stop calls %+v", r)
	}
}

func TestAddToDegenerateArc(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.ArcBy(0, false, false, 5, 5) // zero radius is a line
	p.ArcBy(3, false, false, 0, 0) // same end point is omitted
	p.Close()
	var r recorder
	p.AddTo(&r)
	if r.cubics != 0 || r.last != toFixedP(5, 5) || r.closed != 1 {
		t.Fatalf("unexpected output %+v", r)
	}
}

func TestParseCurvesAbsolute(t *testing.T) {
	p, err := Parse("m 1 1 c 0 10 10 10 10 0 s 10 -10 10 0 Q 5 5 6 6 t 1 1")
	if err != nil {
		t.Fatal(err)
	}
	want := Path{
		MoveTo{X: 1, Y: 1},
		CubicTo{X1: 1, Y1: 11, X2: 11, Y2: 11, X: 11, Y: 1},
		SmoothCubicTo{X2: 21, Y2: -9, X: 21, Y: 1},
		QuadTo{X1: 5, Y1: 5, X: 6, Y: 6},
		SmoothQuadTo{X: 7, Y: 7},
	}
	if got := p.Absolute(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAddToSmoothCurves(t *testing.T) {
	for _, c := range []struct {
		d     string
		ctrls []fixed.Point26_6
	}{
		// reflection of the previous second control point
		{"M 0 0 C 0 10 10 10 10 0 S 20 -10 20 0", []fixed.Point26_6{toFixedP(0, 10), toFixedP(10, -10)}},
		{"M 0 0 c 0 10 10 10 10 0 s 10 -10 10 0", []fixed.Point26_6{toFixedP(0, 10), toFixedP(10, -10)}},
		// no previous curve: the current point is used
		{"M 0 0 L 5 0 S 10 10 10 0", []fixed.Point26_6{toFixedP(5, 0)}},
		{"M 0 0 Q 5 10 10 0 T 20 0 T 30 0", []fixed.Point26_6{toFixedP(5, 10), toFixedP(15, -10), toFixedP(25, 10)}},
		// a cubic does not carry over to a quadratic
		{"M 0 0 C 0 10 10 10 10 0 T 20 0", []fixed.Point26_6{toFixedP(0, 10), toFixedP(10, 0)}},
	} {
		p, err := Parse(c.d)
		if err != nil {
			t.Fatal(err)
		}
		var r recorder
		p.AddTo(&r)
		if !reflect.DeepEqual(r.ctrls, c.ctrls) {
			t.Errorf("%s: expected control points %v, got %v", c.d, c.ctrls, r.ctrls)
		}
		if r.cubics+r.quads != len(c.ctrls) {
			t.Errorf("%s: unexpected curve count %+v", c.d, r)
		}
	}
}

func TestBounds(t *testing.T) {
	const tol = 2. / 64
	checkRect := func(name string, got, want Rect) {
		t.Helper()
		if math.Abs(got.MinX-want.MinX) > tol || math.Abs(got.MinY-want.MinY) > tol ||
			math.Abs(got.MaxX-want.MaxX) > tol || math.Abs(got.MaxY-want.MaxY) > tol {
			t.Errorf("%s: expected %v, got %v", name, want, got)
		}
	}

	var circle Path
	circle.MoveTo(35, 0)
	circle.ArcBy(35, true, false, 0.1, 0)
	circle.Close()
	// the arc end is shifted by 0.1, so is the center
	checkRect("circle", circle.Bounds(), Rect{0.05, 0, 70.05, 70})

	var square Path
	square.MoveTo(10, 20)
	square.VLineBy(35)
	square.HLineBy(35)
	square.VLineBy(-35)
	square.Close()
	checkRect("square", square.Bounds(), Rect{10, 20, 45, 55})

	var hump Path
	hump.MoveTo(0, 0)
	hump.CubeTo(0, 10, 10, 10, 10, 0)
	checkRect("cubic", hump.Bounds(), Rect{0, 0, 10, 7.5})

	var bell Path
	bell.MoveTo(0, 0)
	bell.QuadTo(5, -10, 10, 0)
	checkRect("quadratic", bell.Bounds(), Rect{0, -5, 10, 0})

	if b := (Path{}).Bounds(); !math.IsInf(b.MinX, 1) || !b.IsEmpty() {
		t.Errorf("empty path should have an empty box, got %v", b)
	}
}
