// Implements an abstract representation of
// svg path data, which can be serialized to a `d` attribute
// or consumed by painting drivers.
package svgpath

import (
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Adder interface for types that can accumulate path commands,
// such as rasterx.Filler.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

// Operation groups the different SVG commands
type Operation interface {
	// command returns the path data letter, lower case for relative commands
	command() byte
	args() []float64
}

// MoveTo starts a new subpath.
type MoveTo struct {
	X, Y float64
	Rel  bool
}

// LineTo draws a straight line.
type LineTo struct {
	X, Y float64
	Rel  bool
}

// HLineTo draws an horizontal line.
type HLineTo struct {
	X   float64
	Rel bool
}

// VLineTo draws a vertical line.
type VLineTo struct {
	Y   float64
	Rel bool
}

// ArcTo draws an elliptical arc, with the SVG endpoint parametrization.
type ArcTo struct {
	RX, RY    float64
	XRotation float64 // in degrees
	LargeArc  bool
	Sweep     bool
	X, Y      float64
	Rel       bool
}

// CubicTo draws a cubic Bézier curve.
type CubicTo struct {
	X1, Y1, X2, Y2 float64 // control points
	X, Y           float64
	Rel            bool
}

// SmoothCubicTo draws a cubic Bézier curve whose first control point
// is the reflection of the previous curve second control point.
type SmoothCubicTo struct {
	X2, Y2 float64
	X, Y   float64
	Rel    bool
}

// QuadTo draws a quadratic Bézier curve.
type QuadTo struct {
	X1, Y1 float64 // control point
	X, Y   float64
	Rel    bool
}

// SmoothQuadTo draws a quadratic Bézier curve whose control point
// is the reflection of the previous one.
type SmoothQuadTo struct {
	X, Y float64
	Rel  bool
}

// Close joins the current point to the start of the subpath.
type Close struct{}

func letter(abs byte, rel bool) byte {
	if rel {
		return abs + 'a' - 'A'
	}
	return abs
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func (op MoveTo) command() byte  { return letter('M', op.Rel) }
func (op LineTo) command() byte  { return letter('L', op.Rel) }
func (op HLineTo) command() byte { return letter('H', op.Rel) }
func (op VLineTo) command() byte { return letter('V', op.Rel) }
func (op ArcTo) command() byte   { return letter('A', op.Rel) }
func (op CubicTo) command() byte { return letter('C', op.Rel) }
func (op QuadTo) command() byte  { return letter('Q', op.Rel) }
func (Close) command() byte      { return 'Z' }

func (op SmoothCubicTo) command() byte { return letter('S', op.Rel) }
func (op SmoothQuadTo) command() byte  { return letter('T', op.Rel) }

func (op MoveTo) args() []float64  { return []float64{op.X, op.Y} }
func (op LineTo) args() []float64  { return []float64{op.X, op.Y} }
func (op HLineTo) args() []float64 { return []float64{op.X} }
func (op VLineTo) args() []float64 { return []float64{op.Y} }
func (op ArcTo) args() []float64 {
	return []float64{op.RX, op.RY, op.XRotation, flag(op.LargeArc), flag(op.Sweep), op.X, op.Y}
}
func (op CubicTo) args() []float64 {
	return []float64{op.X1, op.Y1, op.X2, op.Y2, op.X, op.Y}
}
func (op SmoothCubicTo) args() []float64 { return []float64{op.X2, op.Y2, op.X, op.Y} }
func (op QuadTo) args() []float64        { return []float64{op.X1, op.Y1, op.X, op.Y} }
func (op SmoothQuadTo) args() []float64  { return []float64{op.X, op.Y} }
func (Close) args() []float64            { return nil }

// Path describes a sequence of basic SVG operations.
// Higher-level shapes may be reduced to a path.
type Path []Operation

// FormatNumber writes `f` with the shortest decimal representation
// which parses back to `f`. Negative zero is written as 0.
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToSVGPath returns a string representation of the path,
// suitable for the `d` attribute.
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		var b strings.Builder
		b.WriteByte(op.command())
		for _, a := range op.args() {
			b.WriteByte(' ')
			b.WriteString(FormatNumber(a))
		}
		chunks[i] = b.String()
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// MoveTo starts a new subpath at the absolute point (x, y).
func (p *Path) MoveTo(x, y float64) {
	*p = append(*p, MoveTo{X: x, Y: y})
}

// MoveBy starts a new subpath, relative to the current point.
func (p *Path) MoveBy(dx, dy float64) {
	*p = append(*p, MoveTo{X: dx, Y: dy, Rel: true})
}

// LineTo adds a line to the absolute point (x, y).
func (p *Path) LineTo(x, y float64) {
	*p = append(*p, LineTo{X: x, Y: y})
}

// HLineBy adds an horizontal line of length dx.
func (p *Path) HLineBy(dx float64) {
	*p = append(*p, HLineTo{X: dx, Rel: true})
}

// VLineBy adds a vertical line of length dy.
func (p *Path) VLineBy(dy float64) {
	*p = append(*p, VLineTo{Y: dy, Rel: true})
}

// ArcBy adds a circular arc of radius r ending at the current point
// translated by (dx, dy).
func (p *Path) ArcBy(r float64, largeArc, sweep bool, dx, dy float64) {
	*p = append(*p, ArcTo{RX: r, RY: r, LargeArc: largeArc, Sweep: sweep, X: dx, Y: dy, Rel: true})
}

// CubeTo adds a cubic Bézier curve, in absolute coordinates.
func (p *Path) CubeTo(x1, y1, x2, y2, x, y float64) {
	*p = append(*p, CubicTo{X1: x1, Y1: y1, X2: x2, Y2: y2, X: x, Y: y})
}

// QuadTo adds a quadratic Bézier curve, in absolute coordinates.
func (p *Path) QuadTo(x1, y1, x, y float64) {
	*p = append(*p, QuadTo{X1: x1, Y1: y1, X: x, Y: y})
}

// Close closes the current subpath.
func (p *Path) Close() {
	*p = append(*p, Close{})
}

// Absolute returns an equivalent path where every operation
// uses absolute coordinates.
func (p Path) Absolute() Path {
	out := make(Path, 0, len(p))
	var px, py, sx, sy float64 // current point and subpath start
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			if op.Rel {
				op.X, op.Y, op.Rel = px+op.X, py+op.Y, false
			}
			px, py, sx, sy = op.X, op.Y, op.X, op.Y
			out = append(out, op)
		case LineTo:
			if op.Rel {
				op.X, op.Y, op.Rel = px+op.X, py+op.Y, false
			}
			px, py = op.X, op.Y
			out = append(out, op)
		case HLineTo:
			if op.Rel {
				op.X, op.Rel = px+op.X, false
			}
			px = op.X
			out = append(out, op)
		case VLineTo:
			if op.Rel {
				op.Y, op.Rel = py+op.Y, false
			}
			py = op.Y
			out = append(out, op)
		case ArcTo:
			if op.Rel {
				op.X, op.Y, op.Rel = px+op.X, py+op.Y, false
			}
			px, py = op.X, op.Y
			out = append(out, op)
		case CubicTo:
			if op.Rel {
				op.X1, op.Y1, op.X2, op.Y2 = px+op.X1, py+op.Y1, px+op.X2, py+op.Y2
				op.X, op.Y, op.Rel = px+op.X, py+op.Y, false
			}
			px, py = op.X, op.Y
			out = append(out, op)
		case SmoothCubicTo:
			if op.Rel {
				op.X2, op.Y2 = px+op.X2, py+op.Y2
				op.X, op.Y, op.Rel = px+op.X, py+op.Y, false
			}
			px, py = op.X, op.Y
			out = append(out, op)
		case QuadTo:
			if op.Rel {
				op.X1, op.Y1 = px+op.X1, py+op.Y1
				op.X, op.Y, op.Rel = px+op.X, py+op.Y, false
			}
			px, py = op.X, op.Y
			out = append(out, op)
		case SmoothQuadTo:
			if op.Rel {
				op.X, op.Y, op.Rel = px+op.X, py+op.Y, false
			}
			px, py = op.X, op.Y
			out = append(out, op)
		case Close:
			px, py = sx, sy
			out = append(out, op)
		}
	}
	return out
}

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// AddTo adds the Path p to q, approximating arcs
// with cubic bezier curves.
func (p Path) AddTo(q Adder) {
	var px, py, sx, sy float64
	// last control point of a cubic (resp. quadratic) curve,
	// valid only right after such a curve
	var cx, cy float64
	lastCubic, lastQuad := false, false
	inPath := false
	for _, op := range p.Absolute() {
		if _, isMove := op.(MoveTo); !isMove && !inPath {
			q.Start(toFixedP(px, py)) // drawing right after a close
			sx, sy, inPath = px, py, true
		}
		wasCubic, wasQuad := lastCubic, lastQuad
		lastCubic, lastQuad = false, false
		switch op := op.(type) {
		case MoveTo:
			if inPath {
				q.Stop(false) // implicit close if currently in path.
			}
			q.Start(toFixedP(op.X, op.Y))
			px, py, sx, sy = op.X, op.Y, op.X, op.Y
			inPath = true
		case LineTo:
			q.Line(toFixedP(op.X, op.Y))
			px, py = op.X, op.Y
		case HLineTo:
			q.Line(toFixedP(op.X, py))
			px = op.X
		case VLineTo:
			q.Line(toFixedP(px, op.Y))
			py = op.Y
		case ArcTo:
			px, py = addArc(q, op, px, py)
		case CubicTo:
			q.CubeBezier(toFixedP(op.X1, op.Y1), toFixedP(op.X2, op.Y2), toFixedP(op.X, op.Y))
			cx, cy, px, py, lastCubic = op.X2, op.Y2, op.X, op.Y, true
		case SmoothCubicTo:
			x1, y1 := px, py
			if wasCubic {
				x1, y1 = 2*px-cx, 2*py-cy
			}
			q.CubeBezier(toFixedP(x1, y1), toFixedP(op.X2, op.Y2), toFixedP(op.X, op.Y))
			cx, cy, px, py, lastCubic = op.X2, op.Y2, op.X, op.Y, true
		case QuadTo:
			q.QuadBezier(toFixedP(op.X1, op.Y1), toFixedP(op.X, op.Y))
			cx, cy, px, py, lastQuad = op.X1, op.Y1, op.X, op.Y, true
		case SmoothQuadTo:
			x1, y1 := px, py
			if wasQuad {
				x1, y1 = 2*px-cx, 2*py-cy
			}
			q.QuadBezier(toFixedP(x1, y1), toFixedP(op.X, op.Y))
			cx, cy, px, py, lastQuad = x1, y1, op.X, op.Y, true
		case Close:
			q.Stop(true)
			px, py = sx, sy
			inPath = false
		}
	}
	if inPath {
		q.Stop(false)
	}
}
