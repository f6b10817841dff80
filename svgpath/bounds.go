package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Rect is a bounding box in user units.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// IsEmpty returns true if no point was added to the box.
func (r Rect) IsEmpty() bool { return r.MinX > r.MaxX || r.MinY > r.MaxY }

// Union returns the smallest box containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX), MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX), MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// EmptyRect returns a box with inverted infinite coordinates,
// neutral for Union.
func EmptyRect() Rect {
	return Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

func (r *Rect) add(x, y float64) {
	r.MinX = math.Min(x, r.MinX)
	r.MinY = math.Min(y, r.MinY)
	r.MaxX = math.Max(x, r.MaxX)
	r.MaxY = math.Max(y, r.MaxY)
}

// bernstein evaluates at t the Bézier curve with control values ctrl,
// using de Casteljau's algorithm. len(ctrl) is at most 4.
func bernstein(ctrl []float64, t float64) float64 {
	var tmp [4]float64
	n := copy(tmp[:], ctrl)
	for ; n > 1; n-- {
		for i := 0; i < n-1; i++ {
			tmp[i] += t * (tmp[i+1] - tmp[i])
		}
	}
	return tmp[0]
}

// extrema returns the parameters in (0, 1) where the derivative
// of the 1D Bézier curve `ctrl` vanishes.
func extrema(ctrl []float64) []float64 {
	var ts []float64
	keep := func(t float64) {
		if 0 < t && t < 1 {
			ts = append(ts, t)
		}
	}
	switch len(ctrl) {
	case 3: // derivative is linear
		d0, d1 := ctrl[1]-ctrl[0], ctrl[2]-ctrl[1]
		if d0 != d1 {
			keep(d0 / (d0 - d1))
		}
	case 4: // derivative is a quadratic Bézier with values d0, d1, d2
		d0, d1, d2 := ctrl[1]-ctrl[0], ctrl[2]-ctrl[1], ctrl[3]-ctrl[2]
		a, b, c := d0-2*d1+d2, 2*(d1-d0), d0
		if a == 0 {
			if b != 0 {
				keep(-c / b)
			}
			break
		}
		disc := b*b - 4*a*c
		if disc < 0 {
			break
		}
		sq := math.Sqrt(disc)
		keep((-b + sq) / (2 * a))
		keep((-b - sq) / (2 * a))
	}
	return ts
}

// addCurve extends r with the Bézier segment whose control points are pts.
// The first point is supposed to be already in r.
func (r *Rect) addCurve(pts ...fixed.Point26_6) {
	var xs, ys [4]float64
	for i, p := range pts {
		xs[i], ys[i] = float64(p.X)/64, float64(p.Y)/64
	}
	n := len(pts)
	last := pts[n-1]
	r.add(float64(last.X)/64, float64(last.Y)/64)
	for _, ctrl := range [2][]float64{xs[:n], ys[:n]} {
		for _, t := range extrema(ctrl) {
			r.add(bernstein(xs[:n], t), bernstein(ys[:n], t))
		}
	}
}

// boundsAdder implements Adder, accumulating the extent of
// the segments it receives.
type boundsAdder struct {
	a   fixed.Point26_6 // current point
	box Rect
}

func (b *boundsAdder) Start(a fixed.Point26_6) {
	b.a = a
	b.box.add(float64(a.X)/64, float64(a.Y)/64)
}

func (b *boundsAdder) Line(p fixed.Point26_6) {
	b.box.addCurve(b.a, p)
	b.a = p
}

func (b *boundsAdder) QuadBezier(p, c fixed.Point26_6) {
	b.box.addCurve(b.a, p, c)
	b.a = c
}

func (b *boundsAdder) CubeBezier(p, c, d fixed.Point26_6) {
	b.box.addCurve(b.a, p, c, d)
	b.a = d
}

// the closing segment ends on a point already added
func (b *boundsAdder) Stop(bool) {}

// Bounds returns the bounding box of the path, once
// arcs are approximated by cubic curves. An empty path
// returns EmptyRect().
func (p Path) Bounds() Rect {
	b := boundsAdder{box: EmptyRect()}
	p.AddTo(&b)
	return b.box
}
