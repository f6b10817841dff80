package cornersquare

import (
	"github.com/phamquanglong/qr-styling/svgpath"
)

// modules is the number of QR modules spanned by a marker side.
const modules = 7

// Ring of thickness size/7. The circles are drawn as arcs ending
// 0.1 unit away from their start, since an arc cannot join its own start.
func dotGeometry(x, y, size float64) svgpath.Path {
	dotSize := size / modules
	var p svgpath.Path
	p.MoveTo(x+size/2, y)
	p.ArcBy(size/2, true, false, 0.1, 0)
	p.Close()
	p.MoveBy(0, dotSize)
	p.ArcBy(size/2-dotSize, true, true, -0.1, 0)
	p.Close()
	return p
}

func squareGeometry(x, y, size float64) svgpath.Path {
	dotSize := size / modules
	inner := size - 2*dotSize
	var p svgpath.Path
	p.MoveTo(x, y)
	p.VLineBy(size)
	p.HLineBy(size)
	p.VLineBy(-size)
	p.Close()
	p.MoveTo(x+dotSize, y+dotSize)
	p.HLineBy(inner)
	p.VLineBy(inner)
	p.HLineBy(-inner)
	p.Close()
	return p
}

func extraRoundedGeometry(x, y, size float64) svgpath.Path {
	dotSize := size / modules
	r, l := 2.5*dotSize, 2*dotSize
	var p svgpath.Path
	p.MoveTo(x, y+r)
	p.VLineBy(l)
	p.ArcBy(r, false, false, r, r)
	p.HLineBy(l)
	p.ArcBy(r, false, false, r, -r)
	p.VLineBy(-l)
	p.ArcBy(r, false, false, -r, -r)
	p.HLineBy(-l)
	p.ArcBy(r, false, false, -r, r)
	p.Close()
	innerRoundedSquare(&p, x, y, dotSize)
	return p
}

// innerRoundedSquare adds the 5x5 modules hole, inset by one module,
// with corners of radius 1.5 modules, drawn clockwise.
func innerRoundedSquare(p *svgpath.Path, x, y, dotSize float64) {
	r, l := 1.5*dotSize, 2*dotSize
	p.MoveTo(x+dotSize+r, y+dotSize)
	p.HLineBy(l)
	p.ArcBy(r, false, true, r, r)
	p.VLineBy(l)
	p.ArcBy(r, false, true, -r, r)
	p.HLineBy(-l)
	p.ArcBy(r, false, true, -r, -r)
	p.VLineBy(-l)
	p.ArcBy(r, false, true, r, -r)
	p.Close()
}

// leafFrame adds the outer contour shared by style_2 and style_4:
// top-left, top-right and bottom-left corners are rounded with radius r,
// the bottom-right corner is a right angle.
func leafFrame(p *svgpath.Path, x, y, size, r float64) {
	l := size - 2*r
	p.MoveTo(x, y+r)
	p.VLineBy(l)
	p.ArcBy(r, false, false, r, r)
	p.HLineBy(l)
	p.LineTo(x+size, y+size)
	p.LineTo(x+size, y+r)
	p.ArcBy(r, false, false, -r, -r)
	p.HLineBy(-l)
	p.ArcBy(r, false, false, -r, r)
	p.Close()
}

func style2Geometry(x, y, size float64) svgpath.Path {
	dotSize := size / modules
	var p svgpath.Path
	leafFrame(&p, x, y, size, 2.5*dotSize)
	innerRoundedSquare(&p, x, y, dotSize)
	return p
}

// Only the top-right and bottom-left corners are rounded.
func style3Geometry(x, y, size float64) svgpath.Path {
	dotSize := size / modules
	r := 2.5 * dotSize
	l := size - 2*r
	var p svgpath.Path
	p.MoveTo(x, y+r)
	p.LineTo(x, y)
	p.LineTo(x+r, y)
	p.HLineBy(l)
	p.ArcBy(r, false, true, r, r)
	p.VLineBy(l)
	p.LineTo(x+size, y+size)
	p.LineTo(x+size-r, y+size)
	p.HLineBy(-l)
	p.ArcBy(r, false, true, -r, -r)
	p.Close()
	innerRoundedSquare(&p, x, y, dotSize)
	return p
}

// style4Geometry uses a circular hole of radius 2.5 modules.
func style4Geometry(x, y, size float64) svgpath.Path {
	dotSize := size / modules
	rc := 2.5 * dotSize
	cx, cy := x+size/2, y+size/2
	var p svgpath.Path
	leafFrame(&p, x, y, size, 2.5*dotSize)
	p.MoveTo(cx, cy-rc)
	p.ArcBy(rc, false, false, 0, 2*rc)
	p.ArcBy(rc, false, false, 0, -2*rc)
	p.Close()
	return p
}
