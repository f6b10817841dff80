package main

import (
	"math"

	"github.com/phamquanglong/qr-styling/cornersquare"
	"github.com/phamquanglong/qr-styling/svgdoc"
	"github.com/phamquanglong/qr-styling/svgpath"
	"rsc.io/qr"
)

// finderModules is the side of a locator pattern, in modules.
const finderModules = 7

// finder is a locator pattern, in module coordinates.
type finder struct {
	X, Y     int
	Rotation float64 // radians
}

// finders returns the three locator patterns of a code of
// side `n`, rotated so that their asymmetric corners point
// toward the center of the code.
func finders(n int) [3]finder {
	return [3]finder{
		{X: 0, Y: 0, Rotation: 0},
		{X: n - finderModules, Y: 0, Rotation: math.Pi / 2},
		{X: 0, Y: n - finderModules, Rotation: -math.Pi / 2},
	}
}

func inFinder(n, x, y int) bool {
	for _, f := range finders(n) {
		if x >= f.X && x < f.X+finderModules && y >= f.Y && y < f.Y+finderModules {
			return true
		}
	}
	return false
}

// layout draws a code, with modules of side `module`
// and a quiet zone of `margin` modules.
type layout struct {
	style  cornersquare.Style
	module float64
	margin int
}

func (l layout) document(code *qr.Code) *svgdoc.Document {
	n := code.Size
	side := float64(n+2*l.margin) * l.module
	doc := svgdoc.New(side, side)
	doc.AddRect(0, 0, side, side, "#ffffff")

	origin := float64(l.margin) * l.module
	var data svgpath.Path
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !code.Black(x, y) || inFinder(n, x, y) {
				continue
			}
			data.MoveTo(origin+float64(x)*l.module, origin+float64(y)*l.module)
			data.HLineBy(l.module)
			data.VLineBy(l.module)
			data.HLineBy(-l.module)
			data.Close()
		}
	}
	modules := doc.AddPath()
	modules.SetAttribute(cornersquare.AttrD, data.ToSVGPath())
	modules.SetAttribute("fill", "#000000")

	markers := cornersquare.New(l.style, doc)
	for _, f := range finders(n) {
		x, y := origin+float64(f.X)*l.module, origin+float64(f.Y)*l.module
		markers.Draw(x, y, finderModules*l.module, f.Rotation)
		// 3x3 center
		doc.AddRect(x+2*l.module, y+2*l.module, 3*l.module, 3*l.module, "#000000")
	}
	return doc
}
