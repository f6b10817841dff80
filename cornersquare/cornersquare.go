// Package cornersquare draws the three locator markers
// ("corner squares") of a styled QR code as SVG paths.
//
// A marker spans 7x7 modules; every style is expressed in multiples
// of the module size and filled with the even-odd rule, so that
// an inner contour punches a hole in the outer one.
// Rendering surfaces are abstracted by NodeFactory.
package cornersquare

import (
	"github.com/phamquanglong/qr-styling/svgpath"
)

// Attribute names and values set on the nodes.
const (
	AttrD         = "d"
	AttrFillRule  = "fill-rule"
	AttrClipRule  = "clip-rule"
	AttrTransform = "transform"

	EvenOdd = "evenodd"
)

// Node is a vector path element of a rendering surface.
type Node interface {
	SetAttribute(name, value string)
}

// NodeFactory creates path elements. It is typically
// backed by an SVG document.
type NodeFactory interface {
	CreatePathNode() Node
}

// Geometry computes the outline of a marker whose
// bounding square has its top-left corner at (x, y).
type Geometry func(x, y, size float64) svgpath.Path

// fallbackStyle is used for any style missing from geometries.
const fallbackStyle = Dot

var geometries = map[Style]Geometry{
	Dot:          dotGeometry,
	Square:       squareGeometry,
	ExtraRounded: extraRoundedGeometry,
	Style2:       style2Geometry,
	Style3:       style3Geometry,
	Style4:       style4Geometry,
}

// Resolve returns the style actually drawn for `style`:
// itself when supported, Dot otherwise.
func Resolve(style Style) Style {
	if _, ok := geometries[style]; ok {
		return style
	}
	return fallbackStyle
}

// GeometryOf returns the geometry used to draw `style`.
func GeometryOf(style Style) Geometry {
	return geometries[Resolve(style)]
}

// CornerSquare draws markers of one style on one rendering surface.
// It holds no mutable state.
type CornerSquare struct {
	factory  NodeFactory
	style    Style
	geometry Geometry
}

// New returns a drawer for `style`. Unknown styles are
// silently drawn as Dot.
func New(style Style, factory NodeFactory) *CornerSquare {
	resolved := Resolve(style)
	if resolved != style {
		Logger().Debug("unknown corner square style", "style", string(style), "fallback", string(resolved))
	}
	return &CornerSquare{factory: factory, style: resolved, geometry: geometries[resolved]}
}

// Style returns the style drawn, after fallback.
func (c *CornerSquare) Style() Style { return c.style }

// Draw creates a new node for a marker with top-left corner (x, y),
// side `size`, rotated by `rotation` radians (clockwise) around
// the center of its bounding square.
func (c *CornerSquare) Draw(x, y, size, rotation float64) Node {
	path := c.geometry(x, y, size)
	node := c.factory.CreatePathNode()
	node.SetAttribute(AttrClipRule, EvenOdd)
	node.SetAttribute(AttrFillRule, EvenOdd)
	node.SetAttribute(AttrD, path.ToSVGPath())
	return rotate(node, x, y, size, rotation)
}
