package cornersquare

import (
	"math"

	"github.com/phamquanglong/qr-styling/svgpath"
)

// Rotation is an SVG rotate transform around (CX, CY).
type Rotation struct {
	Degrees float64
	CX, CY  float64
}

func (r Rotation) String() string {
	return "rotate(" + svgpath.FormatNumber(r.Degrees) + "," +
		svgpath.FormatNumber(r.CX) + "," + svgpath.FormatNumber(r.CY) + ")"
}

// RotationFor returns the transform applied to a marker: `rotation` radians
// converted to degrees, around the center of the bounding square.
// The angle is not reduced modulo 360.
func RotationFor(x, y, size, rotation float64) Rotation {
	return Rotation{
		Degrees: 180 * rotation / math.Pi,
		CX:      x + size/2,
		CY:      y + size/2,
	}
}

// rotate always sets the transform, even for a zero angle.
func rotate(node Node, x, y, size, rotation float64) Node {
	node.SetAttribute(AttrTransform, RotationFor(x, y, size, rotation).String())
	return node
}
