package svgraster

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/phamquanglong/qr-styling/cornersquare"
	"github.com/phamquanglong/qr-styling/svgdoc"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/colornames"
)

// ErrBadTransform is returned for a malformed transform attribute.
var ErrBadTransform = errors.New("invalid transform")

func parseNumbers(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' || r == '\n' })
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func applyTransform(m rasterx.Matrix2D, k string, points []float64) (rasterx.Matrix2D, error) {
	ln := len(points)
	switch k {
	case "rotate":
		if ln == 1 {
			return m.Rotate(points[0] * math.Pi / 180), nil
		} else if ln == 3 {
			return m.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2]), nil
		}
	case "translate":
		if ln == 1 {
			return m.Translate(points[0], 0), nil
		} else if ln == 2 {
			return m.Translate(points[0], points[1]), nil
		}
	case "scale":
		if ln == 1 {
			return m.Scale(points[0], points[0]), nil
		} else if ln == 2 {
			return m.Scale(points[0], points[1]), nil
		}
	case "skewx":
		if ln == 1 {
			return m.SkewX(points[0] * math.Pi / 180), nil
		}
	case "skewy":
		if ln == 1 {
			return m.SkewY(points[0] * math.Pi / 180), nil
		}
	case "matrix":
		if ln == 6 {
			return m.Mult(rasterx.Matrix2D{
				A: points[0],
				B: points[1],
				C: points[2],
				D: points[3],
				E: points[4],
				F: points[5]}), nil
		}
	default:
		return m, fmt.Errorf("%w: unknown function %q", ErrBadTransform, k)
	}
	return m, fmt.Errorf("%w: %d arguments for %s", ErrBadTransform, ln, k)
}

// ParseTransform parses an SVG transform list, such as
// "rotate(90,35,35) translate(10)".
func ParseTransform(v string) (rasterx.Matrix2D, error) {
	m := rasterx.Identity
	ts := strings.Split(v, ")")
	for i, t := range ts {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		if i == len(ts)-1 { // missing closing parenthesis
			return m, fmt.Errorf("%w: %q", ErrBadTransform, v)
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m, fmt.Errorf("%w: %q", ErrBadTransform, v)
		}
		points, err := parseNumbers(d[1])
		if err != nil {
			return m, fmt.Errorf("%w: %s", ErrBadTransform, err)
		}
		name := strings.ToLower(strings.TrimSpace(strings.TrimLeft(d[0], ", ")))
		if m, err = applyTransform(m, name, points); err != nil {
			return m, err
		}
	}
	return m, nil
}

// parseColor returns nil for "none".
func parseColor(v string) (color.Color, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case v == "none":
		return nil, nil
	case strings.HasPrefix(v, "#"):
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return nil, fmt.Errorf("invalid color %q", v)
		}
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q", v)
		}
		return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		vals, err := parseNumbers(v[4 : len(v)-1])
		if err != nil || len(vals) != 3 {
			return nil, fmt.Errorf("invalid color %q", v)
		}
		var c [3]uint8
		for i, f := range vals {
			c[i] = uint8(math.Max(0, math.Min(255, f)))
		}
		return color.NRGBA{R: c[0], G: c[1], B: c[2], A: 0xff}, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("invalid color %q", v)
}

// Style is the fill state of a path element.
type Style struct {
	Fill              color.Color // nil when the element is not painted
	Opacity           float64
	UseNonZeroWinding bool
	Transform         rasterx.Matrix2D
}

// ReadStyle resolves the presentation attributes of `e`.
// Missing attributes default to an opaque black fill,
// with the non-zero rule and no transform.
func ReadStyle(e *svgdoc.Element) (Style, error) {
	style := Style{Fill: color.Black, Opacity: 1, Transform: rasterx.Identity}
	var err error
	if v, ok := e.Attribute("fill"); ok {
		if style.Fill, err = parseColor(v); err != nil {
			return style, err
		}
	}
	if v, ok := e.Attribute("fill-opacity"); ok {
		if style.Opacity, err = strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return style, fmt.Errorf("invalid fill-opacity: %w", err)
		}
	}
	if v, ok := e.Attribute(cornersquare.AttrTransform); ok {
		if style.Transform, err = ParseTransform(v); err != nil {
			return style, err
		}
	}
	rule, _ := e.Attribute(cornersquare.AttrFillRule)
	style.UseNonZeroWinding = rule != cornersquare.EvenOdd
	return style, nil
}
