// Package svgdoc implements an in-memory SVG document,
// used as rendering surface for the corner squares.
// Documents are written with github.com/ajstarks/svgo and
// may be read back from SVG files.
//
// A Document is not safe for concurrent use.
package svgdoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/phamquanglong/qr-styling/cornersquare"
	"github.com/phamquanglong/qr-styling/svgpath"
)

var _ cornersquare.NodeFactory = (*Document)(nil) // assert interface conformance

// Attr is an SVG attribute.
type Attr struct {
	Name, Value string
}

// Element is a <path> element, stored as its list of attributes.
type Element struct {
	Attrs []Attr
}

// SetAttribute adds or replaces the attribute `name`,
// preserving the order of the existing attributes.
func (e *Element) SetAttribute(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// Attribute returns the value of the attribute `name`.
func (e *Element) Attribute(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Document is a flat list of paths, drawn in order.
type Document struct {
	Width, Height float64
	Title         string
	Elements      []*Element
}

// New returns an empty document.
func New(width, height float64) *Document {
	return &Document{Width: width, Height: height}
}

// CreatePathNode appends a new, empty path to the document.
func (d *Document) CreatePathNode() cornersquare.Node {
	return d.AddPath()
}

// AddPath appends a new, empty path to the document.
func (d *Document) AddPath() *Element {
	e := new(Element)
	d.Elements = append(d.Elements, e)
	return e
}

// AddRect appends a filled rectangle, as a path.
func (d *Document) AddRect(x, y, w, h float64, fill string) *Element {
	var p svgpath.Path
	p.MoveTo(x, y)
	p.HLineBy(w)
	p.VLineBy(h)
	p.HLineBy(-w)
	p.Close()
	e := d.AddPath()
	e.SetAttribute(cornersquare.AttrD, p.ToSVGPath())
	e.SetAttribute("fill", fill)
	return e
}

// Bounds returns the union of the extents of the paths, in
// the document user space. Transforms are not applied and
// invalid path data is ignored.
func (d *Document) Bounds() svgpath.Rect {
	box := svgpath.EmptyRect()
	for _, e := range d.Elements {
		data, _ := e.Attribute(cornersquare.AttrD)
		p, err := svgpath.Parse(data)
		if err != nil {
			continue
		}
		box = box.Union(p.Bounds())
	}
	return box
}

// countingWriter tracks the bytes written and the first error,
// since svgo ignores write errors
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(b []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(b)
	c.n += int64(n)
	c.err = err
	return n, err
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// WriteTo writes the document as a standalone SVG file.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	canvas := svg.New(cw)
	width, height := svgpath.FormatNumber(d.Width), svgpath.FormatNumber(d.Height)
	canvas.Startraw(
		fmt.Sprintf(`width="%s"`, width),
		fmt.Sprintf(`height="%s"`, height),
		fmt.Sprintf(`viewBox="0 0 %s %s"`, width, height),
	)
	if d.Title != "" {
		canvas.Title(d.Title) // escaped by svgo
	}
	for _, e := range d.Elements {
		pathData, _ := e.Attribute(cornersquare.AttrD)
		var attrs []string
		for _, a := range e.Attrs {
			if a.Name == cornersquare.AttrD {
				continue
			}
			attrs = append(attrs, fmt.Sprintf(`%s="%s"`, a.Name, escape(a.Value)))
		}
		canvas.Path(escape(pathData), attrs...)
	}
	canvas.End()
	return cw.n, cw.err
}
