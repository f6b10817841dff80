package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/phamquanglong/qr-styling/cornersquare"
	"github.com/phamquanglong/qr-styling/svgpath"
	"golang.org/x/net/html/charset"
)

// ErrorMode sets how the reader handles unsupported elements.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported elements and logs them.
	WarnErrorMode
	// StrictErrorMode fails on unsupported elements.
	StrictErrorMode
)

// attributes propagated from a <g> to its descendants
var inherited = map[string]bool{
	"fill":                     true,
	"fill-opacity":             true,
	cornersquare.AttrFillRule:  true,
	cornersquare.AttrClipRule:  true,
	cornersquare.AttrTransform: true,
}

type readCursor struct {
	doc        *Document
	errorMode  ErrorMode
	attrsStack [][]Attr // inherited attributes, one level per open element
	inTitle    bool
}

type elementFunc func(c *readCursor, attrs []xml.Attr) error

var elementFuncs = map[string]elementFunc{
	"svg":      svgF,
	"g":        func(*readCursor, []xml.Attr) error { return nil },
	"path":     pathF,
	"rect":     rectF,
	"circle":   circleF,
	"title":    titleF,
	"desc":     func(*readCursor, []xml.Attr) error { return nil },
	"metadata": func(*readCursor, []xml.Attr) error { return nil },
}

func (c *readCursor) handleError(msg string) error {
	if c.errorMode == StrictErrorMode {
		return errors.New(msg)
	} else if c.errorMode == WarnErrorMode {
		cornersquare.Logger().Warn(msg)
	}
	return nil
}

func (c *readCursor) current() []Attr { return c.attrsStack[len(c.attrsStack)-1] }

// pushAttrs computes the attributes inherited by the children of `se`
func (c *readCursor) pushAttrs(se xml.StartElement) {
	next := append([]Attr(nil), c.current()...)
	for _, a := range se.Attr {
		if !inherited[a.Name.Local] {
			continue
		}
		next = mergeAttr(next, a.Name.Local, a.Value)
	}
	c.attrsStack = append(c.attrsStack, next)
}

// mergeAttr sets `name`; transforms are composed instead of replaced.
func mergeAttr(attrs []Attr, name, value string) []Attr {
	for i := range attrs {
		if attrs[i].Name == name {
			if name == cornersquare.AttrTransform {
				attrs[i].Value += " " + value
			} else {
				attrs[i].Value = value
			}
			return attrs
		}
	}
	return append(attrs, Attr{Name: name, Value: value})
}

// addElement appends a path with the inherited attributes,
// the attributes in `own` and the path data `d`.
func (c *readCursor) addElement(d string, own []xml.Attr, skip ...string) {
	e := c.doc.AddPath()
	e.Attrs = append(e.Attrs, Attr{Name: cornersquare.AttrD, Value: d})
	parent := c.attrsStack[len(c.attrsStack)-2]
	e.Attrs = append(e.Attrs, parent...)
outer:
	for _, a := range own {
		for _, s := range skip {
			if a.Name.Local == s {
				continue outer
			}
		}
		e.Attrs = mergeAttr(e.Attrs, a.Name.Local, a.Value)
	}
}

func readFloat(attrs []xml.Attr, name string) (float64, error) {
	for _, a := range attrs {
		if a.Name.Local == name {
			s := strings.TrimSuffix(strings.TrimSpace(a.Value), "px")
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid attribute %s: %w", name, err)
			}
			return f, nil
		}
	}
	return 0, nil
}

func svgF(c *readCursor, attrs []xml.Attr) error {
	var err error
	if c.doc.Width, err = readFloat(attrs, "width"); err != nil {
		return err
	}
	if c.doc.Height, err = readFloat(attrs, "height"); err != nil {
		return err
	}
	for _, a := range attrs {
		if a.Name.Local != "viewBox" || (c.doc.Width != 0 && c.doc.Height != 0) {
			continue
		}
		fields := strings.Fields(strings.ReplaceAll(a.Value, ",", " "))
		if len(fields) != 4 {
			return fmt.Errorf("invalid viewBox %q", a.Value)
		}
		w, errW := strconv.ParseFloat(fields[2], 64)
		h, errH := strconv.ParseFloat(fields[3], 64)
		if errW != nil || errH != nil {
			return fmt.Errorf("invalid viewBox %q", a.Value)
		}
		c.doc.Width, c.doc.Height = w, h
	}
	return nil
}

func pathF(c *readCursor, attrs []xml.Attr) error {
	for _, a := range attrs {
		if a.Name.Local != cornersquare.AttrD {
			continue
		}
		// validate the data now, so that renderers only see valid paths
		p, err := svgpath.Parse(a.Value)
		if err != nil {
			return c.handleError(fmt.Sprintf("Skipping path %q: %s", a.Value, err))
		}
		c.addElement(p.ToSVGPath(), attrs, cornersquare.AttrD)
		return nil
	}
	return nil
}

func rectF(c *readCursor, attrs []xml.Attr) error {
	var vals [4]float64
	for i, name := range [4]string{"x", "y", "width", "height"} {
		f, err := readFloat(attrs, name)
		if err != nil {
			return err
		}
		vals[i] = f
	}
	x, y, w, h := vals[0], vals[1], vals[2], vals[3]
	if w == 0 || h == 0 {
		return nil
	}
	var p svgpath.Path
	p.MoveTo(x, y)
	p.HLineBy(w)
	p.VLineBy(h)
	p.HLineBy(-w)
	p.Close()
	c.addElement(p.ToSVGPath(), attrs, "x", "y", "width", "height", "rx", "ry")
	return nil
}

func circleF(c *readCursor, attrs []xml.Attr) error {
	var vals [3]float64
	for i, name := range [3]string{"cx", "cy", "r"} {
		f, err := readFloat(attrs, name)
		if err != nil {
			return err
		}
		vals[i] = f
	}
	cx, cy, r := vals[0], vals[1], vals[2]
	if r == 0 {
		return nil
	}
	var p svgpath.Path
	p.MoveTo(cx-r, cy)
	p.ArcBy(r, false, true, 2*r, 0)
	p.ArcBy(r, false, true, -2*r, 0)
	p.Close()
	c.addElement(p.ToSVGPath(), attrs, "cx", "cy", "r")
	return nil
}

func titleF(c *readCursor, _ []xml.Attr) error {
	c.inTitle = true
	return nil
}

// Read parses an SVG stream. Shapes are converted to paths,
// and the presentation attributes of the enclosing groups are
// copied on each path.
// When the root element has no size nor viewBox, the document
// is sized to include its content, starting at the origin.
func Read(stream io.Reader, errMode ErrorMode) (*Document, error) {
	doc := new(Document)
	cursor := &readCursor{doc: doc, errorMode: errMode, attrsStack: [][]Attr{nil}}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenTag {
					return nil, errors.New("invalid svg xml document")
				}
				break
			}
			return doc, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			if !seenTag && se.Name.Local != "svg" {
				if err = cursor.handleError("Root element is " + se.Name.Local + ", not svg"); err != nil {
					return doc, err
				}
			}
			seenTag = true
			cursor.pushAttrs(se)
			df, ok := elementFuncs[se.Name.Local]
			if !ok {
				if err = cursor.handleError("Cannot process svg element " + se.Name.Local); err != nil {
					return doc, err
				}
				// skip the whole subtree
				if err = decoder.Skip(); err != nil {
					return doc, err
				}
				cursor.attrsStack = cursor.attrsStack[:len(cursor.attrsStack)-1]
				continue
			}
			if err = df(cursor, se.Attr); err != nil {
				return doc, fmt.Errorf("reading <%s>: %w", se.Name.Local, err)
			}
		case xml.EndElement:
			cursor.attrsStack = cursor.attrsStack[:len(cursor.attrsStack)-1]
			if se.Name.Local == "title" {
				cursor.inTitle = false
			}
		case xml.CharData:
			if cursor.inTitle {
				doc.Title += string(se)
			}
		}
	}
	doc.fitSize()
	return doc, nil
}

// fitSize uses the extent of the content for the
// dimensions missing in the <svg> element.
func (d *Document) fitSize() {
	if d.Width != 0 && d.Height != 0 {
		return
	}
	box := d.Bounds()
	if box.IsEmpty() {
		return
	}
	if d.Width == 0 {
		d.Width = math.Max(box.MaxX, 0)
	}
	if d.Height == 0 {
		d.Height = math.Max(box.MaxY, 0)
	}
}

// ReadFile reads the SVG file at `filename`.
func ReadFile(filename string, errMode ErrorMode) (*Document, error) {
	fin, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return Read(fin, errMode)
}
