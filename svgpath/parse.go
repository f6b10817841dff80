package svgpath

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrParamMismatch is returned when a command receives
	// a number of arguments which is not a multiple of its arity.
	ErrParamMismatch = errors.New("param mismatch")

	// ErrUnsupportedCommand is returned for letters which are not
	// SVG path data commands.
	ErrUnsupportedCommand = errors.New("unsupported path command")
)

// number of arguments expected for each (upper case) command
var arity = map[byte]int{
	'M': 2,
	'L': 2,
	'H': 1,
	'V': 1,
	'A': 7,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'Z': 0,
}

// pathCursor is used while parsing path data
type pathCursor struct {
	path   Path
	points []float64
}

// Parse compiles the `d` attribute of an SVG path element.
// Arc flags must be separated from the other arguments.
func Parse(d string) (Path, error) {
	var c pathCursor
	start, cmd := -1, byte(0)
	for i := 0; i < len(d); i++ {
		r := d[i]
		if !isCommand(r) {
			if isLetter(r) && r != 'e' && r != 'E' {
				return nil, fmt.Errorf("%w: %q", ErrUnsupportedCommand, r)
			}
			continue
		}
		if start >= 0 {
			if err := c.addSegment(cmd, d[start:i]); err != nil {
				return nil, err
			}
		} else if err := checkBlank(d[:i]); err != nil {
			return nil, err
		}
		start, cmd = i+1, r
	}
	if start >= 0 {
		if err := c.addSegment(cmd, d[start:]); err != nil {
			return nil, err
		}
	}
	return c.path, nil
}

func isLetter(r byte) bool { return ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') }

func isCommand(r byte) bool {
	_, ok := arity[upper(r)]
	return ok && isLetter(r)
}

func upper(r byte) byte {
	if 'a' <= r && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func isSeparator(r byte) bool {
	return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// checkBlank rejects data before the first command
func checkBlank(s string) error {
	for i := 0; i < len(s); i++ {
		if !isSeparator(s[i]) {
			return fmt.Errorf("path data must start with a command, got %q", s)
		}
	}
	return nil
}

// getPoints reads the numbers of `dataPoints` into c.points
func (c *pathCursor) getPoints(dataPoints string) error {
	c.points = c.points[:0]
	i := 0
	for i < len(dataPoints) {
		if isSeparator(dataPoints[i]) {
			i++
			continue
		}
		j := scanNumber(dataPoints, i)
		if j == i {
			return fmt.Errorf("invalid number in path data: %q", dataPoints[i:])
		}
		f, err := strconv.ParseFloat(dataPoints[i:j], 64)
		if err != nil {
			return err
		}
		c.points = append(c.points, f)
		i = j
	}
	return nil
}

// scanNumber returns the end of the number starting at `i`.
// A sign or a second dot starts a new number, so that "1-2" and
// "0.5.5" are read as two numbers.
func scanNumber(s string, i int) int {
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	seenDot, seenDigit := false, false
	for j < len(s) {
		switch r := s[j]; {
		case '0' <= r && r <= '9':
			seenDigit = true
		case r == '.' && !seenDot:
			seenDot = true
		case (r == 'e' || r == 'E') && seenDigit:
			k := j + 1
			if k < len(s) && (s[k] == '+' || s[k] == '-') {
				k++
			}
			if k < len(s) && '0' <= s[k] && s[k] <= '9' {
				j = k
				for j < len(s) && '0' <= s[j] && s[j] <= '9' {
					j++
				}
			}
			return j
		default:
			return j
		}
		j++
	}
	if !seenDigit {
		return i
	}
	return j
}

// addSegment appends the operations of one command letter,
// repeating it as long as arguments remain.
func (c *pathCursor) addSegment(cmd byte, data string) error {
	if err := c.getPoints(data); err != nil {
		return err
	}
	key := upper(cmd)
	rel := cmd != key
	n := arity[key]
	if n == 0 {
		if len(c.points) != 0 {
			return ErrParamMismatch
		}
		c.path.Close()
		return nil
	}
	if len(c.points) == 0 || len(c.points)%n != 0 {
		return fmt.Errorf("%w: %c with %d arguments", ErrParamMismatch, cmd, len(c.points))
	}
	for i := 0; i < len(c.points); i += n {
		pts := c.points[i : i+n]
		switch key {
		case 'M':
			if i == 0 {
				c.path = append(c.path, MoveTo{X: pts[0], Y: pts[1], Rel: rel})
			} else { // subsequent pairs are implicit line commands
				c.path = append(c.path, LineTo{X: pts[0], Y: pts[1], Rel: rel})
			}
		case 'L':
			c.path = append(c.path, LineTo{X: pts[0], Y: pts[1], Rel: rel})
		case 'H':
			c.path = append(c.path, HLineTo{X: pts[0], Rel: rel})
		case 'V':
			c.path = append(c.path, VLineTo{Y: pts[0], Rel: rel})
		case 'A':
			c.path = append(c.path, ArcTo{
				RX: pts[0], RY: pts[1], XRotation: pts[2],
				LargeArc: pts[3] != 0, Sweep: pts[4] != 0,
				X: pts[5], Y: pts[6], Rel: rel,
			})
		case 'C':
			c.path = append(c.path, CubicTo{X1: pts[0], Y1: pts[1], X2: pts[2], Y2: pts[3], X: pts[4], Y: pts[5], Rel: rel})
		case 'S':
			c.path = append(c.path, SmoothCubicTo{X2: pts[0], Y2: pts[1], X: pts[2], Y: pts[3], Rel: rel})
		case 'Q':
			c.path = append(c.path, QuadTo{X1: pts[0], Y1: pts[1], X: pts[2], Y: pts[3], Rel: rel})
		case 'T':
			c.path = append(c.path, SmoothQuadTo{X: pts[0], Y: pts[1], Rel: rel})
		}
	}
	return nil
}
