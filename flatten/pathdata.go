package flatten

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/kerf/model"
)

// Path-data errors.
var (
	ErrBadPathData        = errors.New("flatten: invalid path data")
	ErrUnsupportedCommand = errors.New("flatten: unsupported path command")
)

// parsePathData parses the SVG path commands M/m, L/l, H/h, V/v, C/c, Q/q,
// and Z/z, returning one curve per subpath. Curved segments are flattened
// to the given tolerance. Any other command is an error.
func parsePathData(d string, tolerance float64) ([]model.Curve, error) {
	tokens := tokenizePathData(d)
	if len(tokens) == 0 {
		return nil, nil
	}

	var (
		curves []model.Curve
		cur    model.Curve
		pos    model.Point
		start  model.Point
		cmd    byte
	)

	flush := func() {
		if !cur.IsEmpty() {
			curves = append(curves, cur)
		}
		cur = nil
	}

	next := func(i *int) (float64, error) {
		if *i >= len(tokens) {
			return 0, fmt.Errorf("%w: truncated %q command", ErrBadPathData, cmd)
		}
		v, err := strconv.ParseFloat(tokens[*i], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrBadPathData, tokens[*i])
		}
		*i++
		return v, nil
	}

	i := 0
	for i < len(tokens) {
		tok := tokens[i]

		if isPathCommand(tok) {
			cmd = tok[0]
			i++
			if cmd == 'Z' || cmd == 'z' {
				if len(cur) > 0 {
					cur = append(cur, start)
				}
				flush()
				pos = start
				cmd = 0
			}
			continue
		}
		if cmd == 0 {
			return nil, fmt.Errorf("%w: data must start with a moveto", ErrBadPathData)
		}

		relative := cmd >= 'a'
		switch cmd {
		case 'M', 'm':
			x, err := next(&i)
			if err != nil {
				return nil, err
			}
			y, err := next(&i)
			if err != nil {
				return nil, err
			}
			flush()
			if relative {
				pos = model.Point{X: pos.X + x, Y: pos.Y + y}
			} else {
				pos = model.Point{X: x, Y: y}
			}
			start = pos
			cur = model.Curve{pos}
			// Subsequent coordinate pairs are implicit linetos.
			if cmd == 'M' {
				cmd = 'L'
			} else {
				cmd = 'l'
			}

		case 'L', 'l':
			x, err := next(&i)
			if err != nil {
				return nil, err
			}
			y, err := next(&i)
			if err != nil {
				return nil, err
			}
			if relative {
				pos = model.Point{X: pos.X + x, Y: pos.Y + y}
			} else {
				pos = model.Point{X: x, Y: y}
			}
			cur = append(cur, pos)

		case 'H', 'h':
			x, err := next(&i)
			if err != nil {
				return nil, err
			}
			if relative {
				pos.X += x
			} else {
				pos.X = x
			}
			cur = append(cur, pos)

		case 'V', 'v':
			y, err := next(&i)
			if err != nil {
				return nil, err
			}
			if relative {
				pos.Y += y
			} else {
				pos.Y = y
			}
			cur = append(cur, pos)

		case 'C', 'c':
			var coords [6]float64
			for j := range coords {
				v, err := next(&i)
				if err != nil {
					return nil, err
				}
				coords[j] = v
			}
			c1 := model.Point{X: coords[0], Y: coords[1]}
			c2 := model.Point{X: coords[2], Y: coords[3]}
			end := model.Point{X: coords[4], Y: coords[5]}
			if relative {
				c1 = model.Point{X: pos.X + c1.X, Y: pos.Y + c1.Y}
				c2 = model.Point{X: pos.X + c2.X, Y: pos.Y + c2.Y}
				end = model.Point{X: pos.X + end.X, Y: pos.Y + end.Y}
			}
			cur = append(cur, flattenCubic(pos, c1, c2, end, tolerance)...)
			pos = end

		case 'Q', 'q':
			var coords [4]float64
			for j := range coords {
				v, err := next(&i)
				if err != nil {
					return nil, err
				}
				coords[j] = v
			}
			c1 := model.Point{X: coords[0], Y: coords[1]}
			end := model.Point{X: coords[2], Y: coords[3]}
			if relative {
				c1 = model.Point{X: pos.X + c1.X, Y: pos.Y + c1.Y}
				end = model.Point{X: pos.X + end.X, Y: pos.Y + end.Y}
			}
			// Elevate the quadratic to a cubic and flatten that.
			cc1 := model.Point{X: pos.X + 2.0/3.0*(c1.X-pos.X), Y: pos.Y + 2.0/3.0*(c1.Y-pos.Y)}
			cc2 := model.Point{X: end.X + 2.0/3.0*(c1.X-end.X), Y: end.Y + 2.0/3.0*(c1.Y-end.Y)}
			cur = append(cur, flattenCubic(pos, cc1, cc2, end, tolerance)...)
			pos = end

		default:
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedCommand, string(cmd))
		}
	}

	flush()
	return curves, nil
}

// flattenCubic approximates a cubic Bézier by line segments within the
// given tolerance, returning the interior and end vertices (the start point
// is assumed already emitted).
func flattenCubic(p0, p1, p2, p3 model.Point, tolerance float64) []model.Point {
	// Segment count bound from the curve's second derivative: the maximum
	// deviation of a uniform n-piece polyline is bounded by max|B''|/(8n²).
	d1 := hullDeviation(p0, p1, p3)
	d2 := hullDeviation(p0, p2, p3)
	dev := 6 * maxFloat(d1, d2)

	n := 1
	if tolerance > 0 && dev > 0 {
		n = int(math.Ceil(math.Sqrt(dev / (8 * tolerance))))
	}
	if n < 1 {
		n = 1
	}
	if n > 256 {
		n = 256
	}

	out := make([]model.Point, 0, n)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		out = append(out, cubicAt(p0, p1, p2, p3, t))
	}
	return out
}

func cubicAt(p0, p1, p2, p3 model.Point, t float64) model.Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return model.Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// hullDeviation measures how far a control point sits from the chord.
func hullDeviation(start, ctrl, end model.Point) float64 {
	mid := model.Point{X: (start.X + end.X) / 2, Y: (start.Y + end.Y) / 2}
	return ctrl.Distance(mid)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// isPathCommand reports whether a token is a single path command letter.
func isPathCommand(tok string) bool {
	if len(tok) != 1 {
		return false
	}
	switch tok[0] {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// tokenizePathData splits path data into command letters and numbers.
// Commas are separators; a minus sign starts a new number unless it follows
// an exponent marker.
func tokenizePathData(d string) []string {
	var tokens []string
	var num strings.Builder

	flushNum := func() {
		if num.Len() > 0 {
			tokens = append(tokens, num.String())
			num.Reset()
		}
	}

	for i := 0; i < len(d); i++ {
		ch := d[i]
		switch {
		case ch >= 'A' && ch <= 'Z' || ch >= 'a' && ch <= 'z':
			if ch == 'e' || ch == 'E' {
				// Exponent inside a number.
				if num.Len() > 0 {
					num.WriteByte(ch)
					continue
				}
			}
			flushNum()
			tokens = append(tokens, string(ch))
		case ch == ',' || ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			flushNum()
		case ch == '-' || ch == '+':
			s := num.String()
			if num.Len() > 0 && !strings.HasSuffix(s, "e") && !strings.HasSuffix(s, "E") {
				flushNum()
			}
			num.WriteByte(ch)
		case ch == '.':
			if strings.Contains(num.String(), ".") {
				// Second dot starts a new number ("1.5.5" is two numbers).
				flushNum()
			}
			num.WriteByte(ch)
		default:
			num.WriteByte(ch)
		}
	}
	flushNum()
	return tokens
}
