package flatten

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tsawler/kerf/model"
	"github.com/tsawler/kerf/svgdoc"
)

// Extraction errors.
var (
	ErrBadNumber = errors.New("flatten: invalid numeric attribute")
	ErrBadPoints = errors.New("flatten: invalid points list")
)

// DefaultTolerance is the default curve-approximation tolerance in user
// units: the maximum distance a line-segment chain may deviate from the
// true curve.
const DefaultTolerance = 0.1

// Options configures curve extraction.
type Options struct {
	// Tolerance is the curve-approximation tolerance in user units.
	// Zero means DefaultTolerance.
	Tolerance float64
}

func (o Options) tolerance() float64 {
	if o.Tolerance <= 0 {
		return DefaultTolerance
	}
	return o.Tolerance
}

// Extract walks the document tree and returns every drawable shape as a
// curve in document coordinates. Curve order follows document order.
// Containers (g, svg) are recursed into; non-shape elements (defs, text,
// metadata) are ignored.
func Extract(doc *svgdoc.Document, opts Options) ([]model.Curve, error) {
	var curves []model.Curve
	err := walk(doc.Root, opts, &curves)
	return curves, err
}

func walk(el *svgdoc.Element, opts Options, out *[]model.Curve) error {
	if el.Name.Space != svgdoc.SVGNamespace {
		return nil
	}

	var (
		curve model.Curve
		err   error
	)

	switch el.Name.Local {
	case "svg", "g":
		for _, c := range el.Children {
			if err := walk(c, opts, out); err != nil {
				return err
			}
		}
		return nil
	case "line":
		curve, err = lineCurve(el)
	case "rect":
		curve, err = rectCurve(el)
	case "polyline":
		curve, err = polyCurve(el, false)
	case "polygon":
		curve, err = polyCurve(el, true)
	case "circle":
		curve, err = ellipseCurve(el, true, opts.tolerance())
	case "ellipse":
		curve, err = ellipseCurve(el, false, opts.tolerance())
	case "path":
		subpaths, err := parsePathData(el.Attr("", "d"), opts.tolerance())
		if err != nil {
			return fmt.Errorf("path %q: %w", el.ID(), err)
		}
		for _, c := range subpaths {
			if !c.IsEmpty() {
				*out = append(*out, c)
			}
		}
		return nil
	default:
		return nil
	}

	if err != nil {
		return err
	}
	if !curve.IsEmpty() {
		*out = append(*out, curve)
	}
	return nil
}

// attrFloat reads a numeric attribute, defaulting to 0 when absent.
func attrFloat(el *svgdoc.Element, name string) (float64, error) {
	raw := el.Attr("", name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadNumber, name, raw)
	}
	return v, nil
}

func lineCurve(el *svgdoc.Element) (model.Curve, error) {
	var vals [4]float64
	for i, name := range []string{"x1", "y1", "x2", "y2"} {
		v, err := attrFloat(el, name)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return model.Curve{
		{X: vals[0], Y: vals[1]},
		{X: vals[2], Y: vals[3]},
	}, nil
}

func rectCurve(el *svgdoc.Element) (model.Curve, error) {
	var vals [4]float64
	for i, name := range []string{"x", "y", "width", "height"} {
		v, err := attrFloat(el, name)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	x, y, w, h := vals[0], vals[1], vals[2], vals[3]
	if w == 0 || h == 0 {
		return nil, nil
	}
	return model.Curve{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
		{X: x, Y: y},
	}, nil
}

func polyCurve(el *svgdoc.Element, close bool) (model.Curve, error) {
	pts, err := parsePoints(el.Attr("", "points"))
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, nil
	}
	curve := model.Curve(pts)
	if close && !curve.Closed() {
		curve = append(curve, curve[0])
	}
	return curve, nil
}

func ellipseCurve(el *svgdoc.Element, isCircle bool, tolerance float64) (model.Curve, error) {
	cx, err := attrFloat(el, "cx")
	if err != nil {
		return nil, err
	}
	cy, err := attrFloat(el, "cy")
	if err != nil {
		return nil, err
	}

	var rx, ry float64
	if isCircle {
		r, err := attrFloat(el, "r")
		if err != nil {
			return nil, err
		}
		rx, ry = r, r
	} else {
		if rx, err = attrFloat(el, "rx"); err != nil {
			return nil, err
		}
		if ry, err = attrFloat(el, "ry"); err != nil {
			return nil, err
		}
	}
	if rx <= 0 || ry <= 0 {
		return nil, nil
	}

	// Segment count from the sagitta formula: the chord of an arc spanning
	// angle t deviates from the circle by r*(1 - cos(t/2)).
	r := math.Max(rx, ry)
	step := 2 * math.Acos(math.Max(-1, 1-tolerance/r))
	n := int(math.Ceil(2 * math.Pi / math.Max(step, 1e-3)))
	if n < 8 {
		n = 8
	}

	curve := make(model.Curve, 0, n+1)
	for i := 0; i <= n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n)
		curve = append(curve, model.Point{
			X: cx + rx*math.Cos(t),
			Y: cy + ry*math.Sin(t),
		})
	}
	return curve, nil
}

// parsePoints parses an SVG points list ("x1,y1 x2,y2 ...").
func parsePoints(s string) ([]model.Point, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	s = strings.ReplaceAll(s, ",", " ")
	fields := strings.Fields(s)
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("%w: odd number of coordinates", ErrBadPoints)
	}

	pts := make([]model.Point, 0, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		x, err1 := strconv.ParseFloat(fields[i], 64)
		y, err2 := strconv.ParseFloat(fields[i+1], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: pair %q,%q", ErrBadPoints, fields[i], fields[i+1])
		}
		pts = append(pts, model.Point{X: x, Y: y})
	}
	return pts, nil
}
