package model

// Curve is an ordered, finite sequence of points forming a connected chain
// of line segments. Curved SVG geometry is approximated to this form before
// it reaches the library, so a Curve is already the line-segment
// approximation the renderers and compilers consume.
type Curve []Point

// IsEmpty returns true if the curve has no drawable segment.
func (c Curve) IsEmpty() bool {
	return len(c) < 2
}

// Start returns the first point of the curve. It panics on an empty curve.
func (c Curve) Start() Point {
	return c[0]
}

// End returns the last point of the curve. It panics on an empty curve.
func (c Curve) End() Point {
	return c[len(c)-1]
}

// Closed returns true if the curve ends where it starts.
func (c Curve) Closed() bool {
	return len(c) > 2 && c[0] == c[len(c)-1]
}

// Bounds returns the bounding box of the curve's vertices.
// The zero BBox is returned for an empty curve.
func (c Curve) Bounds() BBox {
	if len(c) == 0 {
		return BBox{}
	}
	b := NewBBoxFromPoints(c[0], c[0])
	for _, p := range c[1:] {
		b = b.Union(NewBBoxFromPoints(p, p))
	}
	return b
}
