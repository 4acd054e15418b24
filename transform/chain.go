package transform

import "github.com/tsawler/kerf/model"

// opKind discriminates the two affine operation kinds.
type opKind int

const (
	opTranslate opKind = iota
	opScale
)

// Op is a single affine operation: a translation or a scale.
// Ops are immutable values; build them with [Translate], [Scale], or
// [UniformScale].
type Op struct {
	kind opKind
	x, y float64
}

// Translate returns an operation that shifts a point by (dx, dy).
func Translate(dx, dy float64) Op {
	return Op{kind: opTranslate, x: dx, y: dy}
}

// Scale returns an operation that scales a point by (sx, sy) about the origin.
func Scale(sx, sy float64) Op {
	return Op{kind: opScale, x: sx, y: sy}
}

// UniformScale returns an operation that scales both axes by s.
func UniformScale(s float64) Op {
	return Scale(s, s)
}

// apply evaluates the operation against a point.
func (o Op) apply(p model.Point) model.Point {
	switch o.kind {
	case opTranslate:
		return model.Point{X: p.X + o.x, Y: p.Y + o.y}
	default:
		return model.Point{X: p.X * o.x, Y: p.Y * o.y}
	}
}

// matrix returns the operation as an affine matrix.
func (o Op) matrix() model.Matrix {
	if o.kind == opTranslate {
		return model.Translate(o.x, o.y)
	}
	return model.Scale(o.x, o.y)
}

// Chain is an ordered, composable sequence of affine operations.
// Operations are applied left-to-right (oldest first), so composition is
// non-commutative: translate-then-scale differs from scale-then-translate.
// A Chain never fails for finite inputs and holds no shared mutable state
// once built.
type Chain struct {
	ops []Op
}

// NewChain returns an empty chain. An empty chain is the identity mapping.
func NewChain() *Chain {
	return &Chain{}
}

// Append adds an operation to the end of the chain and returns the chain
// for builder-style composition.
func (c *Chain) Append(op Op) *Chain {
	c.ops = append(c.ops, op)
	return c
}

// Prepend inserts an operation at the front of the chain, so it applies
// before every existing operation. Returns the chain for composition.
func (c *Chain) Prepend(op Op) *Chain {
	c.ops = append([]Op{op}, c.ops...)
	return c
}

// Len returns the number of operations in the chain.
func (c *Chain) Len() int {
	return len(c.ops)
}

// Apply evaluates the full chain against a point, oldest operation first.
func (c *Chain) Apply(p model.Point) model.Point {
	for _, op := range c.ops {
		p = op.apply(p)
	}
	return p
}

// ApplyCurve maps every vertex of a curve through the chain, returning a
// new curve. The input curve is not modified.
func (c *Chain) ApplyCurve(curve model.Curve) model.Curve {
	if curve == nil {
		return nil
	}
	out := make(model.Curve, len(curve))
	for i, p := range curve {
		out[i] = c.Apply(p)
	}
	return out
}

// Matrix collapses the chain into a single affine matrix preserving
// application order, so chain.Apply(p) == chain.Matrix().Transform(p).
func (c *Chain) Matrix() model.Matrix {
	m := model.Identity()
	for _, op := range c.ops {
		m = m.Multiply(op.matrix())
	}
	return m
}
