package model

import (
	"math"
	"testing"
)

func TestPointDistance(t *testing.T) {
	p1 := Point{X: 0, Y: 0}
	p2 := Point{X: 3, Y: 4}

	if d := p1.Distance(p2); d != 5.0 {
		t.Errorf("Expected distance 5.0, got %f", d)
	}
}

func TestMatrixTransform(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		p    Point
		want Point
	}{
		{"identity", Identity(), Point{X: 3, Y: 7}, Point{X: 3, Y: 7}},
		{"translate", Translate(10, -5), Point{X: 1, Y: 2}, Point{X: 11, Y: -3}},
		{"scale", Scale(2, 3), Point{X: 4, Y: 5}, Point{X: 8, Y: 15}},
		{"flip vertical", Scale(1, -1), Point{X: 4, Y: 5}, Point{X: 4, Y: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Transform(tt.p)
			if got != tt.want {
				t.Errorf("Transform(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// Translate then scale must differ from scale then translate.
	ts := Translate(10, 0).Multiply(Scale(2, 2))
	st := Scale(2, 2).Multiply(Translate(10, 0))

	p := Point{X: 1, Y: 1}

	got1 := ts.Transform(p)
	got2 := st.Transform(p)

	if got1 == got2 {
		t.Fatalf("Expected non-commutative composition, both yielded %v", got1)
	}
	if want := (Point{X: 22, Y: 2}); got1 != want {
		t.Errorf("translate-then-scale: got %v, want %v", got1, want)
	}
	if want := (Point{X: 12, Y: 2}); got2 != want {
		t.Errorf("scale-then-translate: got %v, want %v", got2, want)
	}
}

func TestMatrixIsIdentity(t *testing.T) {
	if !Identity().IsIdentity() {
		t.Error("Identity() should report IsIdentity")
	}
	if Translate(1, 0).IsIdentity() {
		t.Error("Translate(1,0) should not report IsIdentity")
	}
}

func TestCurveBounds(t *testing.T) {
	c := Curve{{X: 1, Y: 2}, {X: -3, Y: 8}, {X: 5, Y: 0}}
	b := c.Bounds()

	if b.Left() != -3 || b.Right() != 5 || b.Top() != 0 || b.Bottom() != 8 {
		t.Errorf("Unexpected bounds %+v", b)
	}
}

func TestCurveEmpty(t *testing.T) {
	if !(Curve{}).IsEmpty() {
		t.Error("empty curve should be empty")
	}
	if !(Curve{{X: 1, Y: 1}}).IsEmpty() {
		t.Error("single-point curve has no segment, should be empty")
	}
	if (Curve{{X: 0, Y: 0}, {X: 1, Y: 1}}).IsEmpty() {
		t.Error("two-point curve should not be empty")
	}
}

func TestCurveClosed(t *testing.T) {
	open := Curve{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	closed := append(append(Curve{}, open...), Point{X: 0, Y: 0})

	if open.Closed() {
		t.Error("open curve reported closed")
	}
	if !closed.Closed() {
		t.Error("closed curve reported open")
	}
}

func TestBBoxExpand(t *testing.T) {
	b := BBox{X: 10, Y: 10, Width: 20, Height: 20}.Expand(5)
	if b.X != 5 || b.Y != 5 || b.Width != 30 || b.Height != 30 {
		t.Errorf("Unexpected expanded box %+v", b)
	}
}

func TestBBoxUnion(t *testing.T) {
	a := BBox{X: 0, Y: 0, Width: 10, Height: 10}
	b := BBox{X: 5, Y: 5, Width: 10, Height: 10}

	u := a.Union(b)
	if u.X != 0 || u.Y != 0 || math.Abs(u.Width-15) > 1e-9 || math.Abs(u.Height-15) > 1e-9 {
		t.Errorf("Unexpected union %+v", u)
	}
}
