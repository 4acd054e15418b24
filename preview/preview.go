package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/tsawler/kerf/model"
	"github.com/tsawler/kerf/transform"
)

// Scene is the geometry to rasterize, all in document coordinates.
type Scene struct {
	Canvas  model.BBox         // drawing bounds, typically (0,0,width,height)
	Curves  []model.Curve      // toolpath traces in document space
	Corners []transform.Corner // bed corners with machine-coordinate labels
	Unit    string             // unit symbol appended to labels
}

// Options controls the output image.
type Options struct {
	// Width and Height of the output image in pixels. Zero values default
	// to 800x600.
	Width  int
	Height int
}

var (
	background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	traceColor = color.RGBA{R: 220, A: 255}
	markColor  = color.RGBA{A: 255}
)

const (
	traceWidthPx = 1.5
	markWidthPx  = 2.0
	crossArmPx   = 8.0
	marginPx     = 20.0
)

// Render rasterizes the scene. The document rectangle is fitted into the
// image with a uniform scale and a fixed pixel margin; degenerate scenes
// (zero-size canvas) render markers collapsed at one point rather than
// failing.
func Render(scene Scene, opts Options) *image.RGBA {
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	toPixel := fitTransform(scene.Canvas, w, h)

	for _, curve := range scene.Curves {
		if curve.IsEmpty() {
			continue
		}
		strokePolyline(img, mapCurve(curve, toPixel), traceWidthPx, traceColor)
	}

	for _, corner := range scene.Corners {
		p := toPixel.Transform(corner.Doc)
		drawCrosshair(img, p)
		drawLabel(img, p, labelText(corner, scene.Unit))
	}

	return img
}

// fitTransform maps the canvas rectangle into the image with a uniform
// scale, centered, leaving a margin.
func fitTransform(canvas model.BBox, w, h int) model.Matrix {
	cw, ch := canvas.Width, canvas.Height
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}

	sx := (float64(w) - 2*marginPx) / cw
	sy := (float64(h) - 2*marginPx) / ch
	s := math.Min(sx, sy)
	if s <= 0 {
		s = 1
	}

	// Center the scaled canvas in the image.
	ox := (float64(w) - s*cw) / 2
	oy := (float64(h) - s*ch) / 2

	return model.Translate(-canvas.X, -canvas.Y).
		Multiply(model.Scale(s, s)).
		Multiply(model.Translate(ox, oy))
}

func mapCurve(c model.Curve, m model.Matrix) model.Curve {
	out := make(model.Curve, len(c))
	for i, p := range c {
		out[i] = m.Transform(p)
	}
	return out
}

// strokePolyline draws each segment of a pixel-space polyline as a filled
// quad of the given width using the vector rasterizer.
func strokePolyline(img *image.RGBA, c model.Curve, width float64, col color.RGBA) {
	for i := 1; i < len(c); i++ {
		strokeSegment(img, c[i-1], c[i], width, col)
	}
}

func strokeSegment(img *image.RGBA, a, b model.Point, width float64, col color.RGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Perpendicular half-width offset.
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	bounds := img.Bounds()
	r := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	r.DrawOp = draw.Over
	r.MoveTo(float32(a.X+nx), float32(a.Y+ny))
	r.LineTo(float32(b.X+nx), float32(b.Y+ny))
	r.LineTo(float32(b.X-nx), float32(b.Y-ny))
	r.LineTo(float32(a.X-nx), float32(a.Y-ny))
	r.ClosePath()
	r.Draw(img, bounds, image.NewUniform(col), image.Point{})
}

func drawCrosshair(img *image.RGBA, p model.Point) {
	strokeSegment(img,
		model.Point{X: p.X - crossArmPx, Y: p.Y},
		model.Point{X: p.X + crossArmPx, Y: p.Y},
		markWidthPx, markColor)
	strokeSegment(img,
		model.Point{X: p.X, Y: p.Y - crossArmPx},
		model.Point{X: p.X, Y: p.Y + crossArmPx},
		markWidthPx, markColor)
}

func drawLabel(img *image.RGBA, p model.Point, text string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(markColor),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.I(int(p.X) + 6),
			Y: fixed.I(int(p.Y) - 6),
		},
	}
	d.DrawString(text)
}

func labelText(corner transform.Corner, unit string) string {
	return fmt.Sprintf("%g%s, %g%s", corner.Machine.X, unit, corner.Machine.Y, unit)
}
