package preview

import (
	"testing"

	"github.com/tsawler/kerf/model"
	"github.com/tsawler/kerf/transform"
)

func TestRenderDefaultsAndSize(t *testing.T) {
	img := Render(Scene{Canvas: model.BBox{Width: 100, Height: 100}}, Options{})
	if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 600 {
		t.Errorf("Default size = %v, want 800x600", img.Bounds())
	}

	img = Render(Scene{Canvas: model.BBox{Width: 100, Height: 100}}, Options{Width: 320, Height: 240})
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Errorf("Size = %v, want 320x240", img.Bounds())
	}
}

func TestRenderBackgroundIsWhite(t *testing.T) {
	img := Render(Scene{Canvas: model.BBox{Width: 100, Height: 100}}, Options{Width: 200, Height: 200})

	c := img.RGBAAt(1, 1)
	if c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("Expected white background, got %v", c)
	}
}

func TestRenderTraceIsRed(t *testing.T) {
	scene := Scene{
		Canvas: model.BBox{Width: 100, Height: 100},
		Curves: []model.Curve{{{X: 0, Y: 50}, {X: 100, Y: 50}}},
	}
	img := Render(scene, Options{Width: 200, Height: 200})

	// Canvas fits with a 20px margin: scale 1.6, offset 20. The trace runs
	// along pixel y=100.
	c := img.RGBAAt(100, 100)
	if c.R <= c.G || c.R <= c.B {
		t.Errorf("Expected red-dominant trace pixel, got %v", c)
	}
}

func TestRenderCornerCrosshair(t *testing.T) {
	p, err := transform.NewPolicy(transform.OriginBottomLeft,
		transform.Bed{Width: 100, Height: 100, Unit: "mm"})
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}

	scene := Scene{
		Canvas:  model.BBox{Width: 100, Height: 100},
		Corners: p.Corners(),
		Unit:    "mm",
	}
	img := Render(scene, Options{Width: 200, Height: 200})

	// Document corner (0,0) maps to pixel (20,20); the crosshair is black.
	c := img.RGBAAt(20, 20)
	if c.R > 100 || c.G > 100 || c.B > 100 {
		t.Errorf("Expected dark crosshair pixel, got %v", c)
	}
}

func TestRenderEmptyCurveIgnored(t *testing.T) {
	scene := Scene{
		Canvas: model.BBox{Width: 100, Height: 100},
		Curves: []model.Curve{{}, {{X: 1, Y: 1}}},
	}
	// Must not panic.
	Render(scene, Options{Width: 100, Height: 100})
}

func TestRenderDegenerateCanvas(t *testing.T) {
	// A zero-size canvas must render rather than divide by zero.
	img := Render(Scene{Canvas: model.BBox{}}, Options{Width: 100, Height: 100})
	if img == nil {
		t.Fatal("Expected an image for a degenerate canvas")
	}
}
