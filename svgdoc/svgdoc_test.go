package svgdoc

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const sampleSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg"
     xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape"
     width="210mm" height="297mm" viewBox="0 0 210 297">
  <g id="layer1" inkscape:groupmode="layer" inkscape:label="artwork">
    <path id="cut1" d="M 10,10 L 50,10 L 50,50 Z"/>
    <rect id="cut2" x="60" y="60" width="20" height="30"/>
  </g>
</svg>`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(sampleSVG))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return doc
}

func TestParseBasics(t *testing.T) {
	doc := parseSample(t)

	if doc.Root.Name.Local != "svg" {
		t.Errorf("Expected svg root, got %q", doc.Root.Name.Local)
	}
	if doc.Root.Name.Space != SVGNamespace {
		t.Errorf("Expected SVG namespace, got %q", doc.Root.Name.Space)
	}
	if got := doc.Root.Attr("", "width"); got != "210mm" {
		t.Errorf("Expected width 210mm, got %q", got)
	}

	layer := doc.Root.FindByID("layer1")
	if layer == nil {
		t.Fatal("layer1 not found")
	}
	if got := layer.Attr(InkscapeNamespace, "groupmode"); got != "layer" {
		t.Errorf("Expected inkscape:groupmode layer, got %q", got)
	}
	if len(layer.Children) != 2 {
		t.Errorf("Expected 2 children in layer, got %d", len(layer.Children))
	}
}

func TestParseRejectsNonSVG(t *testing.T) {
	_, err := Parse(strings.NewReader(`<html><body/></html>`))
	if !errors.Is(err, ErrNotSVG) {
		t.Fatalf("Expected ErrNotSVG, got %v", err)
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	if !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("Expected ErrEmptyDocument, got %v", err)
	}
}

func TestCanvasHeight(t *testing.T) {
	tests := []struct {
		name    string
		height  string
		want    float64
		wantErr error
	}{
		{"plain number", "297", 297, nil},
		{"millimeters", "297mm", 297, nil},
		{"inches", "11.69in", 11.69, nil},
		{"pixels", "1052px", 1052, nil},
		{"whitespace", " 297mm ", 297, nil},
		{"textual", "tall", 0, ErrBadCanvasSize},
		{"unit only", "mm", 0, ErrBadCanvasSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{Root: New("svg").SetAttr("", "height", tt.height)}
			got, err := doc.CanvasHeight()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CanvasHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanvasHeightMissing(t *testing.T) {
	doc := &Document{Root: New("svg")}
	if _, err := doc.CanvasHeight(); !errors.Is(err, ErrMissingHeight) {
		t.Fatalf("Expected ErrMissingHeight, got %v", err)
	}
}

func TestFindByIDMissing(t *testing.T) {
	doc := parseSample(t)
	if el := doc.Root.FindByID("nope"); el != nil {
		t.Errorf("Expected nil for missing id, got %v", el)
	}
}

func TestRemoveByID(t *testing.T) {
	doc := parseSample(t)

	if !doc.Root.RemoveByID("cut1") {
		t.Fatal("RemoveByID(cut1) reported nothing removed")
	}
	if doc.Root.FindByID("cut1") != nil {
		t.Error("cut1 still present after removal")
	}
	if doc.Root.RemoveByID("cut1") {
		t.Error("Second removal should report false")
	}
	// The sibling survives.
	if doc.Root.FindByID("cut2") == nil {
		t.Error("cut2 should still be present")
	}
}

func TestAppendAndCount(t *testing.T) {
	g := New("g")
	g.Append(New("path")).Append(New("path")).Append(New("text"))

	if got := g.CountByName("path"); got != 2 {
		t.Errorf("Expected 2 paths, got %d", got)
	}
	if got := g.CountByName("text"); got != 1 {
		t.Errorf("Expected 1 text, got %d", got)
	}
}

func TestSetAttrReplaces(t *testing.T) {
	e := New("g").SetAttr("", "id", "a").SetAttr("", "id", "b")
	if got := e.Attr("", "id"); got != "b" {
		t.Errorf("Expected id b, got %q", got)
	}
	if len(e.Attrs) != 1 {
		t.Errorf("Expected 1 attr, got %d", len(e.Attrs))
	}
}

func TestWriteRoundTrip(t *testing.T) {
	doc := parseSample(t)

	var buf bytes.Buffer
	if err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("Output missing SVG namespace declaration")
	}
	if !strings.Contains(out, `inkscape:groupmode="layer"`) {
		t.Error("Output missing inkscape attribute")
	}

	reparsed, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}
	if reparsed.Root.FindByID("cut1") == nil {
		t.Error("cut1 lost in round trip")
	}
	if got := reparsed.Root.FindByID("layer1").Attr(InkscapeNamespace, "label"); got != "artwork" {
		t.Errorf("inkscape:label lost in round trip, got %q", got)
	}
}

func TestWriteEscapesText(t *testing.T) {
	label := New("text")
	label.Text = `1 < 2 & "so on"`
	doc := &Document{Root: New("svg").Append(label)}

	var buf bytes.Buffer
	if err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	out := buf.String()

	if strings.Contains(out, `1 < 2 &`) {
		t.Errorf("Text not escaped: %s", out)
	}

	reparsed, err := Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}
	if got := reparsed.Root.Children[0].Text; got != label.Text {
		t.Errorf("Text mangled in round trip: %q", got)
	}
}
