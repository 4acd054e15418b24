package overlay

import (
	"strings"
	"testing"

	"github.com/tsawler/kerf/model"
	"github.com/tsawler/kerf/svgdoc"
	"github.com/tsawler/kerf/transform"
)

func newDoc() *svgdoc.Document {
	root := svgdoc.New("svg")
	root.SetAttr("", "width", "300")
	root.SetAttr("", "height", "200")
	return &svgdoc.Document{Root: root}
}

func bedPolicy(t *testing.T, origin transform.Origin) transform.Policy {
	t.Helper()
	p, err := transform.NewPolicy(origin, transform.Bed{Width: 300, Height: 200, Unit: "mm"})
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	return p
}

func TestClearNoPriorOverlay(t *testing.T) {
	doc := newDoc()
	art := svgdoc.New("g").SetAttr("", "id", "layer1")
	doc.Root.Append(art)

	// Absence of overlay groups is not an error; nothing else is removed.
	Clear(doc)
	Clear(doc)

	if len(doc.Root.Children) != 1 || doc.Root.FindByID("layer1") == nil {
		t.Error("Clear touched production geometry")
	}
}

func TestClearRemovesBothGroups(t *testing.T) {
	doc := newDoc()
	doc.Root.Append(svgdoc.New("g").SetAttr("", "id", TraceGroupID))
	doc.Root.Append(svgdoc.New("g").SetAttr("", "id", ReferenceGroupID))
	doc.Root.Append(svgdoc.New("g").SetAttr("", "id", "layer1"))

	Clear(doc)

	if doc.Root.FindByID(TraceGroupID) != nil {
		t.Error("Trace group not removed")
	}
	if doc.Root.FindByID(ReferenceGroupID) != nil {
		t.Error("Reference group not removed")
	}
	if doc.Root.FindByID("layer1") == nil {
		t.Error("Production layer removed")
	}
}

func TestDrawTraces(t *testing.T) {
	doc := newDoc()
	chain := transform.NewChain() // identity

	curves := []model.Curve{
		{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}},
		{{X: 20, Y: 20}, {X: 30, Y: 20}},
	}

	group := DrawTraces(doc, curves, chain)

	if doc.Root.FindByID(TraceGroupID) != group {
		t.Fatal("Trace group not appended to document")
	}
	if got := group.Attr(svgdoc.InkscapeNamespace, "groupmode"); got != "layer" {
		t.Errorf("Expected layer groupmode, got %q", got)
	}
	if got := group.CountByName("path"); got != 2 {
		t.Errorf("Expected 2 trace paths, got %d", got)
	}
	if got := group.CountByName("defs"); got != 1 {
		t.Errorf("Expected 1 defs block, got %d", got)
	}

	path := group.Children[1]
	if got := path.Attr("", "d"); got != "M 0,0 L 10,0 L 10,10" {
		t.Errorf("Unexpected path data %q", got)
	}
	if style := path.Attr("", "style"); !strings.Contains(style, "stroke:red") ||
		!strings.Contains(style, "stroke-width:0.5") {
		t.Errorf("Unexpected style %q", style)
	}
	if got := path.Attr("", "marker-end"); !strings.Contains(got, arrowMarkerID) {
		t.Errorf("Missing arrow marker reference: %q", got)
	}
}

func TestDrawTracesAppliesChain(t *testing.T) {
	doc := newDoc()
	chain := transform.NewChain().
		Prepend(transform.Scale(1, -1)).
		Prepend(transform.Translate(0, -200))

	curves := []model.Curve{{{X: 5, Y: 0}, {X: 5, Y: 50}}}

	group := DrawTraces(doc, curves, chain)

	path := group.Children[1]
	if got := path.Attr("", "d"); got != "M 5,200 L 5,150" {
		t.Errorf("Chain not applied to vertices: %q", got)
	}
}

func TestDrawTracesEmptyInput(t *testing.T) {
	doc := newDoc()

	group := DrawTraces(doc, nil, transform.NewChain())

	if group == nil || doc.Root.FindByID(TraceGroupID) == nil {
		t.Fatal("Group should exist even with no curves")
	}
	if got := group.CountByName("path"); got != 0 {
		t.Errorf("Expected 0 paths, got %d", got)
	}
}

func TestDrawTracesSkipsEmptyCurves(t *testing.T) {
	doc := newDoc()

	curves := []model.Curve{
		{},
		{{X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
	}

	group := DrawTraces(doc, curves, transform.NewChain())
	if got := group.CountByName("path"); got != 1 {
		t.Errorf("Expected only the drawable curve, got %d paths", got)
	}
}

func TestDrawReferences(t *testing.T) {
	doc := newDoc()

	group := DrawReferences(doc, bedPolicy(t, transform.OriginBottomLeft))

	if doc.Root.FindByID(ReferenceGroupID) != group {
		t.Fatal("Reference group not appended to document")
	}
	if got := group.CountByName("g"); got != 4 {
		t.Fatalf("Expected 4 corner markers, got %d", got)
	}

	// Each marker holds a crosshair group (2 lines) and a text label.
	for i, marker := range group.Children {
		cross := marker.Children[0]
		if got := cross.CountByName("line"); got != 2 {
			t.Errorf("Marker %d: expected 2 crosshair lines, got %d", i, got)
		}
		if got := marker.CountByName("text"); got != 1 {
			t.Errorf("Marker %d: expected 1 label, got %d", i, got)
		}
	}
}

func TestReferenceLabelsBottomLeft(t *testing.T) {
	doc := newDoc()
	group := DrawReferences(doc, bedPolicy(t, transform.OriginBottomLeft))

	var labels []string
	for _, marker := range group.Children {
		labels = append(labels, marker.Children[1].Text)
	}

	// Corner order: TL, BL, TR, BR in document terms.
	want := []string{"0mm, 200mm", "0mm, 0mm", "300mm, 200mm", "300mm, 0mm"}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("Label %d: got %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestReferenceLabelsCenter(t *testing.T) {
	doc := newDoc()
	group := DrawReferences(doc, bedPolicy(t, transform.OriginCenter))

	if got := group.Children[0].Children[1].Text; got != "-150mm, 100mm" {
		t.Errorf("TL label: got %q, want -150mm, 100mm", got)
	}
	if got := group.Children[3].Children[1].Text; got != "150mm, -100mm" {
		t.Errorf("BR label: got %q, want 150mm, -100mm", got)
	}
}

func TestCrosshairArmDirections(t *testing.T) {
	doc := newDoc()
	group := DrawReferences(doc, bedPolicy(t, transform.OriginBottomLeft))

	// Bottom-left document corner (0, h): horizontal arm points right
	// (+1), vertical arm points up the page (-1, toward the interior).
	marker := group.Children[1]
	cross := marker.Children[0]
	horizontal, vertical := cross.Children[0], cross.Children[1]

	if got := horizontal.Attr("", "x2"); got != "7" {
		t.Errorf("Horizontal arm end x2 = %q, want 7 (pointing inward)", got)
	}
	if got := vertical.Attr("", "y2"); got != "193" {
		t.Errorf("Vertical arm end y2 = %q, want 193 (pointing inward)", got)
	}

	// Top-right corner (w, 0): horizontal arm points left, vertical down.
	marker = group.Children[2]
	cross = marker.Children[0]
	horizontal, vertical = cross.Children[0], cross.Children[1]

	if got := horizontal.Attr("", "x2"); got != "293" {
		t.Errorf("Horizontal arm end x2 = %q, want 293", got)
	}
	if got := vertical.Attr("", "y2"); got != "7" {
		t.Errorf("Vertical arm end y2 = %q, want 7", got)
	}
}

func TestLabelNudgeDirection(t *testing.T) {
	doc := newDoc()
	group := DrawReferences(doc, bedPolicy(t, transform.OriginBottomLeft))

	// Top-left corner (y=0): label above the point.
	if got := group.Children[0].Children[1].Attr("", "y"); got != "-6" {
		t.Errorf("Top corner label y = %q, want -6", got)
	}
	// Bottom-left corner (y=200): label below the point.
	if got := group.Children[1].Children[1].Attr("", "y"); got != "209" {
		t.Errorf("Bottom corner label y = %q, want 209", got)
	}
}
