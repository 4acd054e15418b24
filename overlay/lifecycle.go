package overlay

import "github.com/tsawler/kerf/svgdoc"

// Stable identifiers of the two overlay groups. These match the ids the
// original Inkscape extension used, so documents stay interchangeable.
const (
	TraceGroupID     = "debug_traces"
	ReferenceGroupID = "debug_references"
)

// Clear removes any existing trace and reference overlay groups from the
// document. Absence of either group is not an error; calling Clear on an
// already-clean document changes nothing. Production geometry is never
// touched.
func Clear(doc *svgdoc.Document) {
	doc.Root.RemoveByID(TraceGroupID)
	doc.Root.RemoveByID(ReferenceGroupID)
}

// newLayerGroup creates an overlay container group carrying the Inkscape
// layer metadata that makes it independently toggleable in the host.
func newLayerGroup(id, label string) *svgdoc.Element {
	g := svgdoc.New("g")
	g.SetAttr("", "id", id)
	g.SetAttr(svgdoc.InkscapeNamespace, "groupmode", "layer")
	g.SetAttr(svgdoc.InkscapeNamespace, "label", label)
	return g
}
