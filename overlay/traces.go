package overlay

import (
	"strconv"
	"strings"

	"github.com/tsawler/kerf/model"
	"github.com/tsawler/kerf/svgdoc"
	"github.com/tsawler/kerf/transform"
)

// Fixed visual style of the trace overlay.
const (
	traceColor       = "red"
	traceStrokeWidth = "0.5"
	arrowMarkerID    = "trace_arrow"
)

// DrawTraces appends a fresh trace overlay group to the document: one
// arrow-annotated path per curve, with every vertex mapped through the
// overlay chain. Curves are rendered in input order; an empty curve emits
// no path element but is not an error. The created group is returned.
//
// Callers are expected to run [Clear] first; DrawTraces itself never
// removes anything.
func DrawTraces(doc *svgdoc.Document, curves []model.Curve, chain *transform.Chain) *svgdoc.Element {
	group := newLayerGroup(TraceGroupID, "debug laser traces")
	group.Append(arrowDefs())

	for _, curve := range curves {
		if curve.IsEmpty() {
			continue
		}
		group.Append(tracePath(chain.ApplyCurve(curve)))
	}

	doc.Root.Append(group)
	return group
}

// tracePath builds the path element for one overlay-space curve.
func tracePath(curve model.Curve) *svgdoc.Element {
	var d strings.Builder
	for i, p := range curve {
		if i == 0 {
			d.WriteString("M ")
		} else {
			d.WriteString(" L ")
		}
		d.WriteString(formatCoord(p.X))
		d.WriteByte(',')
		d.WriteString(formatCoord(p.Y))
	}

	path := svgdoc.New("path")
	path.SetAttr("", "d", d.String())
	path.SetAttr("", "style",
		"stroke:"+traceColor+";stroke-width:"+traceStrokeWidth+";fill:none")
	// Direction arrows at every segment boundary.
	path.SetAttr("", "marker-mid", "url(#"+arrowMarkerID+")")
	path.SetAttr("", "marker-end", "url(#"+arrowMarkerID+")")
	return path
}

// arrowDefs builds the defs block with the directional arrowhead marker
// referenced by every trace path.
func arrowDefs() *svgdoc.Element {
	marker := svgdoc.New("marker")
	marker.SetAttr("", "id", arrowMarkerID)
	marker.SetAttr("", "orient", "auto")
	marker.SetAttr("", "markerWidth", "4")
	marker.SetAttr("", "markerHeight", "4")
	marker.SetAttr("", "refX", "2")
	marker.SetAttr("", "refY", "2")

	head := svgdoc.New("path")
	head.SetAttr("", "d", "M 0,0 L 4,2 L 0,4 Z")
	head.SetAttr("", "style", "fill:"+traceColor)
	marker.Append(head)

	defs := svgdoc.New("defs")
	defs.Append(marker)
	return defs
}

// formatCoord renders a coordinate with the shortest exact representation.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
