package overlay

import (
	"github.com/tsawler/kerf/svgdoc"
	"github.com/tsawler/kerf/transform"
)

// Fixed visual style of the reference markers.
const (
	markerStrokeWidth = 2.0
	markerArmLength   = 7.0
	markerFontSize    = "6"
	labelXOffset      = -28.0
	// Label y-offsets keep the text clear of the crosshair: corners on the
	// canvas top edge (y<=0) get the label above the point, the rest below.
	labelYTopEdge    = -6.0
	labelYBottomEdge = 9.0
)

// DrawReferences appends a fresh reference overlay group to the document:
// one crosshair plus machine-coordinate label per bed corner, labels taken
// from the origin policy. Crosshair arms point toward the bed interior.
// The created group is returned.
func DrawReferences(doc *svgdoc.Document, policy transform.Policy) *svgdoc.Element {
	group := newLayerGroup(ReferenceGroupID, "debug reference points")
	unit := policy.Bed().Unit

	for _, corner := range policy.Corners() {
		group.Append(referenceMarker(corner, unit))
	}

	doc.Root.Append(group)
	return group
}

// referenceMarker builds one corner's crosshair and label.
func referenceMarker(corner transform.Corner, unit string) *svgdoc.Element {
	x, y := corner.Doc.X, corner.Doc.Y

	// Arm directions chosen so both arms point into the bed regardless of
	// which corner the marker sits at.
	xDir := 1.0
	if x > 0 {
		xDir = -1
	}
	yDir := 1.0
	if y > 0 {
		yDir = -1
	}

	cross := svgdoc.New("g")

	horizontal := svgdoc.New("line")
	horizontal.SetAttr("", "x1", formatCoord(x-xDir*markerStrokeWidth/2))
	horizontal.SetAttr("", "y1", formatCoord(y))
	horizontal.SetAttr("", "x2", formatCoord(x+xDir*markerArmLength))
	horizontal.SetAttr("", "y2", formatCoord(y))
	horizontal.SetAttr("", "style", crosshairStyle())
	cross.Append(horizontal)

	vertical := svgdoc.New("line")
	vertical.SetAttr("", "x1", formatCoord(x))
	vertical.SetAttr("", "y1", formatCoord(y+markerStrokeWidth/2))
	vertical.SetAttr("", "x2", formatCoord(x))
	vertical.SetAttr("", "y2", formatCoord(y+yDir*markerArmLength))
	vertical.SetAttr("", "style", crosshairStyle())
	cross.Append(vertical)

	labelY := y + labelYTopEdge
	if y > 0 {
		labelY = y + labelYBottomEdge
	}

	label := svgdoc.New("text")
	label.SetAttr("", "x", formatCoord(x+labelXOffset))
	label.SetAttr("", "y", formatCoord(labelY))
	label.SetAttr("", "font-size", markerFontSize)
	label.Text = formatCoord(corner.Machine.X) + unit + ", " +
		formatCoord(corner.Machine.Y) + unit

	marker := svgdoc.New("g")
	marker.Append(cross)
	marker.Append(label)
	return marker
}

func crosshairStyle() string {
	return "stroke:black;stroke-width:" + formatCoord(markerStrokeWidth)
}
