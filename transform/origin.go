package transform

import (
	"errors"
	"fmt"

	"github.com/tsawler/kerf/model"
)

// Policy-related errors.
var (
	// ErrUnknownOrigin is returned when a machine-origin value is not one of
	// the supported conventions. Generation must abort rather than default:
	// a silently wrong origin produces misleading coordinate labels.
	ErrUnknownOrigin = errors.New("transform: unknown machine origin")
)

// Origin fixes where machine-space (0,0) sits relative to the bed rectangle.
type Origin int

// Supported machine-origin conventions.
const (
	// OriginTopLeft places machine (0,0) at the bed's top-left with y
	// increasing downward, matching the document's native coordinate system.
	OriginTopLeft Origin = iota
	// OriginBottomLeft places machine (0,0) at the bed's bottom-left with y
	// increasing upward, the common convention for laser beds.
	OriginBottomLeft
	// OriginCenter places machine (0,0) at the bed's center with y
	// increasing upward.
	OriginCenter
)

var originNames = map[Origin]string{
	OriginTopLeft:    "top-left",
	OriginBottomLeft: "bottom-left",
	OriginCenter:     "center",
}

// ParseOrigin converts a configuration string ("top-left", "bottom-left",
// "center") to an Origin. Unrecognized values return ErrUnknownOrigin.
func ParseOrigin(s string) (Origin, error) {
	for o, name := range originNames {
		if s == name {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOrigin, s)
}

// String returns the configuration name of the origin.
func (o Origin) String() string {
	if name, ok := originNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Origin(%d)", int(o))
}

// Bed describes the laser bed: width and height in machine units plus the
// unit symbol used in coordinate labels. A Bed is read-only for the
// duration of one generation pass. Zero dimensions are legal and collapse
// all corners to a single point; no positivity validation is performed.
type Bed struct {
	Width  float64
	Height float64
	Unit   string
}

// Corner pairs a bed corner's document-space position with its
// machine-space coordinates under the configured origin convention.
type Corner struct {
	Doc     model.Point // corner position in document space
	Machine model.Point // label value in machine coordinates
}

// Policy derives the origin-dependent transform terms and corner labels for
// one generation pass. Construct with [NewPolicy]; the zero value is not
// meaningful.
type Policy struct {
	origin Origin
	bed    Bed
}

// NewPolicy validates the origin convention and returns a policy over the
// given bed. An unrecognized origin yields ErrUnknownOrigin.
func NewPolicy(origin Origin, bed Bed) (Policy, error) {
	if _, ok := originNames[origin]; !ok {
		return Policy{}, fmt.Errorf("%w: %d", ErrUnknownOrigin, int(origin))
	}
	return Policy{origin: origin, bed: bed}, nil
}

// Origin returns the policy's origin convention.
func (p Policy) Origin() Origin {
	return p.origin
}

// Bed returns the policy's bed geometry.
func (p Policy) Bed() Bed {
	return p.bed
}

// ForwardChain builds the document-to-machine chain for the external
// compiler: the configured offset translation, then the uniform scale, then
// for a centered origin the translation that moves machine (0,0) to the bed
// center.
func (p Policy) ForwardChain(offsetX, offsetY, scale float64) *Chain {
	chain := NewChain().
		Append(Translate(offsetX, offsetY)).
		Append(UniformScale(scale))

	if p.origin == OriginCenter {
		chain.Append(Translate(-p.bed.Width/2, p.bed.Height/2))
	}
	return chain
}

// FlipDocumentOrigin reports whether the curve parser should convert the
// document's top-left-down coordinates to bottom-left-up before the forward
// chain applies. It is false only for the top-left convention, which keeps
// the document's native orientation.
func (p Policy) FlipDocumentOrigin() bool {
	return p.origin != OriginTopLeft
}

// OverlayChain builds the chain that maps machine-oriented curve
// coordinates back into the document for overlay rendering. canvasHeight is
// the document's reported height in user units. For non-top-left origins
// the chain shifts by the canvas height and flips the vertical axis, so a
// bottom-left-up y value renders at document y = canvasHeight - y; a
// centered origin additionally shifts by half the bed size first. For the
// top-left convention the chain is empty (document and machine orientation
// agree).
func (p Policy) OverlayChain(canvasHeight float64) *Chain {
	chain := NewChain()

	if p.origin != OriginTopLeft {
		chain.Prepend(Scale(1, -1)).
			Prepend(Translate(0, -canvasHeight))
	}
	if p.origin == OriginCenter {
		chain.Prepend(Translate(p.bed.Width/2, p.bed.Height/2))
	}
	return chain
}

// Corners returns the four bed corners ordered top-left, bottom-left,
// top-right, bottom-right in document terms, each with the machine
// coordinates its reference label must show.
func (p Policy) Corners() []Corner {
	w, h := p.bed.Width, p.bed.Height

	doc := []model.Point{
		{X: 0, Y: 0},
		{X: 0, Y: h},
		{X: w, Y: 0},
		{X: w, Y: h},
	}

	var machine []model.Point
	switch p.origin {
	case OriginBottomLeft:
		machine = []model.Point{{X: 0, Y: h}, {X: 0, Y: 0}, {X: w, Y: h}, {X: w, Y: 0}}
	case OriginTopLeft:
		machine = []model.Point{{X: 0, Y: 0}, {X: 0, Y: h}, {X: w, Y: 0}, {X: w, Y: h}}
	default: // OriginCenter, validated in NewPolicy
		machine = []model.Point{
			{X: -w / 2, Y: h / 2},
			{X: -w / 2, Y: -h / 2},
			{X: w / 2, Y: h / 2},
			{X: w / 2, Y: -h / 2},
		}
	}

	corners := make([]Corner, 4)
	for i := range doc {
		corners[i] = Corner{Doc: doc[i], Machine: machine[i]}
	}
	return corners
}
