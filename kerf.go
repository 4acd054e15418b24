// Package kerf previews and verifies laser-cutting toolpaths inside SVG
// drawings. It computes the affine mapping between the drawing's
// coordinate space and a laser bed's machine space under configurable
// origin conventions, and regenerates a non-destructive debug overlay that
// shows what the machine will actually cut: directional traces over every
// toolpath and labeled reference markers at the bed's four corners.
//
// Basic usage:
//
//	doc, err := kerf.Open("drawing.svg").
//	    Bed(300, 200).
//	    Origin(transform.OriginBottomLeft).
//	    Overlay()
//	if err != nil {
//	    // handle error
//	}
//	err = doc.Save("drawing.svg")
//
// The forward document-to-machine mapping is available separately for
// toolpath compilers:
//
//	chain, err := kerf.Open("drawing.svg").Bed(300, 200).ForwardChain()
//
// Repeated Overlay calls are idempotent: prior overlay groups are removed
// before fresh ones are appended, and production geometry is never
// touched.
package kerf

import (
	"fmt"
	"image"
	"io"

	"github.com/tsawler/kerf/flatten"
	"github.com/tsawler/kerf/model"
	"github.com/tsawler/kerf/overlay"
	"github.com/tsawler/kerf/preview"
	"github.com/tsawler/kerf/svgdoc"
	"github.com/tsawler/kerf/transform"
)

// Job provides a fluent interface for one toolpath preview pass over a
// drawing. Each configuration method returns a new Job instance, making
// chains safe to fork and reuse.
type Job struct {
	// Source
	filename string
	doc      *svgdoc.Document

	// Configuration
	options JobOptions

	// Accumulated error (fail-fast)
	err error
}

// Open prepares a job over an SVG file. The file is read lazily by the
// first terminal operation.
func Open(filename string) *Job {
	return &Job{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromDocument prepares a job over an already-parsed document. The
// document is mutated in place by Overlay.
func FromDocument(doc *svgdoc.Document) *Job {
	return &Job{
		doc:     doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// clone creates a copy of the Job so configuration methods never mutate
// their receiver.
func (j *Job) clone() *Job {
	return &Job{
		filename: j.filename,
		doc:      j.doc,
		options:  j.options.clone(),
		err:      j.err,
	}
}

// Bed sets the laser bed dimensions in machine units. Zero dimensions are
// legal and collapse the reference markers to a single point.
func (j *Job) Bed(width, height float64) *Job {
	n := j.clone()
	n.options.bed.Width = width
	n.options.bed.Height = height
	return n
}

// Unit sets the unit symbol appended to reference-marker labels.
func (j *Job) Unit(unit string) *Job {
	n := j.clone()
	n.options.bed.Unit = unit
	return n
}

// Origin sets the machine-origin convention.
func (j *Job) Origin(origin transform.Origin) *Job {
	n := j.clone()
	n.options.origin = origin
	return n
}

// OriginName sets the machine-origin convention from its configuration
// name ("top-left", "bottom-left", "center"). Unrecognized names fail the
// job at the next terminal operation.
func (j *Job) OriginName(name string) *Job {
	n := j.clone()
	origin, err := transform.ParseOrigin(name)
	if err != nil {
		n.err = err
		return n
	}
	n.options.origin = origin
	return n
}

// Offset sets the horizontal and vertical machine offsets applied before
// scaling.
func (j *Job) Offset(dx, dy float64) *Job {
	n := j.clone()
	n.options.offsetX = dx
	n.options.offsetY = dy
	return n
}

// ScaleFactor sets the uniform scale applied after the offset.
func (j *Job) ScaleFactor(s float64) *Job {
	n := j.clone()
	n.options.scale = s
	return n
}

// Tolerance sets the curve-approximation tolerance in user units.
func (j *Job) Tolerance(t float64) *Job {
	n := j.clone()
	n.options.tolerance = t
	return n
}

// ensureDocument opens and parses the source file if needed.
func (j *Job) ensureDocument() error {
	if j.err != nil {
		return j.err
	}
	if j.doc != nil {
		return nil
	}
	if j.filename == "" {
		return fmt.Errorf("no document specified")
	}
	doc, err := svgdoc.Open(j.filename)
	if err != nil {
		return fmt.Errorf("failed to open SVG: %w", err)
	}
	j.doc = doc
	return nil
}

// policy builds the origin policy for the configured bed and convention.
func (j *Job) policy() (transform.Policy, error) {
	return transform.NewPolicy(j.options.origin, j.options.bed)
}

// ForwardChain returns the document-to-machine transform chain for the
// configured offsets, scale, and origin convention. This is the mapping a
// toolpath compiler consumes.
func (j *Job) ForwardChain() (*transform.Chain, error) {
	if j.err != nil {
		return nil, j.err
	}
	p, err := j.policy()
	if err != nil {
		return nil, err
	}
	return p.ForwardChain(j.options.offsetX, j.options.offsetY, j.options.scale), nil
}

// Curves parses the drawing's shapes and returns them as machine-space
// curves: flattened to line segments, reoriented for the machine origin,
// and mapped through the forward chain. Any prior overlay is removed
// first so it never feeds back into the toolpath.
func (j *Job) Curves() ([]model.Curve, error) {
	if err := j.ensureDocument(); err != nil {
		return nil, err
	}
	p, err := j.policy()
	if err != nil {
		return nil, err
	}
	canvasHeight, err := j.doc.CanvasHeight()
	if err != nil {
		return nil, err
	}

	overlay.Clear(j.doc)
	return j.machineCurves(p, canvasHeight)
}

// machineCurves extracts document curves and maps them into machine space.
// The document must already be free of overlay groups.
func (j *Job) machineCurves(p transform.Policy, canvasHeight float64) ([]model.Curve, error) {
	docCurves, err := flatten.Extract(j.doc, flatten.Options{Tolerance: j.options.tolerance})
	if err != nil {
		return nil, err
	}

	forward := p.ForwardChain(j.options.offsetX, j.options.offsetY, j.options.scale)

	// For non-top-left origins the document's top-left-down coordinates
	// are reoriented to bottom-left-up before the forward chain applies.
	var flip *transform.Chain
	if p.FlipDocumentOrigin() {
		flip = transform.NewChain().
			Append(transform.Translate(0, -canvasHeight)).
			Append(transform.Scale(1, -1))
	}

	curves := make([]model.Curve, len(docCurves))
	for i, c := range docCurves {
		if flip != nil {
			c = flip.ApplyCurve(c)
		}
		curves[i] = forward.ApplyCurve(c)
	}
	return curves, nil
}

// Overlay runs a full generation pass: any prior overlay groups are
// removed, the drawing's shapes are parsed into machine-space curves, and
// fresh trace and reference overlay groups are appended. The mutated
// document is returned; with identical inputs, repeated calls produce
// identical overlay contents and never duplicate groups.
func (j *Job) Overlay() (*svgdoc.Document, error) {
	if err := j.ensureDocument(); err != nil {
		return nil, err
	}
	p, err := j.policy()
	if err != nil {
		return nil, err
	}
	canvasHeight, err := j.doc.CanvasHeight()
	if err != nil {
		return nil, err
	}

	overlay.Clear(j.doc)

	curves, err := j.machineCurves(p, canvasHeight)
	if err != nil {
		return nil, err
	}

	overlay.DrawTraces(j.doc, curves, p.OverlayChain(canvasHeight))
	overlay.DrawReferences(j.doc, p)
	return j.doc, nil
}

// Preview runs a generation pass and rasterizes the resulting overlay
// scene (traces plus corner markers) into an image of the given size for
// quick visual verification. The document's overlay groups are regenerated
// as a side effect, exactly as by Overlay.
func (j *Job) Preview(width, height int) (*image.RGBA, error) {
	if err := j.ensureDocument(); err != nil {
		return nil, err
	}
	p, err := j.policy()
	if err != nil {
		return nil, err
	}
	canvasHeight, err := j.doc.CanvasHeight()
	if err != nil {
		return nil, err
	}
	canvasWidth, err := j.doc.CanvasWidth()
	if err != nil {
		return nil, err
	}

	overlay.Clear(j.doc)
	curves, err := j.machineCurves(p, canvasHeight)
	if err != nil {
		return nil, err
	}
	overlay.DrawTraces(j.doc, curves, p.OverlayChain(canvasHeight))
	overlay.DrawReferences(j.doc, p)
	oc := p.OverlayChain(canvasHeight)
	docCurves := make([]model.Curve, len(curves))
	for i, c := range curves {
		docCurves[i] = oc.ApplyCurve(c)
	}

	scene := preview.Scene{
		Canvas:  model.BBox{Width: canvasWidth, Height: canvasHeight},
		Curves:  docCurves,
		Corners: p.Corners(),
		Unit:    j.options.bed.Unit,
	}
	return preview.Render(scene, preview.Options{Width: width, Height: height}), nil
}

// Document returns the parsed document, loading it if necessary.
func (j *Job) Document() (*svgdoc.Document, error) {
	if err := j.ensureDocument(); err != nil {
		return nil, err
	}
	return j.doc, nil
}

// WriteTo serializes the job's document to w.
func (j *Job) WriteTo(w io.Writer) error {
	if err := j.ensureDocument(); err != nil {
		return err
	}
	return j.doc.WriteTo(w)
}

// Save writes the job's document to a file.
func (j *Job) Save(filename string) error {
	if err := j.ensureDocument(); err != nil {
		return err
	}
	return j.doc.Save(filename)
}
