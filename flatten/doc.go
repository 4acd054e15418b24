// Package flatten extracts toolpath curves from an SVG document tree.
//
// Shapes are approximated as connected line-segment chains ([model.Curve])
// in document coordinates; curved geometry (cubic and quadratic Béziers,
// circles, ellipses) is subdivided to a configurable tolerance. The package
// covers the drawing primitives a laser job actually cuts: line, rect,
// polyline, polygon, circle, ellipse, and path. Unsupported path commands
// are reported as errors, never skipped silently.
package flatten
