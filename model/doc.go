// Package model defines the shared geometric types used across the library:
// points, bounding boxes, affine matrices, and toolpath curves.
//
// All types are plain immutable values. Coordinate-space conventions
// (document vs. machine vs. overlay space) are documented on [Point];
// functions elsewhere in the library state which space they operate in.
package model
