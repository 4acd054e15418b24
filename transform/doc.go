// Package transform implements the affine mapping between document space
// and machine space for a laser bed.
//
// A [Chain] is an ordered sequence of translate/scale operations applied
// left-to-right to a point. Two chains matter per generation pass: the
// forward chain (document space to machine space, handed to a toolpath
// compiler) and the overlay chain (machine-oriented coordinates back to
// document space, used when drawing debug markup into the drawing). Both
// are built by
// a [Policy], which encodes the configured machine-origin convention: where
// machine (0,0) sits on the bed, which sign flips the overlay needs, and
// what machine coordinates each bed corner carries.
package transform
