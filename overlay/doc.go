// Package overlay renders the debug overlay that proves what the laser
// will actually cut: directional traces over every toolpath and labeled
// crosshair markers at the bed's four corners.
//
// The overlay lives in two uniquely identified layer groups,
// [TraceGroupID] and [ReferenceGroupID]. [Clear] removes any prior groups
// before a generation pass appends fresh ones, so regeneration is
// idempotent and never touches production geometry.
package overlay
