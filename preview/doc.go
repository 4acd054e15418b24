// Package preview rasterizes a toolpath overlay scene into an image.
//
// It draws the same things the SVG overlay shows: toolpath traces in red
// and bed-corner crosshairs with machine-coordinate labels in black, on a
// white background, scaled to fit the requested image size. It is meant
// for quick visual checks from the command line or from tests, not for
// production rendering.
package preview
