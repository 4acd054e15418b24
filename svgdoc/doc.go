// Package svgdoc provides a small mutable document tree for SVG files.
//
// It exists so the overlay renderers can append, find, and remove nodes in
// a drawing without depending on a host application's DOM. The tree is
// namespace-aware (SVG, Inkscape, Sodipodi, and XLink namespaces get stable
// prefixes on output) but deliberately simple: elements, attributes, and
// character data. Comments and processing instructions are dropped on
// parse.
//
// Parsing is charset-aware via golang.org/x/net/html/charset, so documents
// declaring non-UTF-8 encodings decode correctly.
package svgdoc
