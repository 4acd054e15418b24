package svgdoc

import "encoding/xml"

// Well-known namespaces.
const (
	SVGNamespace      = "http://www.w3.org/2000/svg"
	InkscapeNamespace = "http://www.inkscape.org/namespaces/inkscape"
	SodipodiNamespace = "http://sodipodi.sourceforge.net/DTD/sodipodi-0.0.dtd"
	XLinkNamespace    = "http://www.w3.org/1999/xlink"
)

// Element is a node in the document tree: a name, attributes, child
// elements, and any character data directly inside the element.
type Element struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Element
	Text     string
}

// New creates an element in the SVG namespace.
func New(local string) *Element {
	return &Element{Name: xml.Name{Space: SVGNamespace, Local: local}}
}

// NewNS creates an element in an arbitrary namespace.
func NewNS(space, local string) *Element {
	return &Element{Name: xml.Name{Space: space, Local: local}}
}

// Attr returns the value of the named attribute, or "" if absent.
// Pass an empty space for unqualified attributes such as "id".
func (e *Element) Attr(space, local string) string {
	for _, a := range e.Attrs {
		if a.Name.Space == space && a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

// SetAttr sets or replaces the named attribute and returns the element for
// chaining.
func (e *Element) SetAttr(space, local, value string) *Element {
	for i, a := range e.Attrs {
		if a.Name.Space == space && a.Name.Local == local {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, xml.Attr{
		Name:  xml.Name{Space: space, Local: local},
		Value: value,
	})
	return e
}

// ID returns the element's unqualified id attribute.
func (e *Element) ID() string {
	return e.Attr("", "id")
}

// Append adds a child element and returns the parent for chaining.
func (e *Element) Append(child *Element) *Element {
	e.Children = append(e.Children, child)
	return e
}

// Remove removes a direct child, reporting whether it was present.
func (e *Element) Remove(child *Element) bool {
	for i, c := range e.Children {
		if c == child {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID searches the subtree rooted at e, depth-first, for an element
// whose id attribute equals id. Returns nil if no such element exists.
func (e *Element) FindByID(id string) *Element {
	if e.ID() == id {
		return e
	}
	for _, c := range e.Children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// RemoveByID removes the first element with the given id from the subtree
// rooted at e, reporting whether anything was removed. The root itself is
// never removed.
func (e *Element) RemoveByID(id string) bool {
	for _, c := range e.Children {
		if c.ID() == id {
			return e.Remove(c)
		}
		if c.RemoveByID(id) {
			return true
		}
	}
	return false
}

// CountByName returns how many direct children of e have the given local
// name in the SVG namespace.
func (e *Element) CountByName(local string) int {
	n := 0
	for _, c := range e.Children {
		if c.Name.Space == SVGNamespace && c.Name.Local == local {
			n++
		}
	}
	return n
}
