package svgdoc

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
)

// Canonical output prefixes for the namespaces the library understands.
// The SVG namespace is the default (unprefixed) namespace.
var canonicalPrefixes = map[string]string{
	SVGNamespace:      "",
	InkscapeNamespace: "inkscape",
	SodipodiNamespace: "sodipodi",
	XLinkNamespace:    "xlink",
}

// WriteTo serializes the document to w with an XML header, declaring every
// namespace used in the tree on the root element.
func (d *Document) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(xml.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	p := newPrefixer(d.Root)
	if err := p.writeElement(bw, d.Root, true); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}

// Save writes the document to a file.
func (d *Document) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := d.WriteTo(f); err != nil {
		return err
	}
	return f.Sync()
}

// prefixer maps namespace URIs to output prefixes for one serialization.
type prefixer struct {
	prefixes map[string]string
}

func newPrefixer(root *Element) *prefixer {
	p := &prefixer{prefixes: map[string]string{}}
	p.collect(root)
	return p
}

// collect walks the tree assigning a prefix to every namespace in use.
// Unknown namespaces get generated ns1, ns2, ... prefixes.
func (p *prefixer) collect(e *Element) {
	p.assign(e.Name.Space)
	for _, a := range e.Attrs {
		if a.Name.Space != "" {
			p.assign(a.Name.Space)
		}
	}
	for _, c := range e.Children {
		p.collect(c)
	}
}

func (p *prefixer) assign(space string) {
	if space == "" {
		return
	}
	if _, ok := p.prefixes[space]; ok {
		return
	}
	if canonical, ok := canonicalPrefixes[space]; ok {
		p.prefixes[space] = canonical
		return
	}
	p.prefixes[space] = fmt.Sprintf("ns%d", len(p.prefixes)+1)
}

// qualify returns the prefixed name for an element or attribute name.
func (p *prefixer) qualify(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	prefix := p.prefixes[n.Space]
	if prefix == "" {
		return n.Local
	}
	return prefix + ":" + n.Local
}

// declarations returns the xmlns attributes for the root element, sorted
// for reproducible output.
func (p *prefixer) declarations() []string {
	decls := make([]string, 0, len(p.prefixes))
	for space, prefix := range p.prefixes {
		if prefix == "" {
			decls = append(decls, fmt.Sprintf(`xmlns="%s"`, escape(space)))
		} else {
			decls = append(decls, fmt.Sprintf(`xmlns:%s="%s"`, prefix, escape(space)))
		}
	}
	sort.Strings(decls)
	return decls
}

func (p *prefixer) writeElement(w *bufio.Writer, e *Element, isRoot bool) error {
	name := p.qualify(e.Name)

	if _, err := w.WriteString("<" + name); err != nil {
		return err
	}

	if isRoot {
		for _, decl := range p.declarations() {
			if _, err := w.WriteString("\n    " + decl); err != nil {
				return err
			}
		}
	}

	for _, a := range e.Attrs {
		if _, err := fmt.Fprintf(w, ` %s="%s"`, p.qualify(a.Name), escape(a.Value)); err != nil {
			return err
		}
	}

	if len(e.Children) == 0 && e.Text == "" {
		_, err := w.WriteString("/>")
		return err
	}

	if _, err := w.WriteString(">"); err != nil {
		return err
	}
	if e.Text != "" {
		if _, err := w.WriteString(escape(e.Text)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := p.writeElement(w, c, false); err != nil {
			return err
		}
	}

	_, err := w.WriteString("</" + name + ">")
	return err
}

// escape returns s with XML special characters escaped.
func escape(s string) string {
	var buf bytes.Buffer
	// EscapeText only fails on a failing writer; bytes.Buffer never fails.
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
