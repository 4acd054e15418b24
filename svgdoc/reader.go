package svgdoc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// Reader-related errors.
var (
	ErrNotSVG        = errors.New("svgdoc: root element is not an svg element")
	ErrEmptyDocument = errors.New("svgdoc: document contains no elements")
	ErrMissingHeight = errors.New("svgdoc: root element has no height attribute")
	ErrMissingWidth  = errors.New("svgdoc: root element has no width attribute")
	ErrBadCanvasSize = errors.New("svgdoc: canvas size attribute is not numeric")
)

// Document is an in-memory SVG document.
type Document struct {
	Root *Element
}

// Open parses an SVG file from a path.
func Open(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads an SVG document from r. Documents declaring a non-UTF-8
// encoding are decoded through their declared charset.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	root, err := parseElement(dec, nil)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	if root.Name.Local != "svg" {
		return nil, fmt.Errorf("%w: got <%s>", ErrNotSVG, root.Name.Local)
	}

	return &Document{Root: root}, nil
}

// parseElement consumes tokens until the first element below parent is
// complete. A nil parent means read the root element; subsequent calls
// recurse. Comments, directives, and processing instructions are dropped.
func parseElement(dec *xml.Decoder, parent *Element) (*Element, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parsing XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name}
			for _, a := range t.Attr {
				// Namespace declarations are re-synthesized on output.
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				el.Attrs = append(el.Attrs, a)
			}
			if err := parseChildren(dec, el); err != nil {
				return nil, err
			}
			if parent == nil {
				return el, nil
			}
			parent.Children = append(parent.Children, el)

		case xml.CharData:
			if parent != nil {
				if s := strings.TrimSpace(string(t)); s != "" {
					parent.Text += s
				}
			}

		case xml.EndElement:
			return nil, nil
		}
	}
}

// parseChildren consumes tokens until el's end tag.
func parseChildren(dec *xml.Decoder, el *Element) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parsing XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			child := &Element{Name: t.Name}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || (a.Name.Space == "" && a.Name.Local == "xmlns") {
					continue
				}
				child.Attrs = append(child.Attrs, a)
			}
			if err := parseChildren(dec, child); err != nil {
				return err
			}
			el.Children = append(el.Children, child)

		case xml.CharData:
			if s := strings.TrimSpace(string(t)); s != "" {
				el.Text += s
			}

		case xml.EndElement:
			return nil
		}
	}
}

// canvasUnits are the length-unit suffixes stripped when reading the
// document size. Order matters: longer suffixes first.
var canvasUnits = []string{"mm", "cm", "in", "px", "pt", "pc"}

// CanvasHeight returns the document's height in user units, read from the
// root height attribute. A trailing length unit is stripped; anything else
// non-numeric is an error rather than a guess, since the overlay flip
// depends on this value.
func (d *Document) CanvasHeight() (float64, error) {
	return d.canvasLength("height", ErrMissingHeight)
}

// CanvasWidth returns the document's width in user units, read from the
// root width attribute.
func (d *Document) CanvasWidth() (float64, error) {
	return d.canvasLength("width", ErrMissingWidth)
}

func (d *Document) canvasLength(attr string, missing error) (float64, error) {
	raw := d.Root.Attr("", attr)
	if raw == "" {
		return 0, missing
	}

	s := strings.TrimSpace(raw)
	for _, unit := range canvasUnits {
		if strings.HasSuffix(s, unit) {
			s = strings.TrimSuffix(s, unit)
			break
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadCanvasSize, raw)
	}
	return v, nil
}
