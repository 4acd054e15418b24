// Package schema reads declarative parameter descriptors in the Inkscape
// extension (.inx) format: an XML file enumerating the options an
// extension exposes, their types, defaults, and for enumerations the
// allowed values. Loading one gives a CLI (or a host) its option surface
// without declaring every parameter twice.
package schema

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

// ExtensionNamespace is the namespace of Inkscape extension descriptors.
const ExtensionNamespace = "http://www.inkscape.org/namespace/inkscape/extension"

// Loading errors.
var (
	ErrUnnamedParam   = errors.New("schema: param without a name")
	ErrUnknownType    = errors.New("schema: unknown param type")
	ErrDuplicateParam = errors.New("schema: duplicate param name")
)

// Type is a parameter's value type.
type Type string

// Parameter types understood by the loader. Descriptive entries
// (description, notebook) carry no value and are skipped.
const (
	Int    Type = "int"
	Float  Type = "float"
	Bool   Type = "boolean"
	String Type = "string"
	Enum   Type = "enum"
	Path   Type = "path"
)

// Param is one declared parameter.
type Param struct {
	Name    string
	Type    Type
	Default string
	Choices []string // allowed values, for Enum params only
}

// Allows reports whether a value is acceptable for the parameter. For
// non-enum parameters every value is allowed; type conversion is the
// caller's concern.
func (p Param) Allows(value string) bool {
	if p.Type != Enum {
		return true
	}
	for _, c := range p.Choices {
		if c == value {
			return true
		}
	}
	return false
}

// FloatDefault returns the parameter's default as a float, or fallback if
// absent or non-numeric.
func (p Param) FloatDefault(fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(p.Default), 64)
	if err != nil {
		return fallback
	}
	return v
}

// Schema is a loaded parameter descriptor.
type Schema struct {
	Name   string // human-readable extension name
	Params []Param

	byName map[string]int
}

// Lookup returns the named parameter.
func (s *Schema) Lookup(name string) (Param, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Param{}, false
	}
	return s.Params[i], true
}

// Default returns the named parameter's default value, or fallback if the
// parameter is not declared.
func (s *Schema) Default(name, fallback string) string {
	if p, ok := s.Lookup(name); ok && p.Default != "" {
		return p.Default
	}
	return fallback
}

// FloatDefault returns the named parameter's default as a float.
func (s *Schema) FloatDefault(name string, fallback float64) float64 {
	p, ok := s.Lookup(name)
	if !ok {
		return fallback
	}
	return p.FloatDefault(fallback)
}

// xmlParam mirrors the <param> element. Params nest inside notebook pages.
type xmlParam struct {
	Name  string    `xml:"name,attr"`
	Type  string    `xml:"type,attr"`
	Value string    `xml:",chardata"`
	Items []xmlItem `xml:"item"`
	Pages []xmlPage `xml:"page"`
}

type xmlItem struct {
	Value string `xml:"value,attr"`
	Label string `xml:",chardata"`
}

type xmlPage struct {
	Params []xmlParam `xml:"param"`
	Pages  []xmlPage  `xml:"page"`
}

type xmlRoot struct {
	Name   string     `xml:"name"`
	Params []xmlParam `xml:"param"`
}

// LoadFile reads a descriptor from a path.
func LoadFile(filename string) (*Schema, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening descriptor: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load reads a descriptor from r.
func Load(r io.Reader) (*Schema, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root xmlRoot
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parsing descriptor: %w", err)
	}

	s := &Schema{
		Name:   strings.TrimSpace(root.Name),
		byName: map[string]int{},
	}
	if err := s.collect(root.Params); err != nil {
		return nil, err
	}
	return s, nil
}

// collect flattens params, recursing into notebook pages. Descriptive
// entries are skipped; anything else with an unrecognized type is an
// error rather than a silent drop.
func (s *Schema) collect(params []xmlParam) error {
	for _, xp := range params {
		switch xp.Type {
		case "description":
			continue
		case "notebook":
			for _, page := range xp.Pages {
				if err := s.collectPage(page); err != nil {
					return err
				}
			}
			continue
		}

		if xp.Name == "" {
			return ErrUnnamedParam
		}

		t := Type(xp.Type)
		switch t {
		case Int, Float, Bool, String, Enum, Path:
		default:
			return fmt.Errorf("%w: %q (param %q)", ErrUnknownType, xp.Type, xp.Name)
		}

		p := Param{Name: xp.Name, Type: t}
		if t == Enum {
			for _, item := range xp.Items {
				p.Choices = append(p.Choices, item.Value)
			}
			if len(p.Choices) > 0 {
				p.Default = p.Choices[0]
			}
		} else {
			p.Default = strings.TrimSpace(xp.Value)
		}

		if _, dup := s.byName[p.Name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateParam, p.Name)
		}
		s.byName[p.Name] = len(s.Params)
		s.Params = append(s.Params, p)
	}
	return nil
}

func (s *Schema) collectPage(page xmlPage) error {
	if err := s.collect(page.Params); err != nil {
		return err
	}
	for _, sub := range page.Pages {
		if err := s.collectPage(sub); err != nil {
			return err
		}
	}
	return nil
}
