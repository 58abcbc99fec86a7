package markup

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"
)

// Classes joins non-empty class names with single spaces.
func Classes(names ...string) string {
	parts := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, " ")
}

// Declaration is a single inline CSS declaration.
type Declaration struct {
	Property  string `json:"property" yaml:"property"`
	Value     string `json:"value" yaml:"value"`
	Important bool   `json:"important,omitempty" yaml:"important,omitempty"`
}

// Style is an ordered set of inline CSS declarations.
type Style []Declaration

// ParseStyle parses an inline style attribute value such as
// "color: red; margin-left: 4px".
func ParseStyle(s string) (Style, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	decls, err := parser.ParseDeclarations(s)
	if err != nil {
		return nil, fmt.Errorf("parsing style %q: %w", s, err)
	}
	st := make(Style, 0, len(decls))
	for _, d := range decls {
		st = append(st, Declaration{Property: d.Property, Value: d.Value, Important: d.Important})
	}
	return st, nil
}

// Set returns a copy of s with property set to value. An existing
// declaration keeps its position.
func (s Style) Set(property, value string) Style {
	out := make(Style, 0, len(s)+1)
	found := false
	for _, d := range s {
		if d.Property == property {
			if !found {
				out = append(out, Declaration{Property: property, Value: value})
				found = true
			}
			continue
		}
		out = append(out, d)
	}
	if !found {
		out = append(out, Declaration{Property: property, Value: value})
	}
	return out
}

// String serialises the declarations in order.
func (s Style) String() string {
	parts := make([]string, 0, len(s))
	for _, d := range s {
		if d.Property == "" {
			continue
		}
		v := d.Value
		if d.Important {
			v += " !important"
		}
		parts = append(parts, d.Property+": "+v)
	}
	return strings.Join(parts, "; ")
}

// Apply returns attrs with a style attribute added when s is non-empty.
func (s Style) Apply(attrs Attrs) Attrs {
	if v := s.String(); v != "" {
		return attrs.Set("style", v)
	}
	return attrs
}
