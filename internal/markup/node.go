// Package markup provides the render-tree primitives shared by the widgets.
// A render tree is a plain golang.org/x/net/html node graph; fragments are
// document nodes whose children are spliced into the parent on append.
package markup

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attrs is an ordered list of element attributes.
type Attrs []html.Attribute

// Attr builds an Attrs from alternating key/value pairs.
// A trailing key without a value is dropped.
func Attr(kv ...string) Attrs {
	a := make(Attrs, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		a = append(a, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return a
}

// Get returns the value for key.
func (a Attrs) Get(key string) (string, bool) {
	for _, at := range a {
		if at.Key == key {
			return at.Val, true
		}
	}
	return "", false
}

// Set returns a copy of a with key set to val, replacing any existing entry.
func (a Attrs) Set(key, val string) Attrs {
	out := make(Attrs, 0, len(a)+1)
	found := false
	for _, at := range a {
		if at.Key == key {
			if !found {
				out = append(out, html.Attribute{Key: key, Val: val})
				found = true
			}
			continue
		}
		out = append(out, at)
	}
	if !found {
		out = append(out, html.Attribute{Key: key, Val: val})
	}
	return out
}

// ValidAttrName reports whether key can be written as an attribute name.
// html.Render copies names verbatim, so anything else could close the tag.
func ValidAttrName(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// Element builds an element node. Nil children are skipped, fragments are
// flattened, and children already attached elsewhere are cloned so the
// caller's tree is never modified.
func Element(tag string, attrs Attrs, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if len(attrs) > 0 {
		n.Attr = make([]html.Attribute, len(attrs))
		copy(n.Attr, attrs)
	}
	Append(n, children...)
	return n
}

// Text builds a text node.
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// Fragment groups sibling nodes without a wrapping element.
func Fragment(children ...*html.Node) *html.Node {
	f := &html.Node{Type: html.DocumentNode}
	Append(f, children...)
	return f
}

// Append adds children to parent using the same rules as Element.
func Append(parent *html.Node, children ...*html.Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Type == html.DocumentNode {
			for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
				Append(parent, gc)
			}
			continue
		}
		if c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
			c = Clone(c)
		}
		parent.AppendChild(c)
	}
}

// Clone returns a detached deep copy of n.
func Clone(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		c.AppendChild(Clone(ch))
	}
	return c
}

// IsEmpty reports whether n is nil or an empty fragment.
func IsEmpty(n *html.Node) bool {
	return n == nil || (n.Type == html.DocumentNode && n.FirstChild == nil)
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Render writes n as HTML.
func Render(w io.Writer, n *html.Node) error {
	if n == nil {
		return nil
	}
	return html.Render(w, n)
}

// String renders n to a string. Render errors only come from the writer,
// which cannot fail for a bytes.Buffer.
func String(n *html.Node) string {
	var buf bytes.Buffer
	_ = Render(&buf, n)
	return buf.String()
}
