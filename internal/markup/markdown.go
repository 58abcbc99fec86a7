package markup

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	policy = bluemonday.UGCPolicy()
)

// Markdown converts user-authored markdown into a sanitized fragment.
// Raw HTML in src is stripped by the sanitizer. If conversion fails the
// source is returned as a single text node.
func Markdown(src string) *html.Node {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return Text(src)
	}
	clean := policy.SanitizeReader(&buf)

	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(clean, ctx)
	if err != nil {
		return Text(src)
	}
	return Fragment(nodes...)
}
