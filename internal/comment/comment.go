// Package comment renders threaded comments: author, avatar, time, content,
// an action list and nested replies.
//
// Render is a pure function. Caller-supplied nodes are copied into the
// output, never moved, so the same inputs always produce the same tree and
// can be reused across renders.
package comment

import (
	"golang.org/x/net/html"

	"github.com/evcraddock/commentkit/internal/editor"
	"github.com/evcraddock/commentkit/internal/markup"
	"github.com/evcraddock/commentkit/internal/tooltip"
)

// DefaultPrefix is the class prefix used when Props.Prefix is empty.
const DefaultPrefix = "ant-comment"

// Editor renders the comment composition form.
var Editor = editor.Render

// EditorProps configures Editor.
type EditorProps = editor.Props

type avatarKind int

const (
	avatarNone avatarKind = iota
	avatarImage
	avatarNode
)

// Avatar is either an image URL or a node rendered as-is. The zero value
// renders nothing.
type Avatar struct {
	kind avatarKind
	src  string
	node *html.Node
}

// ImageSource returns an avatar rendered as an <img> with the given source.
// An empty url still renders the image element.
func ImageSource(url string) Avatar {
	return Avatar{kind: avatarImage, src: url}
}

// PrebuiltNode returns an avatar rendered exactly as n.
func PrebuiltNode(n *html.Node) Avatar {
	return Avatar{kind: avatarNode, node: n}
}

// IsImage reports whether the avatar is an image source.
func (a Avatar) IsImage() bool {
	return a.kind == avatarImage
}

func (a Avatar) render() *html.Node {
	switch a.kind {
	case avatarImage:
		return markup.Element("img", markup.Attr("src", a.src))
	case avatarNode:
		return markup.Clone(a.node)
	}
	return nil
}

// Props configures a single comment.
type Props struct {
	Author  string
	Avatar  Avatar
	Content *html.Node
	Actions []*html.Node

	// Time is shown next to the author. TooltipTime is only used when Time
	// is set.
	Time        *html.Node
	TooltipTime *html.Node

	Style        markup.Style // outer element
	InnerStyle   markup.Style
	HeadStyle    markup.Style
	ContentStyle markup.Style

	ClassName string
	ID        string
	Prefix    string

	// Attrs are forwarded onto the outer element. class, style and id
	// entries are ignored in favour of the dedicated fields, and keys that
	// are not valid attribute names are dropped.
	Attrs markup.Attrs
}

// Render builds the comment tree. Each child is wrapped in its own nested
// container and placed after the comment block, inside a common wrapper.
func Render(p Props, children ...*html.Node) *html.Node {
	prefix := p.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	head := markup.Element("div", p.HeadStyle.Apply(markup.Attr("class", prefix+"-header")),
		markup.Element("span", markup.Attr("class", prefix+"-header-avatar"), p.Avatar.render()),
		markup.Element("div", markup.Attr("class", prefix+"-header-author"),
			markup.Element("span", markup.Attr("class", prefix+"-header-author-name"), markup.Text(p.Author)),
			timeElement(prefix, p.ID, p.Time, p.TooltipTime),
		),
	)

	content := markup.Element("div", p.ContentStyle.Apply(markup.Attr("class", prefix+"-content")),
		markup.Element("div", markup.Attr("class", prefix+"-content-detail"), markup.Clone(p.Content)),
		actionList(prefix, p.Actions),
	)

	inner := markup.Element("div", p.InnerStyle.Apply(markup.Attr("class", prefix+"-inner")),
		head,
		content,
	)

	root := markup.Element("div", nil,
		markup.Element("div", outerAttrs(p, prefix), inner),
	)
	for _, child := range children {
		if child == nil {
			continue
		}
		markup.Append(root, nested(prefix, child))
	}
	return root
}

func outerAttrs(p Props, prefix string) markup.Attrs {
	var attrs markup.Attrs
	if p.ID != "" {
		attrs = append(attrs, html.Attribute{Key: "id", Val: p.ID})
	}
	for _, a := range p.Attrs {
		switch a.Key {
		case "class", "style", "id":
			continue
		}
		if !markup.ValidAttrName(a.Key) {
			continue
		}
		attrs = attrs.Set(a.Key, a.Val)
	}
	attrs = attrs.Set("class", markup.Classes(prefix, p.ClassName))
	return p.Style.Apply(attrs)
}

// timeElement resolves the header time: nothing, a plain label, or a label
// wrapped in a tooltip showing tooltipTime. A comment id scopes the tooltip
// id so it stays unique on the page.
func timeElement(prefix, id string, t, tooltipTime *html.Node) *html.Node {
	if !present(t) {
		return nil
	}
	class := prefix + "-header-author-time"
	if !present(tooltipTime) {
		return markup.Element("span", markup.Attr("class", class), markup.Clone(t))
	}
	label := markup.Element("span",
		markup.Attr("class", markup.Classes(class, class+"-tooltip")),
		markup.Clone(t),
	)
	tp := tooltip.Props{Title: tooltipTime}
	if id != "" {
		tp.ID = id + "-time-tooltip"
	}
	return tooltip.Render(tp, label)
}

// actionList returns nil when there are no actions so no empty list is
// rendered.
func actionList(prefix string, actions []*html.Node) *html.Node {
	if len(actions) == 0 {
		return nil
	}
	ul := markup.Element("ul", markup.Attr("class", prefix+"-actions"))
	for _, a := range actions {
		markup.Append(ul, markup.Element("li", nil,
			markup.Element("span", nil, markup.Clone(a)),
		))
	}
	return ul
}

func nested(prefix string, child *html.Node) *html.Node {
	return markup.Element("div", markup.Attr("class", prefix+"-nested"), markup.Clone(child))
}

// present reports whether n would render anything. Empty text counts as
// absent.
func present(n *html.Node) bool {
	if markup.IsEmpty(n) {
		return false
	}
	return !(n.Type == html.TextNode && n.Data == "")
}
