// Package tooltip decorates an element with hover and focus content.
package tooltip

import (
	"fmt"
	"hash/fnv"

	"golang.org/x/net/html"

	"github.com/evcraddock/commentkit/internal/markup"
)

// DefaultPrefix is the class prefix used when Props.Prefix is empty.
const DefaultPrefix = "ant-tooltip"

// Props configures a tooltip.
type Props struct {
	Title     *html.Node
	Placement string // top, bottom, left or right; defaults to top
	Prefix    string

	// ID is the bubble element id. When empty one is derived from the
	// prefix and title, which repeats for identical titles on one page.
	ID string
}

// Render wraps child so that Title is shown on hover or focus. The child is
// placed unchanged inside the wrapper. A nil Title returns the child as-is.
func Render(p Props, child *html.Node) *html.Node {
	if markup.IsEmpty(p.Title) {
		return child
	}

	prefix := p.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	placement := p.Placement
	if placement == "" {
		placement = "top"
	}

	title := markup.TextContent(p.Title)
	id := p.ID
	if id == "" {
		id = bubbleID(prefix, title)
	}

	bubble := markup.Element("span",
		markup.Attr(
			"class", markup.Classes(prefix, prefix+"-placement-"+placement),
			"role", "tooltip",
			"id", id,
		),
		markup.Element("span", markup.Attr("class", prefix+"-inner"), markup.Clone(p.Title)),
	)

	return markup.Element("span",
		markup.Attr(
			"class", prefix+"-trigger",
			"tabindex", "0",
			"title", title,
			"aria-describedby", id,
		),
		markup.Clone(child),
		bubble,
	)
}

// bubbleID derives a stable element id from the title so identical inputs
// always render identical markup.
func bubbleID(prefix, title string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prefix))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(title))
	return fmt.Sprintf("%s-%08x", prefix, h.Sum32())
}
