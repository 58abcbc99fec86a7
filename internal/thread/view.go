package thread

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/net/html"

	"github.com/evcraddock/commentkit/internal/comment"
	"github.com/evcraddock/commentkit/internal/markup"
)

// TooltipLayout formats the absolute time shown in the time tooltip.
const TooltipLayout = "2006-01-02 15:04"

// ViewOptions controls how a comment tree is rendered.
type ViewOptions struct {
	Prefix string
	// Now is the reference for relative times. Zero means time.Now().
	Now time.Time
	// ReplyURL returns the target of the Reply action. Nil omits the action.
	ReplyURL func(c *Comment) string
}

// Render renders the whole tree as a fragment of top-level comments.
func Render(roots []*Node, opts ViewOptions) *html.Node {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	frag := markup.Fragment()
	for _, n := range roots {
		markup.Append(frag, renderNode(n, opts))
	}
	return frag
}

func renderNode(n *Node, opts ViewOptions) *html.Node {
	c := n.Comment

	author := c.Author
	if author == "" {
		author = "anonymous"
	}

	avatar := comment.PrebuiltNode(comment.LetterAvatar(author, opts.Prefix))
	if c.AvatarURL != "" {
		avatar = comment.ImageSource(c.AvatarURL)
	}

	id := strconv.FormatInt(c.ID, 10)
	p := comment.Props{
		Author:  author,
		Avatar:  avatar,
		Content: markup.Markdown(c.Text),
		Time: markup.Element("time",
			markup.Attr("datetime", c.CreatedAt.UTC().Format(time.RFC3339)),
			markup.Text(humanize.RelTime(c.CreatedAt, opts.Now, "ago", "from now")),
		),
		TooltipTime: markup.Text(c.CreatedAt.UTC().Format(TooltipLayout)),
		ID:          "comment-" + id,
		Prefix:      opts.Prefix,
		Attrs:       markup.Attr("data-comment-id", id),
	}

	if opts.ReplyURL != nil {
		p.Actions = append(p.Actions, markup.Element("a",
			markup.Attr("href", opts.ReplyURL(c), "class", "reply-link"),
			markup.Text("Reply"),
		))
	}

	children := make([]*html.Node, 0, len(n.Replies))
	for _, r := range n.Replies {
		children = append(children, renderNode(r, opts))
	}

	return comment.Render(p, children...)
}
