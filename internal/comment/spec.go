package comment

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/evcraddock/commentkit/internal/markup"
)

// ErrBadAttr is returned by Build for attribute keys that are not valid
// names or that would attach an event handler.
var ErrBadAttr = errors.New("attribute not allowed")

// Spec is a serialisable description of a comment and its replies, as read
// from YAML or JSON. Content is markdown; styles are inline CSS strings.
type Spec struct {
	Author       string            `json:"author" yaml:"author"`
	Avatar       string            `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Content      string            `json:"content" yaml:"content"`
	Actions      []string          `json:"actions,omitempty" yaml:"actions,omitempty"`
	Time         string            `json:"time,omitempty" yaml:"time,omitempty"`
	TooltipTime  string            `json:"tooltip_time,omitempty" yaml:"tooltip_time,omitempty"`
	Style        string            `json:"style,omitempty" yaml:"style,omitempty"`
	InnerStyle   string            `json:"inner_style,omitempty" yaml:"inner_style,omitempty"`
	HeadStyle    string            `json:"head_style,omitempty" yaml:"head_style,omitempty"`
	ContentStyle string            `json:"content_style,omitempty" yaml:"content_style,omitempty"`
	ClassName    string            `json:"class_name,omitempty" yaml:"class_name,omitempty"`
	ID           string            `json:"id,omitempty" yaml:"id,omitempty"`
	Attrs        map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Replies      []Spec            `json:"replies,omitempty" yaml:"replies,omitempty"`
}

// Build renders the spec and its replies with the given class prefix.
// Without an avatar URL the author's initial is shown instead.
func (s Spec) Build(prefix string) (*html.Node, error) {
	p := Props{
		Author:    s.Author,
		Content:   markup.Markdown(s.Content),
		ClassName: s.ClassName,
		ID:        s.ID,
		Prefix:    prefix,
	}

	if s.Avatar != "" {
		p.Avatar = ImageSource(s.Avatar)
	} else {
		p.Avatar = PrebuiltNode(LetterAvatar(s.Author, prefix))
	}
	if s.Time != "" {
		p.Time = markup.Text(s.Time)
	}
	if s.TooltipTime != "" {
		p.TooltipTime = markup.Text(s.TooltipTime)
	}
	for _, a := range s.Actions {
		p.Actions = append(p.Actions, markup.Text(a))
	}

	styles := []struct {
		src string
		dst *markup.Style
	}{
		{s.Style, &p.Style},
		{s.InnerStyle, &p.InnerStyle},
		{s.HeadStyle, &p.HeadStyle},
		{s.ContentStyle, &p.ContentStyle},
	}
	for _, st := range styles {
		parsed, err := markup.ParseStyle(st.src)
		if err != nil {
			return nil, err
		}
		*st.dst = parsed
	}

	keys := make([]string, 0, len(s.Attrs))
	for k := range s.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !markup.ValidAttrName(k) || strings.HasPrefix(strings.ToLower(k), "on") {
			return nil, fmt.Errorf("%w: %q", ErrBadAttr, k)
		}
		p.Attrs = append(p.Attrs, html.Attribute{Key: k, Val: s.Attrs[k]})
	}

	children := make([]*html.Node, 0, len(s.Replies))
	for i, r := range s.Replies {
		child, err := r.Build(prefix)
		if err != nil {
			return nil, fmt.Errorf("reply %d: %w", i, err)
		}
		children = append(children, child)
	}

	return Render(p, children...), nil
}

// LetterAvatar renders a badge holding the first letter of name, for
// authors without a picture.
func LetterAvatar(name, prefix string) *html.Node {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	letter := "?"
	if r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name)); r != utf8.RuneError {
		letter = string(unicode.ToUpper(r))
	}
	return markup.Element("span",
		markup.Attr("class", prefix+"-letter-avatar", "aria-hidden", "true"),
		markup.Text(letter),
	)
}
