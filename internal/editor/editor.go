// Package editor renders the comment composition form and parses what it
// submits.
package editor

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/evcraddock/commentkit/internal/markup"
)

// DefaultPrefix is the class prefix used when Props.Prefix is empty.
const DefaultPrefix = "ant-comment-editor"

// Form field names.
const (
	FieldText   = "text"
	FieldAuthor = "author"
	FieldParent = "parent_id"
)

var (
	// ErrEmptyText is returned when a submission has no comment text.
	ErrEmptyText = errors.New("comment text is required")
	// ErrBadParent is returned when parent_id is present but not an integer.
	ErrBadParent = errors.New("invalid parent comment ID")
)

// Props configures the editor form.
type Props struct {
	Action      string // form action URL
	Target      string // HTMX swap target selector; empty disables HTMX attributes
	Value       string
	Placeholder string
	Rows        int
	SubmitLabel string
	Submitting  bool
	ShowAuthor  bool
	ParentID    *int64
	Prefix      string
}

// Render builds the editor form.
func Render(p Props) *html.Node {
	prefix := p.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	rows := p.Rows
	if rows <= 0 {
		rows = 4
	}
	label := p.SubmitLabel
	if label == "" {
		label = "Add Comment"
	}

	formAttrs := markup.Attr("class", prefix, "method", "post")
	if p.Action != "" {
		formAttrs = formAttrs.Set("action", p.Action)
		if p.Target != "" {
			formAttrs = formAttrs.Set("hx-post", p.Action).Set("hx-target", p.Target).Set("hx-swap", "outerHTML")
		}
	}

	form := markup.Element("form", formAttrs)

	if p.ParentID != nil {
		markup.Append(form, markup.Element("input", markup.Attr(
			"type", "hidden",
			"name", FieldParent,
			"value", strconv.FormatInt(*p.ParentID, 10),
		)))
	}

	if p.ShowAuthor {
		markup.Append(form, markup.Element("div", markup.Attr("class", prefix+"-author"),
			markup.Element("input", markup.Attr(
				"type", "text",
				"name", FieldAuthor,
				"placeholder", "Your name",
				"class", prefix+"-author-input",
			)),
		))
	}

	areaAttrs := markup.Attr(
		"name", FieldText,
		"rows", strconv.Itoa(rows),
		"class", prefix+"-textarea",
	)
	if p.Placeholder != "" {
		areaAttrs = areaAttrs.Set("placeholder", p.Placeholder)
	}

	buttonAttrs := markup.Attr("type", "submit", "class", prefix+"-submit")
	if p.Submitting {
		buttonAttrs = buttonAttrs.Set("disabled", "").Set("aria-busy", "true")
	}

	markup.Append(form,
		markup.Element("div", markup.Attr("class", prefix+"-input"),
			markup.Element("textarea", areaAttrs, markup.Text(p.Value)),
		),
		markup.Element("div", markup.Attr("class", prefix+"-footer"),
			markup.Element("button", buttonAttrs, markup.Text(label)),
		),
	)

	return form
}

// Submission is a parsed editor post.
type Submission struct {
	Text     string
	Author   string
	ParentID *int64
}

// ParseSubmission reads an editor form post from r.
func ParseSubmission(r *http.Request) (Submission, error) {
	if err := r.ParseForm(); err != nil {
		return Submission{}, fmt.Errorf("parsing form: %w", err)
	}

	s := Submission{
		Text:   strings.TrimSpace(r.FormValue(FieldText)),
		Author: strings.TrimSpace(r.FormValue(FieldAuthor)),
	}
	if s.Text == "" {
		return Submission{}, ErrEmptyText
	}

	if raw := strings.TrimSpace(r.FormValue(FieldParent)); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Submission{}, fmt.Errorf("%w: %s", ErrBadParent, raw)
		}
		s.ParentID = &id
	}

	return s, nil
}
