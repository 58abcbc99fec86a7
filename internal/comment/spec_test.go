package comment

import (
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"

	"github.com/evcraddock/commentkit/internal/markup"
)

const threadYAML = `
author: Ann
avatar: http://x/a.png
content: Hello **there**
actions: [Reply, Like]
time: 2h ago
tooltip_time: "2026-10-19 08:00"
head_style: "background: #fafafa"
attrs:
  data-id: "1"
replies:
  - author: bob
    content: First reply
    replies:
      - author: Cy
        content: Deep reply
  - author: Dee
    content: Second reply
`

func TestSpecBuild(t *testing.T) {
	var s Spec
	if err := yaml.Unmarshal([]byte(threadYAML), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	n, err := s.Build("")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup.String(n)))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	root := doc.Find("body").Children().First()
	top := root.Children().First()

	if top.Find(".ant-comment-content-detail strong").Text() != "there" {
		t.Error("expected markdown content")
	}
	if top.Find(".ant-tooltip-trigger").Length() != 1 {
		t.Error("expected tooltip time")
	}
	if s, _ := top.Find(".ant-comment-header").Attr("style"); s != "background: #fafafa" {
		t.Errorf("head style = %q", s)
	}
	if v, _ := top.Attr("data-id"); v != "1" {
		t.Errorf("data-id = %q", v)
	}

	nested := root.ChildrenFiltered(".ant-comment-nested")
	if nested.Length() != 2 {
		t.Fatalf("got %d replies, want 2", nested.Length())
	}
	if got := nested.Eq(0).Find(".ant-comment-letter-avatar").First().Text(); got != "B" {
		t.Errorf("letter avatar = %q, want B", got)
	}
	if nested.Eq(0).Find(".ant-comment-nested").Length() != 1 {
		t.Error("expected deep reply nested under first reply")
	}
}

func TestSpecBuildRejectsUnsafeAttrs(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
	}{
		{"tag breakout", Spec{Attrs: map[string]string{"x><script>alert(1)</script><b y": "v"}}},
		{"event handler", Spec{Attrs: map[string]string{"onclick": "alert(1)"}}},
		{"mixed case handler", Spec{Attrs: map[string]string{"OnMouseOver": "alert(1)"}}},
		{"empty key", Spec{Attrs: map[string]string{"": "v"}}},
		{"in reply", Spec{Replies: []Spec{{Attrs: map[string]string{"a b": "v"}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.spec.Build("")
			if !errors.Is(err, ErrBadAttr) {
				t.Fatalf("err = %v, want ErrBadAttr", err)
			}
			if n != nil {
				t.Error("expected no tree on error")
			}
		})
	}
}

func TestSpecBuildKeepsSafeAttrs(t *testing.T) {
	s := Spec{Author: "Ann", Attrs: map[string]string{"data-x": "1", "aria-label": "note"}}
	n, err := s.Build("")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	out := markup.String(n)
	if !strings.Contains(out, `aria-label="note"`) || !strings.Contains(out, `data-x="1"`) {
		t.Errorf("expected safe attributes in %s", out)
	}
}

func TestLetterAvatar(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ann", "A"},
		{"  émile", "É"},
		{"", "?"},
	}
	for _, tt := range tests {
		if got := markup.TextContent(LetterAvatar(tt.name, "")); got != tt.want {
			t.Errorf("LetterAvatar(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
