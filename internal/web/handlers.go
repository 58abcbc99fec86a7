package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/evcraddock/commentkit/internal/comment"
	"github.com/evcraddock/commentkit/internal/editor"
	"github.com/evcraddock/commentkit/internal/markup"
	"github.com/evcraddock/commentkit/internal/thread"
)

type listData struct {
	Threads []*thread.Thread
}

type threadData struct {
	Thread   *thread.Thread
	Count    int
	Comments template.HTML
	Editor   template.HTML
	ReplyTo  *thread.Comment
	Error    string
}

// handleList renders the thread list page.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	threads, err := s.threads.ListThreads()
	if err != nil {
		s.serverError(w, "loading threads", err)
		return
	}
	s.render(w, "list.html", listData{Threads: threads})
}

// handleThreadPost creates a thread from the list page form.
func (s *Server) handleThreadPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		http.Error(w, "Thread title is required", http.StatusBadRequest)
		return
	}

	t, err := s.threads.CreateThread(title)
	if err != nil {
		s.serverError(w, "creating thread", err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/thread/%d", t.ID), http.StatusSeeOther)
}

// handleThread renders a thread with its comments and the editor. A
// ?reply={id} query targets the editor at that comment.
func (s *Server) handleThread(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var replyTo *int64
	if raw := r.URL.Query().Get("reply"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			replyTo = &v
		}
	}

	data, err := s.loadThread(id, replyTo)
	if errors.Is(err, thread.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.serverError(w, "loading thread", err)
		return
	}

	s.render(w, "thread.html", data)
}

// handleCommentPost accepts an editor submission via HTMX or form POST.
func (s *Server) handleCommentPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	sub, err := editor.ParseSubmission(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err = s.threads.AddComment(id, thread.NewComment{
		ParentID: sub.ParentID,
		Author:   sub.Author,
		Text:     sub.Text,
	})
	if errors.Is(err, thread.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Error adding comment: %v", err), http.StatusBadRequest)
		return
	}

	// If HTMX request, return just the thread partial
	if r.Header.Get("HX-Request") == "true" {
		data, err := s.loadThread(id, nil)
		if err != nil {
			s.serverError(w, "loading thread", err)
			return
		}
		s.renderPartial(w, "thread-partial", data)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/thread/%d", id), http.StatusSeeOther)
}

// loadThread assembles the page data for a thread. replyTo is ignored when
// it does not name a comment in the thread.
func (s *Server) loadThread(id int64, replyTo *int64) (threadData, error) {
	t, err := s.threads.GetThread(id)
	if err != nil {
		return threadData{}, err
	}

	comments, err := s.threads.ListComments(id)
	if err != nil {
		return threadData{}, err
	}

	data := threadData{Thread: t, Count: len(comments)}
	if replyTo != nil {
		for _, c := range comments {
			if c.ID == *replyTo {
				data.ReplyTo = c
				break
			}
		}
		if data.ReplyTo == nil {
			replyTo = nil
		}
	}

	tree := thread.Render(thread.BuildTree(comments), thread.ViewOptions{
		Prefix: s.prefix,
		Now:    s.now(),
		ReplyURL: func(c *thread.Comment) string {
			return fmt.Sprintf("/thread/%d?reply=%d#editor", id, c.ID)
		},
	})

	placeholder := "Write a comment"
	label := "Add Comment"
	if data.ReplyTo != nil {
		placeholder = "Write a reply"
		label = "Reply"
	}
	form := comment.Editor(comment.EditorProps{
		Action:      fmt.Sprintf("/thread/%d/comment", id),
		Target:      "#thread",
		Placeholder: placeholder,
		SubmitLabel: label,
		ShowAuthor:  true,
		ParentID:    replyTo,
		Prefix:      s.prefix + "-editor",
	})

	// Both fragments are built by the markup package, which escapes text,
	// and comment bodies pass through the markdown sanitizer.
	data.Comments = template.HTML(markup.String(tree))
	data.Editor = template.HTML(markup.String(form))
	return data, nil
}

// render executes a full page template with layout.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("rendering template", "template", name, "error", err)
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
	}
}

// renderPartial executes a named template block (no layout).
func (s *Server) renderPartial(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("rendering partial", "template", name, "error", err)
		http.Error(w, fmt.Sprintf("Error rendering partial: %v", err), http.StatusInternalServerError)
	}
}

func (s *Server) serverError(w http.ResponseWriter, what string, err error) {
	slog.Error(what, "error", err)
	http.Error(w, fmt.Sprintf("Error %s: %v", what, err), http.StatusInternalServerError)
}

// pathID parses the {id} path value.
func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
