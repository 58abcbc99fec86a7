package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/evcraddock/commentkit/internal/auth"
	"github.com/evcraddock/commentkit/internal/comment"
	"github.com/evcraddock/commentkit/internal/markup"
	"github.com/evcraddock/commentkit/internal/thread"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiListThreads returns all threads as JSON.
func (s *Server) apiListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := s.threads.ListThreads()
	if err != nil {
		apiError(w, fmt.Sprintf("listing threads: %v", err), http.StatusInternalServerError)
		return
	}
	if threads == nil {
		threads = []*thread.Thread{}
	}
	apiJSON(w, threads, http.StatusOK)
}

// apiCreateThread creates a thread from {"title": "..."}.
func (s *Server) apiCreateThread(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		apiError(w, "title is required", http.StatusBadRequest)
		return
	}

	t, err := s.threads.CreateThread(req.Title)
	if err != nil {
		apiError(w, fmt.Sprintf("creating thread: %v", err), http.StatusInternalServerError)
		return
	}
	apiJSON(w, t, http.StatusCreated)
}

// apiListComments returns a thread's comments. ?tree=true nests replies.
func (s *Server) apiListComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apiError(w, "invalid thread ID", http.StatusBadRequest)
		return
	}

	if _, err := s.threads.GetThread(id); err != nil {
		if errors.Is(err, thread.ErrNotFound) {
			apiError(w, "thread not found", http.StatusNotFound)
			return
		}
		apiError(w, fmt.Sprintf("loading thread: %v", err), http.StatusInternalServerError)
		return
	}

	comments, err := s.threads.ListComments(id)
	if err != nil {
		apiError(w, fmt.Sprintf("listing comments: %v", err), http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("tree") == "true" {
		tree := thread.BuildTree(comments)
		if tree == nil {
			tree = []*thread.Node{}
		}
		apiJSON(w, tree, http.StatusOK)
		return
	}
	if comments == nil {
		comments = []*thread.Comment{}
	}
	apiJSON(w, comments, http.StatusOK)
}

// apiAddComment adds a comment (or reply) to a thread.
func (s *Server) apiAddComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apiError(w, "invalid thread ID", http.StatusBadRequest)
		return
	}

	var req thread.NewComment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		apiError(w, "text is required", http.StatusBadRequest)
		return
	}

	c, err := s.threads.AddComment(id, req)
	if errors.Is(err, thread.ErrNotFound) {
		apiError(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		apiError(w, fmt.Sprintf("adding comment: %v", err), http.StatusBadRequest)
		return
	}
	apiJSON(w, c, http.StatusCreated)
}

// apiDeleteComment removes a comment and its replies. Requires an API key.
func (s *Server) apiDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		apiError(w, "invalid comment ID", http.StatusBadRequest)
		return
	}

	if err := s.threads.DeleteComment(id); err != nil {
		if errors.Is(err, thread.ErrNotFound) {
			apiError(w, "comment not found", http.StatusNotFound)
			return
		}
		apiError(w, fmt.Sprintf("deleting comment: %v", err), http.StatusInternalServerError)
		return
	}
	slog.Info("comment deleted", "comment", id, "key", auth.KeyName(r.Context()))
	w.WriteHeader(http.StatusNoContent)
}

// apiRender renders a comment spec tree to HTML. Only JSON bodies are
// accepted so plain cross-site form posts cannot reach it.
func (s *Server) apiRender(w http.ResponseWriter, r *http.Request) {
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		apiError(w, "content type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var spec comment.Spec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = s.prefix
	}

	n, err := spec.Build(prefix)
	if err != nil {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := markup.Render(w, n); err != nil {
		apiError(w, fmt.Sprintf("rendering: %v", err), http.StatusInternalServerError)
	}
}
