package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/evcraddock/commentkit/internal/comment"
	"github.com/evcraddock/commentkit/internal/thread"
)

func TestListThreads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/threads" {
			t.Errorf("path = %q, want /api/threads", r.URL.Path)
		}
		if _, ok := r.Header["Authorization"]; ok {
			t.Error("expected no Authorization header without a key")
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]*thread.Thread{{ID: 1, Title: "Launch"}}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	threads, err := c.ListThreads()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(threads) != 1 {
		t.Fatalf("got %d threads, want 1", len(threads))
	}
	if threads[0].Title != "Launch" {
		t.Errorf("title = %q", threads[0].Title)
	}
}

func TestCreateThread(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method = %s", r.Method)
		}
		var req struct{ Title string }
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Title != "Release notes" {
			t.Errorf("title = %q", req.Title)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(&thread.Thread{ID: 7, Title: req.Title}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	th, err := c.CreateThread("Release notes")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if th.ID != 7 {
		t.Errorf("id = %d", th.ID)
	}
}

func TestAddComment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/threads/3/comments" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req thread.NewComment
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Text != "agreed" || req.ParentID == nil || *req.ParentID != 2 {
			t.Errorf("request = %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(&thread.Comment{ID: 5, ThreadID: 3, ParentID: req.ParentID, Text: req.Text}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	parent := int64(2)
	c := New(srv.URL, "")
	comm, err := c.AddComment(3, thread.NewComment{Text: "agreed", ParentID: &parent})
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if comm.ID != 5 || comm.Text != "agreed" {
		t.Errorf("comment = %+v", comm)
	}
}

func TestListComments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("tree") != "" {
			t.Errorf("unexpected tree query")
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]*thread.Comment{{ID: 1, Text: "hi"}}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	comments, err := c.ListComments(1)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("got %d comments", len(comments))
	}
}

func TestListTree(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("tree") != "true" {
			t.Errorf("tree = %q, want true", r.URL.Query().Get("tree"))
		}
		tree := []*thread.Node{{
			Comment: &thread.Comment{ID: 1, Text: "root"},
			Replies: []*thread.Node{{Comment: &thread.Comment{ID: 2, Text: "reply"}}},
		}}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(tree); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	tree, err := c.ListTree(1)
	if err != nil {
		t.Fatalf("list tree: %v", err)
	}
	if len(tree) != 1 || len(tree[0].Replies) != 1 {
		t.Fatalf("tree = %+v", tree)
	}
	if tree[0].Replies[0].Comment.Text != "reply" {
		t.Errorf("reply = %q", tree[0].Replies[0].Comment.Text)
	}
}

func TestDeleteComment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "DELETE" {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.Path != "/api/comments/4" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer ck_testkey" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, "ck_testkey")
	if err := c.DeleteComment(4); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestRender(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("prefix") != "ck" {
			t.Errorf("prefix = %q", r.URL.Query().Get("prefix"))
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var spec comment.Spec
		if err := json.Unmarshal(body, &spec); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if spec.Author != "Ann" {
			t.Errorf("author = %q", spec.Author)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := io.WriteString(w, `<div class="ck"></div>`); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	out, err := c.Render(comment.Spec{Author: "Ann", Content: "Hello"}, "ck")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != `<div class="ck"></div>` {
		t.Errorf("html = %q", out)
	}
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		if err := json.NewEncoder(w).Encode(map[string]string{"error": "db exploded"}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.ListThreads()
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "db exploded" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestPlainErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	_, err := c.ListComments(99)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "server error: Not Found" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if err := json.NewEncoder(w).Encode(map[string]string{"error": "invalid API key"}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "ck_badkey")
	err := c.DeleteComment(1)
	if err == nil || err.Error() != "invalid API key" {
		t.Errorf("err = %v, want invalid API key", err)
	}
}
