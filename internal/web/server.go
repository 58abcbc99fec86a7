// Package web provides the HTTP server for browsing and posting to comment
// threads.
package web

import (
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/evcraddock/commentkit/internal/auth"
	"github.com/evcraddock/commentkit/internal/comment"
	"github.com/evcraddock/commentkit/internal/logging"
	"github.com/evcraddock/commentkit/internal/thread"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Options configures the server.
type Options struct {
	// Prefix is the class prefix for rendered comments.
	Prefix string
}

// Server is the web UI and JSON API HTTP server.
type Server struct {
	threads   *thread.Repository
	guard     *auth.Guard
	templates *template.Template
	mux       *http.ServeMux
	prefix    string
	now       func() time.Time
}

// NewServer creates a web server backed by the given database.
func NewServer(db *sql.DB, opts Options) (*Server, error) {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = comment.DefaultPrefix
	}

	funcMap := template.FuncMap{
		"since": humanize.Time,
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	s := &Server{
		threads:   thread.NewRepository(db),
		guard:     auth.NewGuard(auth.NewAPIKeyStore(db)),
		templates: tmpl,
		mux:       http.NewServeMux(),
		prefix:    prefix,
		now:       time.Now,
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /{$}", s.handleList)
	s.mux.HandleFunc("POST /{$}", s.handleThreadPost)
	s.mux.HandleFunc("GET /thread/{id}", s.handleThread)
	s.mux.HandleFunc("POST /thread/{id}/comment", s.handleCommentPost)

	s.mux.HandleFunc("GET /api/threads", s.apiListThreads)
	s.mux.HandleFunc("POST /api/threads", s.apiCreateThread)
	s.mux.HandleFunc("GET /api/threads/{id}/comments", s.apiListComments)
	s.mux.HandleFunc("POST /api/threads/{id}/comments", s.apiAddComment)
	s.mux.HandleFunc("DELETE /api/comments/{id}", s.guard.Require(s.apiDeleteComment))
	s.mux.HandleFunc("POST /api/render", s.apiRender)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server with request logging.
func (s *Server) ListenAndServe(port int) error {
	addr := fmt.Sprintf(":%d", port)
	slog.Info("starting web UI", "addr", "http://localhost"+addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           logging.RequestLogger(s),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
