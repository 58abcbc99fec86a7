package thread

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Repository provides CRUD operations for threads and their comments.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a thread repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateThread starts a new discussion.
func (r *Repository) CreateThread(title string) (*Thread, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("thread title is required")
	}

	result, err := r.db.Exec("INSERT INTO threads (title) VALUES (?)", title)
	if err != nil {
		return nil, fmt.Errorf("inserting thread: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetThread(id)
}

// GetThread returns a thread by ID.
func (r *Repository) GetThread(id int64) (*Thread, error) {
	var t Thread
	err := r.db.QueryRow(
		"SELECT id, title, created_at FROM threads WHERE id = ?", id,
	).Scan(&t.ID, &t.Title, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("thread %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading thread: %w", err)
	}
	return &t, nil
}

// ListThreads returns all threads, newest first.
func (r *Repository) ListThreads() (threads []*Thread, err error) {
	rows, err := r.db.Query("SELECT id, title, created_at FROM threads ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing threads: %w", err)
	}
	defer closeRows(rows, &err)

	for rows.Next() {
		var t Thread
		if err := rows.Scan(&t.ID, &t.Title, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning thread: %w", err)
		}
		threads = append(threads, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating threads: %w", err)
	}

	return threads, nil
}

// AddComment adds a comment to a thread. A reply's parent must belong to
// the same thread.
func (r *Repository) AddComment(threadID int64, nc NewComment) (*Comment, error) {
	text := strings.TrimSpace(nc.Text)
	if text == "" {
		return nil, fmt.Errorf("comment text is required")
	}

	if _, err := r.GetThread(threadID); err != nil {
		return nil, err
	}

	if nc.ParentID != nil {
		parent, err := r.GetComment(*nc.ParentID)
		if err != nil {
			return nil, fmt.Errorf("parent comment: %w", err)
		}
		if parent.ThreadID != threadID {
			return nil, fmt.Errorf("parent comment %d belongs to thread %d", parent.ID, parent.ThreadID)
		}
	}

	result, err := r.db.Exec(
		"INSERT INTO comments (thread_id, parent_id, author, avatar_url, text) VALUES (?, ?, ?, ?, ?)",
		threadID, nc.ParentID, strings.TrimSpace(nc.Author), strings.TrimSpace(nc.AvatarURL), text,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetComment(id)
}

const commentColumns = "id, thread_id, parent_id, author, avatar_url, text, created_at"

// GetComment returns a comment by ID.
func (r *Repository) GetComment(id int64) (*Comment, error) {
	c, err := scanComment(r.db.QueryRow("SELECT "+commentColumns+" FROM comments WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading comment: %w", err)
	}
	return c, nil
}

// ListComments returns all comments for a thread, oldest first.
func (r *Repository) ListComments(threadID int64) (comments []*Comment, err error) {
	rows, err := r.db.Query(
		"SELECT "+commentColumns+" FROM comments WHERE thread_id = ? ORDER BY id ASC",
		threadID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer closeRows(rows, &err)

	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// DeleteComment removes a comment by ID. Replies are removed with it.
func (r *Repository) DeleteComment(id int64) error {
	result, err := r.db.Exec("DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(s scanner) (*Comment, error) {
	var c Comment
	var parent sql.NullInt64
	if err := s.Scan(&c.ID, &c.ThreadID, &parent, &c.Author, &c.AvatarURL, &c.Text, &c.CreatedAt); err != nil {
		return nil, err
	}
	if parent.Valid {
		c.ParentID = &parent.Int64
	}
	return &c, nil
}

// closeRows closes rows and reports a close failure through err unless an
// earlier error is already set.
func closeRows(rows io.Closer, err *error) {
	if cerr := rows.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("closing rows: %w", cerr)
	}
}
