// Package thread provides threaded discussions: storage, tree assembly and
// rendering through the comment widget.
package thread

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a thread or comment does not exist.
var ErrNotFound = errors.New("not found")

// Thread is a discussion that comments belong to.
type Thread struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a single message in a thread. ParentID is nil for top-level
// comments.
type Comment struct {
	ID        int64     `json:"id"`
	ThreadID  int64     `json:"thread_id"`
	ParentID  *int64    `json:"parent_id,omitempty"`
	Author    string    `json:"author"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// NewComment holds the fields a caller supplies when adding a comment.
type NewComment struct {
	ParentID  *int64 `json:"parent_id,omitempty"`
	Author    string `json:"author"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Text      string `json:"text"`
}

// Node is a comment together with its direct replies.
type Node struct {
	Comment *Comment `json:"comment"`
	Replies []*Node  `json:"replies,omitempty"`
}
