// Package client provides an HTTP client for the comment server's REST API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/evcraddock/commentkit/internal/comment"
	"github.com/evcraddock/commentkit/internal/thread"
)

// Client is an HTTP client for the comment server API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a new API client. apiKey may be empty; it is only needed for
// moderation calls.
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListThreads returns all threads, newest first.
func (c *Client) ListThreads() ([]*thread.Thread, error) {
	var threads []*thread.Thread
	if err := c.get("/api/threads", &threads); err != nil {
		return nil, err
	}
	return threads, nil
}

// CreateThread starts a new thread.
func (c *Client) CreateThread(title string) (*thread.Thread, error) {
	body := map[string]string{"title": title}
	var t thread.Thread
	if err := c.post("/api/threads", body, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListComments returns a thread's comments in posting order.
func (c *Client) ListComments(threadID int64) ([]*thread.Comment, error) {
	var comments []*thread.Comment
	if err := c.get(fmt.Sprintf("/api/threads/%d/comments", threadID), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ListTree returns a thread's comments with replies nested under parents.
func (c *Client) ListTree(threadID int64) ([]*thread.Node, error) {
	var tree []*thread.Node
	if err := c.get(fmt.Sprintf("/api/threads/%d/comments?tree=true", threadID), &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// AddComment posts a comment or reply to a thread.
func (c *Client) AddComment(threadID int64, nc thread.NewComment) (*thread.Comment, error) {
	var comm thread.Comment
	if err := c.post(fmt.Sprintf("/api/threads/%d/comments", threadID), nc, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// DeleteComment removes a comment and its replies. Requires an API key.
func (c *Client) DeleteComment(id int64) error {
	return c.doDelete(fmt.Sprintf("/api/comments/%d", id))
}

// Render asks the server to render a comment spec tree and returns the HTML.
// An empty prefix uses the server's configured prefix.
func (c *Client) Render(spec comment.Spec, prefix string) (string, error) {
	path := "/api/render"
	if prefix != "" {
		path += "?prefix=" + url.QueryEscape(prefix)
	}

	data, err := json.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.send(req)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(path string, result any) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(path string, body any, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(path string) error {
	req, err := http.NewRequest("DELETE", c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes a request and decodes a JSON response into result.
func (c *Client) do(req *http.Request, result any) error {
	respBody, err := c.send(req)
	if err != nil {
		return err
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// send executes a request and returns the body, turning error statuses into
// errors carrying the server's message.
func (c *Client) send(req *http.Request) ([]byte, error) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			fmt.Printf("warning: closing response body: %v\n", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return nil, fmt.Errorf("%s", errResp.Error)
		}
		return nil, fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}
	return respBody, nil
}
