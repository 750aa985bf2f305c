package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// StatusError is returned when the service answers with a non-success
// status. All non-2xx responses are treated uniformly.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d %s", e.Code, http.StatusText(e.Code))
}

// Client talks to the notes collection service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// FeedURL returns the websocket endpoint of the change feed,
// derived from the base URL.
func (c *Client) FeedURL() string {
	url := c.baseURL + "/api/notes/ws"
	if strings.HasPrefix(url, "https://") {
		return "wss://" + strings.TrimPrefix(url, "https://")
	}
	return "ws://" + strings.TrimPrefix(url, "http://")
}

type noteBody struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (c *Client) List(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (c *Client) Create(ctx context.Context, title, content string) (Note, error) {
	var note Note
	body := noteBody{Title: title, Content: content}
	if err := c.do(ctx, http.MethodPost, "/api/notes", body, &note); err != nil {
		return Note{}, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (c *Client) Update(ctx context.Context, id, title, content string) (Note, error) {
	var note Note
	body := noteBody{Title: title, Content: content}
	if err := c.do(ctx, http.MethodPut, "/api/notes/"+id, body, &note); err != nil {
		return Note{}, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/notes/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Code: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
