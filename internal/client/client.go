// Package client provides a Go client for the Happy Thoughts API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/buger/jsonparser"

	"github.com/happythoughts/happythoughts/internal/model"
)

var (
	// ErrNotFound is returned when the server answers 404.
	ErrNotFound = errors.New("not found")
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	// Detail is the raw "error" member of the response body, if any.
	Detail json.RawMessage
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(e.Detail) > 0 {
		return fmt.Sprintf("%s (%d): %s", msg, e.Status, string(e.Detail))
	}
	return fmt.Sprintf("%s (%d)", msg, e.Status)
}

// Client is a Happy Thoughts API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New creates a new client.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ListThoughts fetches the recent feed, newest first.
func (c *Client) ListThoughts(ctx context.Context) ([]model.Thought, error) {
	var thoughts []model.Thought
	if err := c.do(ctx, http.MethodGet, "/thoughts", nil, http.StatusOK, &thoughts); err != nil {
		return nil, err
	}
	return thoughts, nil
}

// CreateThought posts a new thought and returns it as stored.
func (c *Client) CreateThought(ctx context.Context, text string) (model.Thought, error) {
	var thought model.Thought
	body := map[string]string{"text": text}
	if err := c.do(ctx, http.MethodPost, "/thoughts", body, http.StatusCreated, &thought); err != nil {
		return model.Thought{}, err
	}
	return thought, nil
}

// LikeThought records one like on the thought with the given id.
func (c *Client) LikeThought(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/thoughts/"+url.PathEscape(id)+"/like", nil, http.StatusOK, nil)
}

// Routes fetches the server's route listing.
func (c *Client) Routes(ctx context.Context) ([]model.Route, error) {
	var routes []model.Route
	if err := c.do(ctx, http.MethodGet, "/", nil, http.StatusOK, &routes); err != nil {
		return nil, err
	}
	return routes, nil
}

// Health reports whether the server and its store are up.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, http.StatusOK, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != want {
		return apiError(resp.StatusCode, respBody)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(respBody, out)
}

// apiError builds an error from a failed response. Failure bodies carry a
// "message", an "error", or both; "error" may be a string or an object.
func apiError(status int, body []byte) error {
	e := &APIError{Status: status}
	if msg, err := jsonparser.GetString(body, "message"); err == nil {
		e.Message = msg
	}
	if detail, dataType, _, err := jsonparser.Get(body, "error"); err == nil {
		switch dataType {
		case jsonparser.String:
			text, _ := jsonparser.ParseString(detail)
			if e.Message == "" {
				e.Message = text
			} else {
				e.Detail, _ = json.Marshal(text)
			}
		case jsonparser.Object, jsonparser.Array:
			e.Detail = append(json.RawMessage(nil), detail...)
		}
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, e.Error())
	}
	return e
}
