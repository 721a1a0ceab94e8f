// Package apiclient calls the admin HTTP API from Go (CLI, scripts, tests).
//
// Every non-2xx response becomes an *APIError whose Message is a fixed,
// operation-level text such as "Failed to fetch berita". No retries, no
// caching.
package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New membuat client untuk server di baseURL (mis. http://localhost:3000).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError: Message generik per operasi; Detail = field "error" dari server.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string { return e.Message }

func IsNotFound(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}

type errorBody struct {
	Error string `json:"error"`
}

// do mengirim body JSON (bila ada) dan decode response ke out (bila ada).
// failMsg dipakai untuk semua kegagalan, termasuk jaringan.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any, failMsg string) error {
	var body io.Reader
	if in != nil {
		b, err := sonic.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: %w", failMsg, err)
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("%s: %w", failMsg, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req, out, failMsg)
}

func (c *Client) send(req *http.Request, out any, failMsg string) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: failMsg, Detail: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: failMsg, Detail: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = sonic.Unmarshal(raw, &eb)
		return &APIError{Status: resp.StatusCode, Message: failMsg, Detail: eb.Error}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: failMsg, Detail: err.Error()}
	}
	return nil
}

type successBody struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Slug    string `json:"slug,omitempty"`
}

func escape(key string) string { return url.PathEscape(key) }
