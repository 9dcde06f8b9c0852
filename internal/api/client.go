// Package api provides a typed client for the Keeper of Tales backend:
// authentication, chat history persistence and the book lookups.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/talekeeper/keeper/pkg/version"
)

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 15 * time.Second

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// Client talks to the backend at a fixed base URL. It is safe for
// concurrent use. The session token is carried by value: WithToken returns
// a copy, so no global token state is shared between callers.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewClient creates a Client for baseURL. A nil httpClient gets a client
// with DefaultTimeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// WithToken returns a copy of c that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// HasToken reports whether authenticated calls can be made.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Login exchanges username and password for a session.
func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a new account and returns its session.
func (c *Client) Signup(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var out AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, creds, false, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetChat fetches the stored messages of a conversation.
func (c *Client) GetChat(ctx context.Context, chatID string) (*Chat, error) {
	if chatID == "" {
		return nil, ErrEmptyChatID
	}
	var out Chat
	if err := c.do(ctx, http.MethodGet, "/chat/"+url.PathEscape(chatID), nil, nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveMessage appends one message to the chat store.
func (c *Client) SaveMessage(ctx context.Context, req SaveMessageRequest) (*SaveMessageResponse, error) {
	var out SaveMessageResponse
	if err := c.do(ctx, http.MethodPost, "/chat", nil, req, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommendations lists books of a genre.
func (c *Client) Recommendations(ctx context.Context, genre string) ([]Book, error) {
	var out []Book
	q := url.Values{"genre": {genre}}
	if err := c.do(ctx, http.MethodGet, "/chatbot/recommendations", q, nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BooksByAuthor lists books written by author.
func (c *Client) BooksByAuthor(ctx context.Context, author string) ([]Book, error) {
	var out []Book
	q := url.Values{"author": {author}}
	if err := c.do(ctx, http.MethodGet, "/chatbot/author", q, nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SimilarBooks lists books similar to title.
func (c *Client) SimilarBooks(ctx context.Context, title string) ([]Book, error) {
	var out []Book
	q := url.Values{"title": {title}}
	if err := c.do(ctx, http.MethodGet, "/chatbot/similar-books", q, nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PopularBooks lists the most read and wished-for books.
func (c *Client) PopularBooks(ctx context.Context) ([]PopularBook, error) {
	var out []PopularBook
	if err := c.do(ctx, http.MethodGet, "/popular-books", nil, nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PopularAuthors lists the most read and wished-for authors.
func (c *Client) PopularAuthors(ctx context.Context) ([]PopularAuthor, error) {
	var out []PopularAuthor
	if err := c.do(ctx, http.MethodGet, "/popular-authors", nil, nil, false, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do performs one request and decodes a JSON response into out.
// A null or empty body leaves out at its zero value.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, auth bool, out any) error {
	if auth && c.token == "" {
		return ErrNoToken
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp)
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read %s %s: %w", method, path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode %s %s: %w", method, path, err)
	}
	return nil
}

// newStatusError builds a StatusError, pulling "message" or "error" from a
// JSON body when present.
func newStatusError(resp *http.Response) *StatusError {
	se := &StatusError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return se
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil {
		se.Message = body.Message
		if se.Message == "" {
			se.Message = body.Error
		}
	}
	return se
}
