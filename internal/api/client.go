// Package api is the single point of HTTP access to the blogging
// platform backend. Every call is a direct passthrough of the parsed
// response body: no retry, no caching, no coalescing of identical
// in-flight requests.
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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/techikansh/blogging-platform/internal/types"
	"github.com/techikansh/blogging-platform/internal/utils"
)

// TokenSource supplies the bearer token attached to outgoing requests.
// An empty token means no Authorization header is sent; the server is
// the authority on access control.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-token TokenSource, useful for scripts and tests.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client issues REST calls against the backend.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  TokenSource
}

// NewClient creates a client for the given base URL. tokens may be nil
// for unauthenticated use.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
	}
}

// GetPosts lists posts, optionally filtered by category and/or tag.
func (c *Client) GetPosts(ctx context.Context, category, tag string) (types.PostEnvelope, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	if tag != "" {
		params.Set("tag", tag)
	}

	path := "/post/get-posts"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var env types.PostEnvelope
	err := c.do(ctx, http.MethodGet, path, nil, &env)
	return env, err
}

// GetPost fetches a single post by id. Content holds at most one element.
func (c *Client) GetPost(ctx context.Context, id int) (types.PostEnvelope, error) {
	var env types.PostEnvelope
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/post/get-post/%d", id), nil, &env)
	return env, err
}

// GetBookmarks fetches the current user's bookmarked posts. Requires an
// auth token.
func (c *Client) GetBookmarks(ctx context.Context) (types.PostEnvelope, error) {
	var env types.PostEnvelope
	err := c.do(ctx, http.MethodGet, "/post/get-bookmarks", nil, &env)
	return env, err
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, req types.CreatePostRequest) (types.MutationResponse, error) {
	var resp types.MutationResponse
	err := c.do(ctx, http.MethodPost, "/post/create-post", req, &resp)
	return resp, err
}

// LikePost registers a like. The response does not echo the updated
// entity; the caller applies the counter increment locally.
func (c *Client) LikePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/post/%d/like", id), nil, nil)
}

// BookmarkPost toggles a bookmark on a post.
func (c *Client) BookmarkPost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/post/bookmark-post/%d", id), nil, nil)
}

// SharePost registers a share.
func (c *Client) SharePost(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/post/%d/share", id), nil, nil)
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (types.AuthResponse, error) {
	var resp types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/authenticate", types.LoginRequest{Email: email, Password: password}, &resp)
	return resp, err
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, email, password string) (types.AuthResponse, error) {
	var resp types.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", types.RegisterRequest{Name: name, Email: email, Password: password}, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.New().String()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	utils.Zlog.Debug("api request",
		zap.String("requestId", requestID),
		zap.String("method", method),
		zap.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		utils.Zlog.Warn("api request rejected",
			zap.String("requestId", requestID),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("api returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
