// Package gateway reads posts, users and comments from the remote JSONPlaceholder-style API.
// It knows nothing about local overrides.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/javaloayza/postboard/config"
	"github.com/javaloayza/postboard/metrics"
	"github.com/javaloayza/postboard/models"
	"github.com/javaloayza/postboard/utils"
)

const userAgent = "Postboard/1.0 (compatible; PostboardClient/1.0)"

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// Retries is the number of extra attempts for failed GETs.
	Retries int
	// Backoff is the pause before the first retry; it grows linearly.
	Backoff    time.Duration
	HTTPClient *http.Client
}

// Client talks to the remote API.
type Client struct {
	baseURL string
	http    *http.Client
	retries int
	backoff time.Duration
}

func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://jsonplaceholder.typicode.com"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Backoff == 0 {
		opts.Backoff = 300 * time.Millisecond
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    hc,
		retries: opts.Retries,
		backoff: opts.Backoff,
	}
}

// NewClientFromConfig builds a Client from the remote section of cfg.
func NewClientFromConfig(cfg config.AppConfig) *Client {
	return NewClient(Options{
		BaseURL: cfg.RemoteBaseURL,
		Timeout: time.Duration(cfg.RemoteTimeoutSec) * time.Second,
		Retries: cfg.RemoteRetryAttempts,
	})
}

func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := c.get(ctx, "posts", "/posts", &posts)
	return posts, err
}

func (c *Client) GetPost(ctx context.Context, id int) (models.Post, error) {
	var post models.Post
	err := c.get(ctx, "post", "/posts/"+strconv.Itoa(id), &post)
	return post, err
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.get(ctx, "users", "/users", &users)
	return users, err
}

func (c *Client) GetUser(ctx context.Context, id int) (models.User, error) {
	var user models.User
	err := c.get(ctx, "user", "/users/"+strconv.Itoa(id), &user)
	return user, err
}

func (c *Client) ListComments(ctx context.Context, postID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.get(ctx, "comments", "/posts/"+strconv.Itoa(postID)+"/comments", &comments)
	return comments, err
}

// CreatePost POSTs a post. The remote echoes it back with an id but does not keep it.
func (c *Client) CreatePost(ctx context.Context, in models.PostInput) (models.Post, error) {
	var post models.Post
	err := c.send(ctx, http.MethodPost, "create", "/posts", in, &post)
	return post, err
}

// UpdatePost PUTs the full post. The remote echoes the result but does not keep it.
func (c *Client) UpdatePost(ctx context.Context, post models.Post) (models.Post, error) {
	var out models.Post
	err := c.send(ctx, http.MethodPut, "update", "/posts/"+strconv.Itoa(post.ID), post, &out)
	return out, err
}

func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, "delete", "/posts/"+strconv.Itoa(id), nil, nil)
}

// get performs a GET with retries on transport errors, 429 and 5xx.
func (c *Client) get(ctx context.Context, resource, path string, out interface{}) error {
	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.RemoteRequestDuration, resource)

	attempt := 0
	operation := func() error {
		if attempt > 0 {
			metrics.RemoteRetriesTotal.Inc()
		}
		attempt++
		err := c.do(ctx, http.MethodGet, path, nil, out)
		if err == nil {
			return nil
		}
		if !retryable(err) || ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		utils.S().Debugw("remote GET failed, retrying", "path", path, "attempt", attempt, "error", err)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(&linearBackOff{step: c.backoff}, uint64(c.retries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		var se *StatusError
		if !errors.As(err, &se) {
			// canceled while waiting between attempts
			err = newTransportError(err)
		}
		return c.fail(resource, err)
	}
	metrics.RemoteRequestsTotal.WithLabelValues(resource, "ok").Inc()
	return nil
}

// linearBackOff waits step, 2*step, 3*step... between attempts.
type linearBackOff struct {
	step time.Duration
	n    int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.n++
	return time.Duration(b.n) * b.step
}

func (b *linearBackOff) Reset() { b.n = 0 }

func (c *Client) send(ctx context.Context, method, resource, path string, body, out interface{}) error {
	timer := metrics.NewTimer()
	defer timer.ObserveDurationVec(metrics.RemoteRequestDuration, resource)

	if err := c.do(ctx, method, path, body, out); err != nil {
		return c.fail(resource, err)
	}
	metrics.RemoteRequestsTotal.WithLabelValues(resource, "ok").Inc()
	return nil
}

func (c *Client) fail(resource string, err error) error {
	metrics.RemoteRequestsTotal.WithLabelValues(resource, "error").Inc()
	utils.S().Warnw("remote request failed", "resource", resource, "error", err)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return newTransportError(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return newTransportError(err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return newTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return newStatusError(resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newTransportError(fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}

func retryable(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	if se.Status == 0 {
		return !errors.Is(se.Err, context.Canceled)
	}
	return se.Status == http.StatusTooManyRequests || se.Status >= 500
}
