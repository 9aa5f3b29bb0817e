// Package reddit is a read-only client for Reddit's OAuth API.
package reddit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/urs/internal/models"
	"github.com/jimezsa/urs/internal/network"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

const APIBase = "https://oauth.reddit.com"

var ErrNotFound = errors.New("not found")

// Doer sends a prepared request. *network.Client satisfies it.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

type Client struct {
	doer   Doer
	tokens oauth2.TokenSource
	base   string
	log    zerolog.Logger
	now    func() time.Time

	mu     sync.Mutex
	limits models.RateLimit
	seen   bool
}

type Option func(*Client)

func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.base = strings.TrimRight(base, "/")
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

func NewClient(doer Doer, tokens oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		doer:   doer,
		tokens: tokens,
		base:   APIBase,
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RateLimit returns the budget reported by the most recent response, making a
// cheap request first if nothing has been sent yet.
func (c *Client) RateLimit(ctx context.Context) (models.RateLimit, error) {
	c.mu.Lock()
	limits, seen := c.limits, c.seen
	c.mu.Unlock()
	if seen {
		return limits, nil
	}

	if _, err := c.get(ctx, "/api/v1/scopes", nil); err != nil {
		return models.RateLimit{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limits, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (gjson.Result, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return gjson.Result{}, fmt.Errorf("authenticate: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("raw_json", "1")
	target := c.base + path + "?" + query.Encode()

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return gjson.Result{}, err
	}
	req.Header.Set("Authorization", "bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/json")

	c.log.Debug().Str("url", target).Msg("reddit request")
	resp, err := c.doer.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return gjson.Result{}, ctxErr
		}
		return gjson.Result{}, err
	}
	defer resp.Body.Close()

	c.recordLimits(resp.Header)

	switch {
	case resp.StatusCode == fhttp.StatusNotFound:
		return gjson.Result{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	case resp.StatusCode >= 400:
		return gjson.Result{}, fmt.Errorf("%w: %s returned http %d", network.ErrRequestFailed, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%s: invalid JSON response", path)
	}
	return gjson.ParseBytes(body), nil
}

func (c *Client) recordLimits(header fhttp.Header) {
	remaining := header.Get("X-Ratelimit-Remaining")
	if remaining == "" {
		return
	}

	limits := models.RateLimit{}
	limits.Remaining, _ = strconv.ParseFloat(remaining, 64)
	if used, err := strconv.ParseFloat(header.Get("X-Ratelimit-Used"), 64); err == nil {
		limits.Used = int(used)
	}
	if reset, err := strconv.ParseFloat(header.Get("X-Ratelimit-Reset"), 64); err == nil {
		limits.Reset = c.now().Add(time.Duration(reset * float64(time.Second)))
	}

	c.mu.Lock()
	c.limits = limits
	c.seen = true
	c.mu.Unlock()
}
