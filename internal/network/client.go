package network

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
)

var ErrRequestFailed = errors.New("request failed")

// Client sends Reddit API requests with a fixed user agent, rotating through
// proxies when a Rotator is configured.
type Client struct {
	http      tls_client.HttpClient
	rotator   *Rotator
	userAgent string
}

func NewClient(rotator *Rotator, userAgent string, timeoutSeconds int) (*Client, error) {
	jar, _ := fhttpcookiejar.New(nil)
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(timeoutSeconds),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:      client,
		rotator:   rotator,
		userAgent: userAgent,
	}, nil
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	proxy, err := c.rotateProxy()
	if err != nil {
		return nil, err
	}
	if req.Header.Get("User-Agent") == "" && c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if proxy != nil {
		c.rotator.Report(proxy, resp.StatusCode, resetAfter(resp.Header))
	}
	return resp, nil
}

func (c *Client) rotateProxy() (*url.URL, error) {
	if c.rotator == nil {
		return nil, nil
	}
	proxy, err := c.rotator.Next()
	if err != nil {
		return nil, err
	}

	if proxy != nil {
		_ = c.http.SetProxy(proxy.String())
	}
	return proxy, nil
}

// resetAfter reads Reddit's x-ratelimit-reset header, the seconds left in the
// current window.
func resetAfter(header fhttp.Header) time.Duration {
	raw := header.Get("X-Ratelimit-Reset")
	if raw == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(raw, 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}
