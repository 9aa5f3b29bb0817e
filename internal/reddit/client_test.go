package reddit

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"github.com/jimezsa/urs/internal/models"
	"github.com/jimezsa/urs/internal/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type cannedResponse struct {
	status int
	body   string
	header map[string]string
}

// fakeDoer answers requests by path and records what it was asked.
type fakeDoer struct {
	responses map[string][]cannedResponse
	requests  []*fhttp.Request
	err       error
}

func (f *fakeDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	queue := f.responses[req.URL.Path]
	if len(queue) == 0 {
		return &fhttp.Response{StatusCode: 404, Header: fhttp.Header{}, Body: io.NopCloser(strings.NewReader("{}"))}, nil
	}
	resp := queue[0]
	f.responses[req.URL.Path] = queue[1:]

	header := fhttp.Header{}
	for key, value := range resp.header {
		header.Set(key, value)
	}
	status := resp.status
	if status == 0 {
		status = 200
	}
	return &fhttp.Response{StatusCode: status, Header: header, Body: io.NopCloser(strings.NewReader(resp.body))}, nil
}

func newTestClient(doer *fakeDoer, now time.Time) *Client {
	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"})
	return NewClient(doer, tokens, WithClock(func() time.Time { return now }))
}

func listing(after string, ids ...string) string {
	children := make([]string, 0, len(ids))
	for _, id := range ids {
		children = append(children, `{"kind":"t3","data":{"id":"`+id+`","title":"post `+id+`","subreddit":"golang","score":3,"over_18":false,"created_utc":1700000000.0}}`)
	}
	return `{"kind":"Listing","data":{"after":"` + after + `","children":[` + strings.Join(children, ",") + `]}}`
}

func TestRateLimitFromHeaders(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	doer := &fakeDoer{responses: map[string][]cannedResponse{
		"/api/v1/scopes": {{body: `{}`, header: map[string]string{
			"X-Ratelimit-Remaining": "598.0",
			"X-Ratelimit-Used":      "2",
			"X-Ratelimit-Reset":     "120",
		}}},
	}}
	client := newTestClient(doer, now)

	limits, err := client.RateLimit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.RateLimit{Remaining: 598, Used: 2, Reset: now.Add(2 * time.Minute)}, limits)

	// A second call reuses the recorded headers.
	_, err = client.RateLimit(context.Background())
	require.NoError(t, err)
	assert.Len(t, doer.requests, 1)
	assert.Equal(t, "bearer tok", doer.requests[0].Header.Get("Authorization"))
	assert.Equal(t, "1", doer.requests[0].URL.Query().Get("raw_json"))
}

func TestSubredditPostsPaginates(t *testing.T) {
	doer := &fakeDoer{responses: map[string][]cannedResponse{
		"/r/golang/top": {
			{body: listing("t3_b", "a", "b")},
			{body: listing("", "c", "d")},
		},
	}}
	client := newTestClient(doer, time.Now())

	posts, err := client.SubredditPosts(context.Background(), "golang", models.SubredditSetting{Category: "T", Value: "3", TimeFilter: "week"})
	require.NoError(t, err)

	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
	require.Len(t, doer.requests, 2)

	first := doer.requests[0].URL.Query()
	assert.Equal(t, "week", first.Get("t"))
	assert.Equal(t, "3", first.Get("limit"))
	second := doer.requests[1].URL.Query()
	assert.Equal(t, "t3_b", second.Get("after"))
	assert.Equal(t, "1", second.Get("limit"))
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), posts[0].CreatedUTC)
}

func TestSubredditSearch(t *testing.T) {
	doer := &fakeDoer{responses: map[string][]cannedResponse{
		"/r/golang/search": {{body: listing("", "x")}},
	}}
	client := newTestClient(doer, time.Now())

	posts, err := client.SubredditPosts(context.Background(), "golang", models.SubredditSetting{Category: "s", Value: "generics"})
	require.NoError(t, err)
	require.Len(t, posts, 1)

	query := doer.requests[0].URL.Query()
	assert.Equal(t, "generics", query.Get("q"))
	assert.Equal(t, "1", query.Get("restrict_sr"))
}

func TestRedditorNotFound(t *testing.T) {
	client := newTestClient(&fakeDoer{responses: map[string][]cannedResponse{}}, time.Now())

	_, err := client.Redditor(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPErrors(t *testing.T) {
	doer := &fakeDoer{responses: map[string][]cannedResponse{
		"/user/spez/about": {{status: 403, body: `{}`}},
	}}
	client := newTestClient(doer, time.Now())

	_, err := client.Redditor(context.Background(), "spez")
	require.ErrorIs(t, err, network.ErrRequestFailed)
	assert.Contains(t, err.Error(), "http 403")
}

func TestCancelledContextSurfaces(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := newTestClient(&fakeDoer{err: errors.New("dial aborted")}, time.Now())

	_, err := client.Redditor(ctx, "spez")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSubmissionFlattensComments(t *testing.T) {
	body := `[
  {"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"abc123","title":"Hello"}}]}},
  {"kind":"Listing","data":{"children":[
    {"kind":"t1","data":{"id":"c1","body":"top","depth":0,"edited":false,
      "replies":{"kind":"Listing","data":{"children":[
        {"kind":"t1","data":{"id":"c2","body":"reply","depth":1,"edited":1700000000,"replies":""}}
      ]}}}},
    {"kind":"t1","data":{"id":"c3","body":"second","depth":0,"replies":""}},
    {"kind":"more","data":{"count":12}}
  ]}}
]`
	doer := &fakeDoer{responses: map[string][]cannedResponse{
		"/comments/abc123": {{body: body}, {body: body}},
	}}
	client := newTestClient(doer, time.Now())

	post, comments, err := client.Submission(context.Background(), "https://www.reddit.com/r/golang/comments/abc123/hello/", 0)
	require.NoError(t, err)
	assert.Equal(t, "Hello", post.Title)
	require.Len(t, comments, 3)
	assert.Equal(t, "c1", comments[0].ID)
	assert.Equal(t, "c2", comments[1].ID)
	assert.Equal(t, 1, comments[1].Depth)
	assert.True(t, comments[1].Edited)
	assert.False(t, comments[0].Edited)

	_, limited, err := client.Submission(context.Background(), "abc123", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestParseSubmissionID(t *testing.T) {
	cases := map[string]string{
		"abc123":    "abc123",
		"t3_abc123": "abc123",
		"https://redd.it/abc123": "abc123",
		"https://www.reddit.com/r/golang/comments/abc123/some_title/": "abc123",
	}
	for input, want := range cases {
		got, err := ParseSubmissionID(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseSubmissionID("https://example.com/nothing")
	assert.Error(t, err)
}

func TestRequestTargetsBase(t *testing.T) {
	doer := &fakeDoer{responses: map[string][]cannedResponse{
		"/user/spez/about": {{body: `{"data":{"name":"spez","link_karma":10}}`}},
	}}
	client := NewClient(doer, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "tok"}), WithBaseURL("https://example.test/"))

	redditor, err := client.Redditor(context.Background(), "spez")
	require.NoError(t, err)
	assert.Equal(t, 10, redditor.LinkKarma)

	target, _ := url.Parse(doer.requests[0].URL.String())
	assert.Equal(t, "example.test", target.Host)
}
