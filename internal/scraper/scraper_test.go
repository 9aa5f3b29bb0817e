package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jimezsa/urs/internal/export"
	"github.com/jimezsa/urs/internal/models"
)

type fakeAPI struct {
	posts    map[string][]models.Post
	comments []models.Comment
	post     models.Post
	err      error
	calls    []string
}

func (f *fakeAPI) SubredditPosts(_ context.Context, subreddit string, setting models.SubredditSetting) ([]models.Post, error) {
	f.calls = append(f.calls, subreddit+":"+setting.Category)
	return f.posts[subreddit], f.err
}

func (f *fakeAPI) Redditor(_ context.Context, name string) (models.Redditor, error) {
	return models.Redditor{Name: name, LinkKarma: 7}, f.err
}

func (f *fakeAPI) RedditorPosts(_ context.Context, name string, _ int) ([]models.Post, error) {
	return f.posts[name], f.err
}

func (f *fakeAPI) RedditorComments(_ context.Context, _ string, _ int) ([]models.Comment, error) {
	return f.comments, f.err
}

func (f *fakeAPI) Submission(_ context.Context, _ string, _ int) (models.Post, []models.Comment, error) {
	return f.post, f.comments, f.err
}

func TestSubredditRunWritesFiles(t *testing.T) {
	dir := t.TempDir()
	api := &fakeAPI{posts: map[string][]models.Post{"golang": {{ID: "a", Title: "Generics"}}}}
	settings := models.SubredditSettings{
		"golang": {
			{Category: "t", Value: "5", TimeFilter: "week"},
			{Category: "s", Value: "error handling"},
		},
	}

	written, err := NewSubreddit(api, Options{Dir: dir, Format: export.FormatCSV}).Run(context.Background(), settings)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{
		filepath.Join(dir, SubredditsDir, "golang-top-5-results-week.csv"),
		filepath.Join(dir, SubredditsDir, "golang-search-error_handling.csv"),
	}
	if len(written) != len(want) {
		t.Fatalf("written = %v, want %v", written, want)
	}
	for i := range want {
		if written[i] != want[i] {
			t.Fatalf("written[%d] = %q, want %q", i, written[i], want[i])
		}
		data, err := os.ReadFile(want[i])
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if !strings.Contains(string(data), "Generics") {
			t.Fatalf("expected post in %s: %q", want[i], data)
		}
	}
}

func TestSubredditRunPropagatesCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	api := &fakeAPI{err: errors.New("request aborted")}
	settings := models.SubredditSettings{"golang": {{Category: "h", Value: "1"}}}

	_, err := NewSubreddit(api, Options{Dir: t.TempDir(), Format: export.FormatJSON}).Run(ctx, settings)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestRedditorRunAlwaysJSON(t *testing.T) {
	dir := t.TempDir()
	api := &fakeAPI{}

	written, err := NewRedditor(api, Options{Dir: dir, Format: export.FormatCSV}).Run(context.Background(), models.RedditorSettings{"spez": 3})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	wantPath := filepath.Join(dir, RedditorsDir, "spez-3-results.json")
	if len(written) != 1 || written[0] != wantPath {
		t.Fatalf("written = %v, want [%s]", written, wantPath)
	}

	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var doc struct {
		Data RedditorProfile `json:"data"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if doc.Data.Information.LinkKarma != 7 || doc.Data.Submissions == nil {
		t.Fatalf("unexpected profile: %+v", doc.Data)
	}
}

func TestCommentsRunNamesFileAfterTitle(t *testing.T) {
	dir := t.TempDir()
	api := &fakeAPI{
		post:     models.Post{ID: "abc123", Title: "What's your favourite Go feature?"},
		comments: []models.Comment{{ID: "c1", Body: "channels"}},
	}

	written, err := NewComments(api, Options{Dir: dir, Format: export.FormatJSON}).Run(context.Background(), models.CommentSettings{"abc123": 0})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	wantPath := filepath.Join(dir, CommentsDir, "What_s_your_favourite_Go_feature-all-results.json")
	if len(written) != 1 || written[0] != wantPath {
		t.Fatalf("written = %v, want [%s]", written, wantPath)
	}

	data, _ := os.ReadFile(wantPath)
	if !strings.Contains(string(data), `"submission_metadata"`) || !strings.Contains(string(data), "channels") {
		t.Fatalf("unexpected comments export: %s", data)
	}
}

func TestFileName(t *testing.T) {
	cases := map[string][]string{
		"golang-hot-10-results": {"golang", "hot", "10", "results"},
		"a_b":                   {"a/b"},
		"untitled":              {"???"},
	}
	for want, parts := range cases {
		if got := fileName(parts...); got != want {
			t.Fatalf("fileName(%v) = %q, want %q", parts, got, want)
		}
	}

	long := fileName(strings.Repeat("x", 80))
	if len(long) != maxNameLen {
		t.Fatalf("len(fileName(long)) = %d, want %d", len(long), maxNameLen)
	}
}
