package logging

import (
	"testing"

	"github.com/jimezsa/urs/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSubredditLines(t *testing.T) {
	cases := []struct {
		name     string
		settings models.SubredditSettings
		want     []string
	}{
		{
			name:     "hot without time filter",
			settings: models.SubredditSettings{"testsubreddit": {{Category: "h", Value: "10"}}},
			want:     []string{"Scraping r/testsubreddit for 10 Hot results...", ""},
		},
		{
			name:     "top with time filter",
			settings: models.SubredditSettings{"testsubreddit": {{Category: "t", Value: "5", TimeFilter: "week"}}},
			want: []string{
				"Getting posts from the past week for Top results.",
				"Scraping r/testsubreddit for 5 Top results...",
				"",
			},
		},
		{
			name:     "all is not mentioned",
			settings: models.SubredditSettings{"golang": {{Category: "c", Value: "3", TimeFilter: "all"}}},
			want:     []string{"Scraping r/golang for 3 Controversial results...", ""},
		},
		{
			name:     "search",
			settings: models.SubredditSettings{"golang": {{Category: "S", Value: "generics"}}},
			want:     []string{"Searching and scraping r/golang for posts containing 'generics'...", ""},
		},
		{
			name: "subreddits sorted",
			settings: models.SubredditSettings{
				"zig":    {{Category: "n", Value: "1"}},
				"golang": {{Category: "r", Value: "2"}},
			},
			want: []string{
				"Scraping r/golang for 2 Rising results...",
				"",
				"Scraping r/zig for 1 New results...",
				"",
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, subredditLines(tc.settings))
		})
	}
}

func TestRedditorLines(t *testing.T) {
	got := redditorLines(models.RedditorSettings{"spez": 1, "kn0thing": 5})
	assert.Equal(t, []string{
		"Scraping 5 results for u/kn0thing...",
		"",
		"Scraping 1 result for u/spez...",
		"",
	}, got)
}

func TestCommentLines(t *testing.T) {
	got := commentLines(models.CommentSettings{"abc123": 0, "def456": 1, "ghi789": 25})
	assert.Equal(t, []string{
		"Processing all comments from Reddit post abc123...",
		"",
		"Processing 1 result from Reddit post def456...",
		"",
		"Processing 25 results from Reddit post ghi789...",
		"",
	}, got)
}
