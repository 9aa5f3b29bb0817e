package models

import "strings"

// Category codes accepted for subreddit scrapes.
const (
	CategoryHot           = "h"
	CategoryNew           = "n"
	CategoryControversial = "c"
	CategoryTop           = "t"
	CategoryRising        = "r"
	CategorySearch        = "s"
)

var categoryLabels = map[string]string{
	CategoryHot:           "Hot",
	CategoryNew:           "New",
	CategoryControversial: "Controversial",
	CategoryTop:           "Top",
	CategoryRising:        "Rising",
	CategorySearch:        "Search",
}

// TimeFilters lists the listing windows Reddit accepts for top and controversial.
var TimeFilters = []string{"all", "day", "hour", "month", "week", "year"}

// CategoryLabel returns the display label for a one-letter category code.
func CategoryLabel(code string) (string, bool) {
	label, ok := categoryLabels[strings.ToLower(strings.TrimSpace(code))]
	return label, ok
}

// IsTimeFilter reports whether value is a recognised time filter.
func IsTimeFilter(value string) bool {
	for _, filter := range TimeFilters {
		if value == filter {
			return true
		}
	}
	return false
}

// SubredditSetting describes one listing to pull from a subreddit. Value holds
// the result count, or the search query for CategorySearch.
type SubredditSetting struct {
	Category   string `json:"category"`
	Value      string `json:"value"`
	TimeFilter string `json:"time_filter,omitempty"`
}

// SubredditSettings maps subreddit names to the listings requested for them.
type SubredditSettings map[string][]SubredditSetting

// RedditorSettings maps usernames to the number of results to pull.
type RedditorSettings map[string]int

// CommentSettings maps submission URLs or IDs to the number of comments to
// pull. Zero means every comment.
type CommentSettings map[string]int
