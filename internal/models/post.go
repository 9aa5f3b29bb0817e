package models

import "time"

// Post is a normalized Reddit submission.
type Post struct {
	ID           string    `json:"id"`
	Subreddit    string    `json:"subreddit"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Selftext     string    `json:"selftext"`
	SelftextHTML string    `json:"selftext_html,omitempty"`
	URL          string    `json:"url"`
	Permalink    string    `json:"permalink"`
	Score        int       `json:"score"`
	UpvoteRatio  float64   `json:"upvote_ratio"`
	NumComments  int       `json:"num_comments"`
	NSFW         bool      `json:"nsfw"`
	Flair        string    `json:"flair,omitempty"`
	CreatedUTC   time.Time `json:"created_utc"`
}

// Comment is a normalized Reddit comment. Depth is zero for top-level replies.
type Comment struct {
	ID          string    `json:"id"`
	ParentID    string    `json:"parent_id"`
	Author      string    `json:"author"`
	Body        string    `json:"body"`
	BodyHTML    string    `json:"body_html,omitempty"`
	Score       int       `json:"score"`
	Depth       int       `json:"depth"`
	IsSubmitter bool      `json:"is_submitter"`
	Edited      bool      `json:"edited"`
	CreatedUTC  time.Time `json:"created_utc"`
}

// Redditor is the public profile of a Reddit account.
type Redditor struct {
	Name         string    `json:"name"`
	ID           string    `json:"id"`
	LinkKarma    int       `json:"link_karma"`
	CommentKarma int       `json:"comment_karma"`
	IsMod        bool      `json:"is_mod"`
	IsGold       bool      `json:"is_gold"`
	Verified     bool      `json:"verified"`
	CreatedUTC   time.Time `json:"created_utc"`
}
