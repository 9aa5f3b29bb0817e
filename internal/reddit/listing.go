package reddit

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jimezsa/urs/internal/models"
	"github.com/tidwall/gjson"
)

const (
	pageSize = 100
	// maxListing is the deepest Reddit paginates any listing.
	maxListing = 1000
)

var categoryPaths = map[string]string{
	models.CategoryHot:           "hot",
	models.CategoryNew:           "new",
	models.CategoryControversial: "controversial",
	models.CategoryTop:           "top",
	models.CategoryRising:        "rising",
}

// SubredditPosts fetches one listing described by setting.
func (c *Client) SubredditPosts(ctx context.Context, subreddit string, setting models.SubredditSetting) ([]models.Post, error) {
	category := strings.ToLower(setting.Category)
	query := url.Values{}
	if setting.TimeFilter != "" {
		query.Set("t", setting.TimeFilter)
	}

	if category == models.CategorySearch {
		query.Set("q", setting.Value)
		query.Set("restrict_sr", "1")
		query.Set("sort", "relevance")
		return c.posts(ctx, "/r/"+subreddit+"/search", query, maxListing)
	}

	segment, ok := categoryPaths[category]
	if !ok {
		return nil, fmt.Errorf("unknown category %q", setting.Category)
	}
	limit, err := strconv.Atoi(setting.Value)
	if err != nil {
		return nil, fmt.Errorf("result count %q: %w", setting.Value, err)
	}
	return c.posts(ctx, "/r/"+subreddit+"/"+segment, query, limit)
}

// Redditor fetches a public profile.
func (c *Client) Redditor(ctx context.Context, name string) (models.Redditor, error) {
	doc, err := c.get(ctx, "/user/"+name+"/about", nil)
	if err != nil {
		return models.Redditor{}, err
	}
	data := doc.Get("data")
	return models.Redditor{
		Name:         data.Get("name").String(),
		ID:           data.Get("id").String(),
		LinkKarma:    int(data.Get("link_karma").Int()),
		CommentKarma: int(data.Get("comment_karma").Int()),
		IsMod:        data.Get("is_mod").Bool(),
		IsGold:       data.Get("is_gold").Bool(),
		Verified:     data.Get("verified").Bool(),
		CreatedUTC:   unixTime(data.Get("created_utc")),
	}, nil
}

func (c *Client) RedditorPosts(ctx context.Context, name string, limit int) ([]models.Post, error) {
	return c.posts(ctx, "/user/"+name+"/submitted", nil, limit)
}

func (c *Client) RedditorComments(ctx context.Context, name string, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.paginate(ctx, "/user/"+name+"/comments", nil, limit, func(child gjson.Result) {
		comments = append(comments, parseComment(child.Get("data"), 0))
	})
	return comments, err
}

// Submission fetches a post and its comment tree flattened depth-first. A
// limit of zero keeps every comment the API returned.
func (c *Client) Submission(ctx context.Context, idOrURL string, limit int) (models.Post, []models.Comment, error) {
	id, err := ParseSubmissionID(idOrURL)
	if err != nil {
		return models.Post{}, nil, err
	}

	doc, err := c.get(ctx, "/comments/"+id, url.Values{"limit": {"500"}})
	if err != nil {
		return models.Post{}, nil, err
	}
	if !doc.IsArray() || len(doc.Array()) < 2 {
		return models.Post{}, nil, fmt.Errorf("submission %s: unexpected response shape", id)
	}

	parts := doc.Array()
	post := parsePost(parts[0].Get("data.children.0.data"))

	var comments []models.Comment
	flattenComments(parts[1].Get("data.children"), &comments, limit)
	return post, comments, nil
}

var submissionPattern = regexp.MustCompile(`(?:comments/|redd\.it/)([a-z0-9]+)`)

// ParseSubmissionID accepts a bare ID, a t3_ fullname, a reddit.com comments
// URL or a redd.it short link.
func ParseSubmissionID(value string) (string, error) {
	value = strings.TrimSpace(value)
	if match := submissionPattern.FindStringSubmatch(value); match != nil {
		return match[1], nil
	}
	value = strings.TrimPrefix(value, "t3_")
	if value != "" && !strings.ContainsAny(value, "/.:?") {
		return value, nil
	}
	return "", fmt.Errorf("not a Reddit submission: %q", value)
}

func (c *Client) posts(ctx context.Context, path string, query url.Values, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := c.paginate(ctx, path, query, limit, func(child gjson.Result) {
		posts = append(posts, parsePost(child.Get("data")))
	})
	return posts, err
}

// paginate walks a listing page by page until limit children were visited or
// the listing ends.
func (c *Client) paginate(ctx context.Context, path string, query url.Values, limit int, visit func(gjson.Result)) error {
	if limit <= 0 || limit > maxListing {
		limit = maxListing
	}

	after := ""
	for count := 0; count < limit; {
		page := url.Values{}
		for key, values := range query {
			page[key] = values
		}
		page.Set("limit", strconv.Itoa(min(pageSize, limit-count)))
		if after != "" {
			page.Set("after", after)
			page.Set("count", strconv.Itoa(count))
		}

		doc, err := c.get(ctx, path, page)
		if err != nil {
			return err
		}

		children := doc.Get("data.children").Array()
		for _, child := range children {
			if count >= limit {
				break
			}
			visit(child)
			count++
		}

		after = doc.Get("data.after").String()
		if after == "" || len(children) == 0 {
			return nil
		}
	}
	return nil
}

func flattenComments(children gjson.Result, out *[]models.Comment, limit int) {
	children.ForEach(func(_, child gjson.Result) bool {
		if limit > 0 && len(*out) >= limit {
			return false
		}
		// "more" stubs need /api/morechildren and are skipped.
		if child.Get("kind").String() != "t1" {
			return true
		}
		data := child.Get("data")
		*out = append(*out, parseComment(data, int(data.Get("depth").Int())))
		flattenComments(data.Get("replies.data.children"), out, limit)
		return true
	})
}

func parsePost(data gjson.Result) models.Post {
	return models.Post{
		ID:           data.Get("id").String(),
		Subreddit:    data.Get("subreddit").String(),
		Title:        data.Get("title").String(),
		Author:       data.Get("author").String(),
		Selftext:     data.Get("selftext").String(),
		SelftextHTML: data.Get("selftext_html").String(),
		URL:          data.Get("url").String(),
		Permalink:    data.Get("permalink").String(),
		Score:        int(data.Get("score").Int()),
		UpvoteRatio:  data.Get("upvote_ratio").Float(),
		NumComments:  int(data.Get("num_comments").Int()),
		NSFW:         data.Get("over_18").Bool(),
		Flair:        data.Get("link_flair_text").String(),
		CreatedUTC:   unixTime(data.Get("created_utc")),
	}
}

func parseComment(data gjson.Result, depth int) models.Comment {
	edited := data.Get("edited")
	return models.Comment{
		ID:          data.Get("id").String(),
		ParentID:    data.Get("parent_id").String(),
		Author:      data.Get("author").String(),
		Body:        data.Get("body").String(),
		BodyHTML:    data.Get("body_html").String(),
		Score:       int(data.Get("score").Int()),
		Depth:       depth,
		IsSubmitter: data.Get("is_submitter").Bool(),
		Edited:      edited.Type == gjson.Number || edited.Type == gjson.True,
		CreatedUTC:  unixTime(data.Get("created_utc")),
	}
}

func unixTime(value gjson.Result) time.Time {
	if !value.Exists() {
		return time.Time{}
	}
	return time.Unix(int64(value.Float()), 0).UTC()
}
