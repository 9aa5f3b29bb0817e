// Package scraper pulls subreddit listings, redditor profiles and submission
// comments from Reddit and exports them under the day's scrapes directory.
package scraper

import (
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jimezsa/urs/internal/export"
	"github.com/jimezsa/urs/internal/models"
	"github.com/rs/zerolog"
)

// API is the part of the Reddit client the scrapers need.
type API interface {
	SubredditPosts(ctx context.Context, subreddit string, setting models.SubredditSetting) ([]models.Post, error)
	Redditor(ctx context.Context, name string) (models.Redditor, error)
	RedditorPosts(ctx context.Context, name string, limit int) ([]models.Post, error)
	RedditorComments(ctx context.Context, name string, limit int) ([]models.Comment, error)
	Submission(ctx context.Context, idOrURL string, limit int) (models.Post, []models.Comment, error)
}

// Options control where and how scrape results are written.
type Options struct {
	// Dir is the dated scrapes directory, e.g. scrapes/01-02-2024.
	Dir    string
	Format export.Format
	Logger zerolog.Logger
}

const (
	SubredditsDir = "subreddits"
	RedditorsDir  = "redditors"
	CommentsDir   = "comments"
	maxNameLen    = 50
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_\-]+`)

// fileName turns arbitrary text into a file name safe on every platform.
func fileName(parts ...string) string {
	name := strings.Join(parts, "-")
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.NewReplacer("_-", "-", "-_", "-").Replace(name)
	name = strings.Trim(name, "_")
	if len(name) > maxNameLen {
		name = strings.TrimRight(name[:maxNameLen], "_-")
	}
	if name == "" {
		name = "untitled"
	}
	return name
}

func outputPath(opts Options, dir string, name string) string {
	return filepath.Join(opts.Dir, dir, name+opts.Format.Ext())
}

func ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
