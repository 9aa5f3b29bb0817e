package scraper

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jimezsa/urs/internal/export"
	"github.com/jimezsa/urs/internal/models"
)

// SubmissionComments is the JSON record for one scraped submission.
type SubmissionComments struct {
	Submission models.Post      `json:"submission_metadata"`
	Comments   []models.Comment `json:"comments"`
}

type Comments struct {
	api  API
	opts Options
}

func NewComments(api API, opts Options) *Comments {
	return &Comments{api: api, opts: opts}
}

func (c *Comments) Run(ctx context.Context, settings models.CommentSettings) ([]string, error) {
	var written []string
	for _, target := range sortedNames(settings) {
		n := settings[target]
		post, comments, err := c.api.Submission(ctx, target, n)
		if err != nil {
			return written, ctxErr(ctx, fmt.Errorf("submission %s: %w", target, err))
		}

		count := "all"
		if n > 0 {
			count = strconv.Itoa(n)
		}
		title := post.Title
		if title == "" {
			title = post.ID
		}
		path := outputPath(c.opts, CommentsDir, fileName(title, count, "results"))

		ds := export.CommentsDataset(map[string]any{"submission": target, "n_results": n}, comments)
		ds.Data = SubmissionComments{Submission: post, Comments: ds.Data.([]models.Comment)}
		if err := export.WriteFile(path, ds, c.opts.Format); err != nil {
			return written, err
		}
		c.opts.Logger.Debug().Str("file", path).Int("comments", len(comments)).Msg("comments exported")
		written = append(written, path)
	}
	return written, nil
}
