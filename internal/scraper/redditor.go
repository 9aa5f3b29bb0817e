package scraper

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jimezsa/urs/internal/export"
	"github.com/jimezsa/urs/internal/models"
)

// RedditorProfile is the exported record for one redditor.
type RedditorProfile struct {
	Information models.Redditor  `json:"information"`
	Submissions []models.Post    `json:"submissions"`
	Comments    []models.Comment `json:"comments"`
}

// Redditor scrapes profiles. Its output is nested, so it always writes JSON.
type Redditor struct {
	api  API
	opts Options
}

func NewRedditor(api API, opts Options) *Redditor {
	opts.Format = export.FormatJSON
	return &Redditor{api: api, opts: opts}
}

func (r *Redditor) Run(ctx context.Context, settings models.RedditorSettings) ([]string, error) {
	var written []string
	for _, name := range sortedNames(settings) {
		n := settings[name]
		profile, err := r.profile(ctx, name, n)
		if err != nil {
			return written, ctxErr(ctx, fmt.Errorf("u/%s: %w", name, err))
		}

		path := outputPath(r.opts, RedditorsDir, fileName(name, strconv.Itoa(n), "results"))
		ds := export.Dataset{
			Settings: map[string]any{"redditor": name, "n_results": n},
			Data:     profile,
		}
		if err := export.WriteFile(path, ds, r.opts.Format); err != nil {
			return written, err
		}
		r.opts.Logger.Debug().Str("file", path).Msg("redditor exported")
		written = append(written, path)
	}
	return written, nil
}

func (r *Redditor) profile(ctx context.Context, name string, n int) (RedditorProfile, error) {
	info, err := r.api.Redditor(ctx, name)
	if err != nil {
		return RedditorProfile{}, err
	}
	posts, err := r.api.RedditorPosts(ctx, name, n)
	if err != nil {
		return RedditorProfile{}, err
	}
	comments, err := r.api.RedditorComments(ctx, name, n)
	if err != nil {
		return RedditorProfile{}, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return RedditorProfile{Information: info, Submissions: posts, Comments: comments}, nil
}
