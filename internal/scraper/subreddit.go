package scraper

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jimezsa/urs/internal/export"
	"github.com/jimezsa/urs/internal/models"
)

type Subreddit struct {
	api  API
	opts Options
}

func NewSubreddit(api API, opts Options) *Subreddit {
	return &Subreddit{api: api, opts: opts}
}

// Run scrapes and exports every listing in settings, returning the paths written.
func (s *Subreddit) Run(ctx context.Context, settings models.SubredditSettings) ([]string, error) {
	var written []string
	for _, name := range sortedNames(settings) {
		for _, setting := range settings[name] {
			posts, err := s.api.SubredditPosts(ctx, name, setting)
			if err != nil {
				return written, ctxErr(ctx, fmt.Errorf("r/%s: %w", name, err))
			}

			path := outputPath(s.opts, SubredditsDir, subredditFileName(name, setting))
			ds := export.PostsDataset(subredditScrapeSettings(name, setting), posts)
			if err := export.WriteFile(path, ds, s.opts.Format); err != nil {
				return written, err
			}
			s.opts.Logger.Debug().Str("file", path).Int("posts", len(posts)).Msg("subreddit exported")
			written = append(written, path)
		}
	}
	return written, nil
}

func subredditScrapeSettings(name string, setting models.SubredditSetting) map[string]any {
	category, _ := models.CategoryLabel(setting.Category)
	out := map[string]any{
		"subreddit": name,
		"category":  strings.ToLower(category),
	}
	if strings.EqualFold(setting.Category, models.CategorySearch) {
		out["keywords"] = setting.Value
	} else {
		out["n_results"] = setting.Value
	}
	if setting.TimeFilter != "" {
		out["time_filter"] = setting.TimeFilter
	}
	return out
}

func subredditFileName(name string, setting models.SubredditSetting) string {
	if strings.EqualFold(setting.Category, models.CategorySearch) {
		return fileName(name, "search", setting.Value)
	}
	category, _ := models.CategoryLabel(setting.Category)
	parts := []string{name, strings.ToLower(category), setting.Value, "results"}
	if setting.TimeFilter != "" && setting.TimeFilter != "all" {
		parts = append(parts, setting.TimeFilter)
	}
	return fileName(parts...)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
