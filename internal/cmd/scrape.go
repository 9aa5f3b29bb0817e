package cmd

import (
	"fmt"
	"strconv"

	"github.com/jimezsa/urs/internal/export"
	"github.com/jimezsa/urs/internal/logging"
	"github.com/jimezsa/urs/internal/models"
	"github.com/jimezsa/urs/internal/scraper"
)

type CheckCmd struct{}

type SubredditCmd struct {
	Targets []string `arg:"" name:"target" help:"SUBREDDIT:CATEGORY:N[:TIME_FILTER] or SUBREDDIT:s:KEYWORDS[:TIME_FILTER]. Categories: h(ot), n(ew), c(ontroversial), t(op), r(ising), s(earch)."`
	Yes     bool     `short:"y" help:"Skip the confirmation prompt."`
}

type RedditorCmd struct {
	Targets []string `arg:"" name:"target" help:"REDDITOR:N, scraping N submissions and N comments."`
}

type CommentsCmd struct {
	Targets []string `arg:"" name:"target" help:"POST:N where POST is a submission URL or ID. N of 0 scrapes every comment."`
}

func (c *CheckCmd) Run(ctx *Context) error {
	api, err := ctx.api()
	if err != nil {
		return err
	}
	limits, err := checkRateLimit(ctx, api)
	if err != nil {
		return err
	}

	rows := [][]string{
		{"remaining", strconv.Itoa(int(limits.Remaining))},
		{"used", strconv.Itoa(limits.Used)},
	}
	if !limits.Reset.IsZero() {
		rows = append(rows, []string{"resets at", limits.Reset.Local().Format(logging.ResetLayout)})
	}
	return export.WriteTable(ctx.Out, []string{"rate limit", "requests"}, rows, ctx.UI.ColorEnabled)
}

func (c *SubredditCmd) Run(ctx *Context) error {
	settings, err := parseSubredditTargets(ctx.Log, c.Targets)
	if err != nil {
		return err
	}
	api, err := ctx.api()
	if err != nil {
		return err
	}
	if _, err := checkRateLimit(ctx, api); err != nil {
		return err
	}

	format := export.FormatFor(ctx.CSV)
	return ctx.Log.SubredditScraper(func() (models.SubredditSettings, error) {
		if !c.Yes {
			err := ctx.Log.Cancel(func() error {
				return scraper.Confirm(ctx.context(), ctx.In, ctx.Out, settings, ctx.UI.ColorEnabled)
			})
			if err != nil {
				return nil, err
			}
		}

		err := ctx.Log.Export(ctx.CSV, func() error {
			written, err := scraper.NewSubreddit(api, ctx.scrapeOptions(format)).Run(ctx.context(), settings)
			reportWritten(ctx, written)
			return err
		})
		return settings, err
	})
}

func (c *RedditorCmd) Run(ctx *Context) error {
	settings, err := parseRedditorTargets(ctx.Log, c.Targets)
	if err != nil {
		return err
	}
	api, err := ctx.api()
	if err != nil {
		return err
	}
	if _, err := checkRateLimit(ctx, api); err != nil {
		return err
	}

	if ctx.CSV {
		ctx.UI.Warnf("Redditor scrapes are exported to JSON only.")
	}
	return ctx.Log.RedditorScraper(func() (models.RedditorSettings, error) {
		err := ctx.Log.Export(false, func() error {
			written, err := scraper.NewRedditor(api, ctx.scrapeOptions(export.FormatJSON)).Run(ctx.context(), settings)
			reportWritten(ctx, written)
			return err
		})
		return settings, err
	})
}

func (c *CommentsCmd) Run(ctx *Context) error {
	settings, err := parseCommentTargets(ctx.Log, c.Targets)
	if err != nil {
		return err
	}
	api, err := ctx.api()
	if err != nil {
		return err
	}
	if _, err := checkRateLimit(ctx, api); err != nil {
		return err
	}

	format := export.FormatFor(ctx.CSV)
	return ctx.Log.CommentsScraper(func() (models.CommentSettings, error) {
		err := ctx.Log.Export(ctx.CSV, func() error {
			written, err := scraper.NewComments(api, ctx.scrapeOptions(format)).Run(ctx.context(), settings)
			reportWritten(ctx, written)
			return err
		})
		return settings, err
	})
}

func checkRateLimit(ctx *Context, api RedditAPI) (models.RateLimit, error) {
	return ctx.Log.RateLimit(func() (models.RateLimit, error) {
		limits, err := api.RateLimit(ctx.context())
		if err != nil {
			return limits, fmt.Errorf("check rate limit: %w", err)
		}
		return limits, nil
	})
}

func reportWritten(ctx *Context, paths []string) {
	for _, path := range paths {
		ctx.UI.Successf("Saved %s", ctx.UI.Path(path))
	}
}
