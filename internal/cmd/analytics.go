package cmd

import (
	"github.com/jimezsa/urs/internal/analytics"
	"github.com/jimezsa/urs/internal/export"
)

type FrequenciesCmd struct {
	Files []string `arg:"" name:"file" help:"Scrape JSON files inside the scrapes directory."`
}

type WordcloudCmd struct {
	Files    []string `arg:"" name:"file" help:"Scrape JSON files inside the scrapes directory."`
	MaxWords int      `help:"Most words drawn in one cloud." default:"200"`
	Show     bool     `help:"Print the weighted words instead of saving an SVG."`
}

func (c *FrequenciesCmd) Run(ctx *Context) error {
	format := export.FormatFor(ctx.CSV)
	return ctx.Log.Generator(analytics.FrequenciesTool, c.Files, func() error {
		for _, file := range c.Files {
			scrape, err := loadScrape(ctx, file)
			if err != nil {
				return err
			}
			err = ctx.Log.AnalyticsExport(format, func() error {
				path, err := analytics.WriteFrequencies(ctx.Config.ScrapesDir, scrape, format)
				if err == nil {
					ctx.UI.Successf("Saved %s", ctx.UI.Path(path))
				}
				return err
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *WordcloudCmd) Run(ctx *Context) error {
	return ctx.Log.Generator(analytics.WordcloudTool, c.Files, func() error {
		for _, file := range c.Files {
			scrape, err := loadScrape(ctx, file)
			if err != nil {
				return err
			}
			if c.Show {
				err = ctx.Log.Show(analytics.WordcloudTool, func() error {
					return analytics.ShowWordcloud(ctx.Out, scrape, c.MaxWords, ctx.UI.ColorEnabled)
				})
			} else {
				err = ctx.Log.Save(analytics.WordcloudTool, func() (string, error) {
					path, err := analytics.SaveWordcloud(ctx.Config.ScrapesDir, scrape, c.MaxWords)
					if err == nil {
						ctx.UI.Successf("Saved %s", ctx.UI.Path(path))
					}
					return path, err
				})
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func loadScrape(ctx *Context, file string) (analytics.Scrape, error) {
	var scrape analytics.Scrape
	err := ctx.Log.AnalyticsInput(func() error {
		var err error
		scrape, err = analytics.Load(ctx.Config.ScrapesDir, file)
		return err
	})
	return scrape, err
}
