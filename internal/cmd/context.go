package cmd

import (
	"context"
	"io"
	"time"

	"github.com/jimezsa/urs/internal/config"
	"github.com/jimezsa/urs/internal/export"
	"github.com/jimezsa/urs/internal/logging"
	"github.com/jimezsa/urs/internal/models"
	"github.com/jimezsa/urs/internal/network"
	"github.com/jimezsa/urs/internal/reddit"
	"github.com/jimezsa/urs/internal/scraper"
	"github.com/jimezsa/urs/internal/ui"
)

// RedditAPI is what the scrape commands need from a Reddit client.
type RedditAPI interface {
	scraper.API
	RateLimit(ctx context.Context) (models.RateLimit, error)
}

type Context struct {
	Ctx       context.Context
	In        io.Reader
	Out       io.Writer
	Err       io.Writer
	UI        *ui.UI
	Log       *logging.Logger
	Config    config.Config
	ConfigDir string
	Verbose   bool
	CSV       bool
	Proxies   string
	Version   string
	ColorMode ui.ColorMode
	Now       func() time.Time
	// NewAPI overrides how the Reddit client is built.
	NewAPI func(*Context) (RedditAPI, error)
}

func (c *Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) api() (RedditAPI, error) {
	if c.NewAPI != nil {
		return c.NewAPI(c)
	}
	return newRedditAPI(c)
}

func newRedditAPI(ctx *Context) (RedditAPI, error) {
	if err := ctx.Config.Validate(); err != nil {
		return nil, err
	}

	proxies, err := config.LoadProxies(ctx.Proxies)
	if err != nil {
		return nil, err
	}
	var rotator *network.Rotator
	if len(proxies) > 0 {
		rotator, err = network.NewRotator(proxies, 5*time.Minute)
		if err != nil {
			return nil, err
		}
	}

	client, err := network.NewClient(rotator, ctx.Config.UserAgent, ctx.Config.TimeoutSeconds)
	if err != nil {
		return nil, err
	}
	tokens := reddit.TokenSource(ctx.context(), ctx.Config)
	return reddit.NewClient(client, tokens, reddit.WithLogger(ctx.Log.Base())), nil
}

// scrapeOptions points the scrapers at today's directory.
func (c *Context) scrapeOptions(format export.Format) scraper.Options {
	return scraper.Options{
		Dir:    export.DateDir(c.Config.ScrapesDir, c.now()),
		Format: format,
		Logger: c.Log.Base(),
	}
}
