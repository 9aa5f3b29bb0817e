package cmd

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/jimezsa/urs/internal/models"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto" env:"URS_COLOR"`
	Verbose bool   `help:"Enable debug logging." env:"URS_VERBOSE"`
	CSV     bool   `name:"csv" help:"Export scrapes and frequencies to CSV instead of JSON." env:"URS_CSV"`
	Proxies string `help:"Comma-separated proxy URLs." env:"URS_PROXIES"`

	VersionFlag kong.VersionFlag `name:"version" help:"Print version."`

	Version     VersionCmd     `cmd:"" help:"Print version."`
	Config      ConfigCmd      `cmd:"" help:"Manage configuration."`
	Check       CheckCmd       `cmd:"" help:"Display the current Reddit rate limit."`
	Subreddit   SubredditCmd   `cmd:"" help:"Scrape subreddit listings or search results."`
	Redditor    RedditorCmd    `cmd:"" help:"Scrape redditor profiles."`
	Comments    CommentsCmd    `cmd:"" help:"Scrape comments from submissions."`
	Frequencies FrequenciesCmd `cmd:"" help:"Count word frequencies in scrape files."`
	Wordcloud   WordcloudCmd   `cmd:"" help:"Generate word clouds from scrape files."`
	ProxyTools  ProxiesCmd     `cmd:"" name:"proxies" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}

// Parse parses args into cli. Help or version output comes back as
// models.ErrHelpDisplayed and rejected arguments as models.ErrUsage after the
// usage summary is printed. No arguments at all shows help.
func Parse(cli *CLI, args []string, stdout, stderr io.Writer, vars kong.Vars) (*kong.Context, error) {
	exited := false
	parser, err := kong.New(cli,
		kong.Name("urs"),
		kong.Description("Universal Reddit Scraper."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) { exited = true }),
		vars,
	)
	if err != nil {
		return nil, err
	}

	if len(args) == 0 {
		args = []string{"--help"}
	}
	kctx, err := parser.Parse(args)
	if exited {
		return nil, models.ErrHelpDisplayed
	}
	if err != nil {
		fmt.Fprintf(stderr, "urs: error: %v\n", err)
		if parseErr, ok := err.(*kong.ParseError); ok && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(true)
		}
		return nil, fmt.Errorf("%w: %v", models.ErrUsage, err)
	}
	return kctx, nil
}
