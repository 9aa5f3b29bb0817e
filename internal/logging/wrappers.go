package logging

import (
	"fmt"
	"strings"

	"github.com/jimezsa/urs/internal/export"
	"github.com/jimezsa/urs/internal/models"
)

// ResetLayout formats the moment a rate limit window resets.
const ResetLayout = "2006-01-02 15:04:05"

// Main times the whole run. Cancelling anywhere below it aborts urs.
func (l *Logger) Main(fn func() error) error {
	l.info("INITIALIZING URS.")
	l.info("")

	start := l.now()
	if err := l.guard(fn(), abortedByUser); err != nil {
		return err
	}

	l.infof("URS COMPLETED IN %.2f SECONDS.\n", l.since(start))
	return nil
}

// Args wraps argument parsing. Help output and rejected arguments end the run.
func (l *Logger) Args(fn func() error) error {
	return l.guard(fn(), helpDisplayed, usageDisplayed)
}

// Argument wraps validation of one kind of argument; label names it in
// messages, e.g. "SUBREDDIT" or "TIME FILTER".
func (l *Logger) Argument(label string, fn func() error) error {
	return l.guard(fn(), invalidArgument(strings.ToUpper(label)))
}

// RateLimit logs the request budget returned by fn and aborts when it is spent.
func (l *Logger) RateLimit(fn func() (models.RateLimit, error)) (models.RateLimit, error) {
	limits, err := fn()
	if err != nil {
		return limits, err
	}

	l.info("RATE LIMIT DISPLAYED.")
	l.infof("Remaining requests: %d", int(limits.Remaining))
	l.infof("Used requests: %d", limits.Used)
	l.info("")

	if limits.Exhausted() {
		reset := limits.Reset.Local().Format(ResetLayout)
		err := fmt.Errorf("%w: resets at %s", models.ErrRateLimited, reset)
		return limits, l.guard(err, rateLimitReached(reset))
	}
	return limits, nil
}

// SubredditScraper times a subreddit scrape and logs what fn reports it scraped.
func (l *Logger) SubredditScraper(fn func() (models.SubredditSettings, error)) error {
	return timeScraper(l, "subreddit", fn, subredditLines)
}

func (l *Logger) RedditorScraper(fn func() (models.RedditorSettings, error)) error {
	return timeScraper(l, "redditor", fn, redditorLines)
}

func (l *Logger) CommentsScraper(fn func() (models.CommentSettings, error)) error {
	return timeScraper(l, "comments", fn, commentLines)
}

func timeScraper[S any](l *Logger, scraper string, fn func() (S, error), describe func(S) []string) error {
	start := l.now()
	name := strings.ToUpper(scraper)

	l.infof("RUNNING %s SCRAPER.", name)
	l.info("")

	settings, err := fn()
	if err != nil {
		return err
	}
	for _, line := range describe(settings) {
		l.info(line)
	}

	l.infof("%s SCRAPER FINISHED IN %.2f SECONDS.", name, l.since(start))
	l.info("")
	return nil
}

// Cancel wraps the confirmation step before a subreddit scrape.
func (l *Logger) Cancel(fn func() error) error {
	return l.guard(fn(), scrapeCancelled)
}

// AnalyticsInput wraps loading of scrape files for the analytics tools.
func (l *Logger) AnalyticsInput(fn func() error) error {
	return l.guard(fn(), invalidTopDir, invalidFormat)
}

// Save logs where fn saved the output of tool.
func (l *Logger) Save(tool string, fn func() (string, error)) error {
	filename, err := fn()
	if err != nil {
		return err
	}
	l.infof("Saved %s to %s.", tool, filename)
	l.info("")
	return nil
}

// Show logs that fn displayed the output of tool instead of saving it.
func (l *Logger) Show(tool string, fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	l.infof("Displayed %s.", tool)
	l.info("")
	return nil
}

// AnalyticsExport wraps writing analytics output in format. Any failure other
// than an interrupt aborts.
func (l *Logger) AnalyticsExport(format export.Format, fn func() error) error {
	if err := l.guard(fn(), exportFailed); err != nil {
		return err
	}
	l.info(exportMessage(format))
	l.info("")
	return nil
}

// Export wraps writing scrape results. csv mirrors the --csv flag.
func (l *Logger) Export(csv bool, fn func() error) error {
	if err := l.guard(fn(), exportFailed); err != nil {
		return err
	}
	l.info(exportMessage(export.FormatFor(csv)))
	l.info("")
	return nil
}

// Generator times an analytics tool run over files.
func (l *Logger) Generator(tool string, files []string, fn func() error) error {
	start := l.now()
	name := strings.ToUpper(tool)

	l.infof("RUNNING %s GENERATOR.", name)
	l.info("")
	for _, file := range files {
		l.infof("Generating %s for file %s...", tool, file)
		l.info("")
	}

	if err := fn(); err != nil {
		return err
	}

	l.infof("%s GENERATOR FINISHED IN %.2f SECONDS.", name, l.since(start))
	l.info("")
	return nil
}
