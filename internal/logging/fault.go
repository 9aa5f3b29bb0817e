package logging

import (
	"context"
	"errors"
	"fmt"

	"github.com/jimezsa/urs/internal/models"
	"github.com/rs/zerolog"
)

// Exit codes used when a recognised failure ends the process.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitUsage       = 2
	ExitInterrupted = 130
)

const abortingURS = "ABORTING URS.\n"

// fault describes one failure a wrapper recognises and how it is reported
// before the process exits.
type fault struct {
	match   func(error) bool
	level   zerolog.Level
	console func(error) string
	lines   func(error) []string
	code    int
}

// guard terminates the process if err matches one of faults and returns err
// unchanged otherwise. It also returns err after terminating so callers stay
// correct when exit is replaced in tests.
func (l *Logger) guard(err error, faults ...fault) error {
	if err == nil {
		return nil
	}
	for _, f := range faults {
		if f.match(err) {
			l.abort(f, err)
			return err
		}
	}
	return err
}

func (l *Logger) abort(f fault, err error) {
	if f.console != nil && l.ui != nil {
		l.ui.Abortf("%s", f.console(err))
	}
	for _, line := range f.lines(err) {
		l.log.WithLevel(f.level).Msg(line)
	}
	_ = l.Close()
	l.exit(f.code)
}

func isInterrupt(err error) bool {
	return errors.Is(err, models.ErrInterrupted) || errors.Is(err, context.Canceled)
}

func is(target error) func(error) bool {
	return func(err error) bool {
		return errors.Is(err, target)
	}
}

func fixed(text string) func(error) string {
	return func(error) string {
		return text
	}
}

func lines(text ...string) func(error) []string {
	return func(error) []string {
		return text
	}
}

var (
	abortedByUser = fault{
		match:   isInterrupt,
		level:   zerolog.WarnLevel,
		console: fixed("URS ABORTED BY USER."),
		lines:   lines("", "URS ABORTED BY USER.\n"),
		code:    ExitInterrupted,
	}

	scrapeCancelled = fault{
		match:   isInterrupt,
		level:   zerolog.InfoLevel,
		console: fixed("Cancelling."),
		lines:   lines("", "SUBREDDIT SCRAPING CANCELLED BY USER.\n"),
		code:    ExitInterrupted,
	}

	helpDisplayed = fault{
		match: is(models.ErrHelpDisplayed),
		level: zerolog.InfoLevel,
		lines: lines("HELP WAS DISPLAYED.\n"),
		code:  ExitOK,
	}

	usageDisplayed = fault{
		match: is(models.ErrUsage),
		level: zerolog.InfoLevel,
		lines: lines("HELP WAS DISPLAYED.\n"),
		code:  ExitUsage,
	}

	invalidTopDir = fault{
		match:   is(models.ErrInvalidTopDir),
		level:   zerolog.FatalLevel,
		console: fixed("Scrape data is not located within the `scrapes` directory."),
		lines: lines(
			"AN ERROR HAS OCCURRED WHILE PROCESSING SCRAPE DATA.",
			"Scrape data is not located within the `scrapes` directory.",
			abortingURS,
		),
		code: ExitFailure,
	}

	invalidFormat = fault{
		match:   is(models.ErrInvalidFormat),
		level:   zerolog.FatalLevel,
		console: fixed("Invalid file format. Try again with a valid JSON file."),
		lines: lines(
			"AN ERROR HAS OCCURRED WHILE PROCESSING SCRAPE DATA.",
			"Invalid file format.",
			abortingURS,
		),
		code: ExitFailure,
	}

	// exportFailed catches everything except interrupts, which belong to Main.
	exportFailed = fault{
		match: func(err error) bool {
			return !isInterrupt(err)
		},
		level: zerolog.FatalLevel,
		console: func(err error) string {
			return fmt.Sprintf("AN ERROR HAS OCCURRED WHILE EXPORTING SCRAPED DATA.\n\n%v", err)
		},
		lines: func(err error) []string {
			return []string{
				"AN ERROR HAS OCCURRED WHILE EXPORTING SCRAPED DATA.",
				err.Error(),
				abortingURS,
			}
		},
		code: ExitFailure,
	}
)

func invalidArgument(label string) fault {
	return fault{
		match: is(models.ErrInvalidValue),
		level: zerolog.FatalLevel,
		console: func(err error) string {
			return fmt.Sprintf("INVALID %s.\n\n%v", label, err)
		},
		lines: lines(
			fmt.Sprintf("RECEIVED INVALID %s.", label),
			abortingURS,
		),
		code: ExitFailure,
	}
}

func rateLimitReached(reset string) fault {
	return fault{
		match: is(models.ErrRateLimited),
		level: zerolog.FatalLevel,
		console: fixed(fmt.Sprintf(
			"YOU HAVE REACHED YOUR RATE LIMIT.\n\nPLEASE TRY AGAIN AT %s OR LOG IN TO ANOTHER REDDIT ACCOUNT.",
			reset,
		)),
		lines: lines(
			fmt.Sprintf("RATE LIMIT REACHED. RATE LIMIT WILL RESET AT %s.", reset),
			abortingURS,
		),
		code: ExitFailure,
	}
}
