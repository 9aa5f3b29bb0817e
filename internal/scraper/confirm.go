package scraper

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jimezsa/urs/internal/export"
	"github.com/jimezsa/urs/internal/models"
)

// Confirm shows the listings about to be scraped and waits for a yes or no.
// Answering no, closing the input or cancelling ctx returns ErrInterrupted.
func Confirm(ctx context.Context, in io.Reader, out io.Writer, settings models.SubredditSettings, colorEnabled bool) error {
	if err := export.WriteTable(out, []string{"subreddit", "category", "results / keywords", "time filter"}, settingsRows(settings), colorEnabled); err != nil {
		return err
	}

	answers := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(answers)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case answers <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, "\nConfirm export? [Y/n] ")
		select {
		case <-ctx.Done():
			return models.ErrInterrupted
		case answer, ok := <-answers:
			if !ok {
				return models.ErrInterrupted
			}
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "", "y", "yes":
				return nil
			case "n", "no":
				return models.ErrInterrupted
			}
			fmt.Fprintln(out, "Please answer y or n.")
		}
	}
}

func settingsRows(settings models.SubredditSettings) [][]string {
	var rows [][]string
	for _, name := range sortedNames(settings) {
		for _, setting := range settings[name] {
			category, ok := models.CategoryLabel(setting.Category)
			if !ok {
				category = setting.Category
			}
			timeFilter := setting.TimeFilter
			if timeFilter == "" {
				timeFilter = "-"
			}
			rows = append(rows, []string{name, category, setting.Value, timeFilter})
		}
	}
	return rows
}
