package logging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jimezsa/urs/internal/export"
	"github.com/jimezsa/urs/internal/models"
)

// windowed lists the time filters worth mentioning; "all" is Reddit's default.
var windowed = map[string]struct{}{
	"day":   {},
	"hour":  {},
	"month": {},
	"week":  {},
	"year":  {},
}

func exportMessage(format export.Format) string {
	if format == export.FormatCSV {
		return "Exporting to CSV."
	}
	return "Exporting to JSON."
}

func subredditLines(settings models.SubredditSettings) []string {
	var out []string
	for _, name := range sortedKeys(settings) {
		for _, setting := range settings[name] {
			label := categoryLabel(setting.Category)
			if _, ok := windowed[setting.TimeFilter]; ok {
				out = append(out, fmt.Sprintf("Getting posts from the past %s for %s results.", setting.TimeFilter, label))
			}
			if strings.EqualFold(setting.Category, models.CategorySearch) {
				out = append(out, fmt.Sprintf("Searching and scraping r/%s for posts containing '%s'...", name, setting.Value))
			} else {
				out = append(out, fmt.Sprintf("Scraping r/%s for %s %s results...", name, setting.Value, label))
			}
			out = append(out, "")
		}
	}
	return out
}

func redditorLines(settings models.RedditorSettings) []string {
	var out []string
	for _, name := range sortedKeys(settings) {
		n := settings[name]
		out = append(out, fmt.Sprintf("Scraping %d %s for u/%s...", n, plural(n), name), "")
	}
	return out
}

func commentLines(settings models.CommentSettings) []string {
	var out []string
	for _, post := range sortedKeys(settings) {
		n := settings[post]
		if n == 0 {
			out = append(out, fmt.Sprintf("Processing all comments from Reddit post %s...", post), "")
			continue
		}
		out = append(out, fmt.Sprintf("Processing %d %s from Reddit post %s...", n, plural(n), post), "")
	}
	return out
}

func categoryLabel(code string) string {
	if label, ok := models.CategoryLabel(code); ok {
		return label
	}
	return strings.ToUpper(code)
}

func plural(n int) string {
	if n > 1 {
		return "results"
	}
	return "result"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
