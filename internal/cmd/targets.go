package cmd

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jimezsa/urs/internal/logging"
	"github.com/jimezsa/urs/internal/models"
	"github.com/jimezsa/urs/internal/reddit"
)

var (
	subredditName = regexp.MustCompile(`^[A-Za-z0-9_]{2,21}$`)
	redditorName  = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)
)

// check is one validation step; label names the argument in messages.
type check struct {
	label string
	run   func() error
}

// validate runs checks in order through the logger so the first bad
// argument aborts with its own label.
func validate(log *logging.Logger, checks ...check) error {
	for _, c := range checks {
		if err := log.Argument(c.label, c.run); err != nil {
			return err
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", models.ErrInvalidValue, fmt.Sprintf(format, args...))
}

type subredditTarget struct {
	name       string
	category   string
	value      string
	timeFilter string
}

// splitSubredditTargets parses NAME:CATEGORY:N[:TIME_FILTER] and
// NAME:s:KEYWORDS[:TIME_FILTER]. Keywords may not contain colons.
func splitSubredditTargets(raw []string) ([]subredditTarget, error) {
	targets := make([]subredditTarget, 0, len(raw))
	for _, value := range raw {
		parts := strings.Split(value, ":")
		if len(parts) < 3 || len(parts) > 4 {
			return nil, invalid("%q: want SUBREDDIT:CATEGORY:N[:TIME_FILTER]", value)
		}
		name := strings.TrimPrefix(strings.TrimSpace(parts[0]), "r/")
		if !subredditName.MatchString(name) {
			return nil, invalid("%q is not a subreddit name", parts[0])
		}
		target := subredditTarget{
			name:     name,
			category: strings.ToLower(strings.TrimSpace(parts[1])),
			value:    strings.TrimSpace(parts[2]),
		}
		if len(parts) == 4 {
			target.timeFilter = strings.ToLower(strings.TrimSpace(parts[3]))
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func checkCategories(targets []subredditTarget) error {
	for _, target := range targets {
		if _, ok := models.CategoryLabel(target.category); !ok {
			return invalid("unknown category %q for r/%s", target.category, target.name)
		}
	}
	return nil
}

func checkResultCounts(targets []subredditTarget) error {
	for _, target := range targets {
		if target.category == models.CategorySearch {
			if target.value == "" {
				return invalid("empty search for r/%s", target.name)
			}
			continue
		}
		if _, err := parseCount(target.value, 1); err != nil {
			return err
		}
	}
	return nil
}

// checkTimeFilters allows a window only where Reddit honours one.
func checkTimeFilters(targets []subredditTarget) error {
	for _, target := range targets {
		if target.timeFilter == "" {
			continue
		}
		switch target.category {
		case models.CategoryControversial, models.CategoryTop, models.CategorySearch:
		default:
			return invalid("time filters apply to controversial, top and search, not %q", target.category)
		}
		if !models.IsTimeFilter(target.timeFilter) {
			return invalid("unknown time filter %q", target.timeFilter)
		}
	}
	return nil
}

func subredditSettings(targets []subredditTarget) models.SubredditSettings {
	settings := models.SubredditSettings{}
	for _, target := range targets {
		settings[target.name] = append(settings[target.name], models.SubredditSetting{
			Category:   target.category,
			Value:      target.value,
			TimeFilter: target.timeFilter,
		})
	}
	return settings
}

// parseSubredditTargets validates raw targets one argument kind at a time.
func parseSubredditTargets(log *logging.Logger, raw []string) (models.SubredditSettings, error) {
	var targets []subredditTarget
	err := validate(log,
		check{"subreddit", func() (err error) {
			targets, err = splitSubredditTargets(raw)
			return err
		}},
		check{"category", func() error { return checkCategories(targets) }},
		check{"number of results", func() error { return checkResultCounts(targets) }},
		check{"time filter", func() error { return checkTimeFilters(targets) }},
	)
	if err != nil {
		return nil, err
	}
	return subredditSettings(targets), nil
}

// splitCountTarget splits KEY:N at the last colon so URLs keep their scheme.
func splitCountTarget(value string) (string, string, bool) {
	idx := strings.LastIndex(value, ":")
	if idx <= 0 || idx == len(value)-1 {
		return "", "", false
	}
	key, count := strings.TrimSpace(value[:idx]), strings.TrimSpace(value[idx+1:])
	if strings.Contains(count, "/") {
		return "", "", false
	}
	return key, count, true
}

func parseCount(value string, min int) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, invalid("%q is not a number", value)
	}
	if n < min {
		return 0, invalid("%d is below %d", n, min)
	}
	return n, nil
}

// parseRedditorTargets accepts NAME:N with N of at least one.
func parseRedditorTargets(log *logging.Logger, raw []string) (models.RedditorSettings, error) {
	names := make([]string, len(raw))
	counts := make([]string, len(raw))
	settings := models.RedditorSettings{}
	err := validate(log,
		check{"redditor", func() error {
			for i, value := range raw {
				name, count, ok := splitCountTarget(value)
				name = strings.TrimPrefix(strings.TrimPrefix(name, "/"), "u/")
				if !ok || !redditorName.MatchString(name) {
					return invalid("%q: want REDDITOR:N", value)
				}
				names[i], counts[i] = name, count
			}
			return nil
		}},
		check{"number of results", func() error {
			for i, count := range counts {
				n, err := parseCount(count, 1)
				if err != nil {
					return err
				}
				settings[names[i]] = n
			}
			return nil
		}},
	)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// parseCommentTargets accepts URL:N or ID:N; N of zero pulls every comment.
func parseCommentTargets(log *logging.Logger, raw []string) (models.CommentSettings, error) {
	posts := make([]string, len(raw))
	counts := make([]string, len(raw))
	settings := models.CommentSettings{}
	err := validate(log,
		check{"post", func() error {
			for i, value := range raw {
				post, count, ok := splitCountTarget(value)
				if !ok {
					return invalid("%q: want POST:N", value)
				}
				if _, err := reddit.ParseSubmissionID(post); err != nil {
					return invalid("%v", err)
				}
				posts[i], counts[i] = post, count
			}
			return nil
		}},
		check{"number of results", func() error {
			for i, count := range counts {
				n, err := parseCount(count, 0)
				if err != nil {
					return err
				}
				settings[posts[i]] = n
			}
			return nil
		}},
	)
	if err != nil {
		return nil, err
	}
	return settings, nil
}
