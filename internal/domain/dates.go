package domain

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseReleaseDate parses a free-form release-date filter value supplied by
// API callers ("2024-01-05", "Jan 5, 2024", "last year", "yesterday", ...)
// into a date in the given location. Relative tokens resolve against ref.
func ParseReleaseDate(value string, ref time.Time, loc *time.Location) (time.Time, bool) {
	token := strings.ToLower(strings.TrimSpace(value))
	if token == "" {
		return time.Time{}, false
	}

	if t, ok := resolveRelativeDate(token, ref, loc); ok {
		return t, true
	}

	t, err := dateparse.ParseIn(token, loc)
	if err != nil {
		return time.Time{}, false
	}
	return dateOnly(t), true
}

func resolveRelativeDate(token string, ref time.Time, loc *time.Location) (time.Time, bool) {
	ref = dateOnly(ref.In(loc))

	switch token {
	case "today":
		return ref, true
	case "yesterday":
		return ref.AddDate(0, 0, -1), true
	case "last week":
		return ref.AddDate(0, 0, -7), true
	case "last month":
		return ref.AddDate(0, -1, 0), true
	case "last year":
		return ref.AddDate(-1, 0, 0), true
	}

	return time.Time{}, false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
