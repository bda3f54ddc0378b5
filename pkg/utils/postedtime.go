package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Clock supplies the current instant; swapped in tests.
type Clock func() time.Time

var (
	relativeTimeRe = regexp.MustCompile(`(?i)(\d+)\s*(minute|min|hour|hr|day|week|month)s?\s*ago`)
	isoZRe         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`)
)

// NormalizePostedTime converts a free-form posted-time string into an absolute
// ISO-8601 UTC timestamp with second precision and a "Z" suffix. Relative
// strings ("2 hours ago", "3 hrs ago", "just now") resolve against the given
// clock; strings already in ISO-8601 "Z" form pass through unchanged;
// anything unparseable falls back to now.
func NormalizePostedTime(raw string, now Clock) string {
	if now == nil {
		now = time.Now
	}

	s := strings.TrimSpace(raw)
	if isoZRe.MatchString(s) {
		return s
	}

	current := now().UTC().Truncate(time.Second)

	lower := strings.ToLower(s)
	if lower == "just now" || lower == "now" || lower == "today" {
		return current.Format("2006-01-02T15:04:05Z")
	}
	if lower == "yesterday" {
		return current.Add(-24 * time.Hour).Format("2006-01-02T15:04:05Z")
	}

	if m := relativeTimeRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			var d time.Duration
			switch strings.ToLower(m[2]) {
			case "minute", "min":
				d = time.Duration(n) * time.Minute
			case "hour", "hr":
				d = time.Duration(n) * time.Hour
			case "day":
				d = time.Duration(n) * 24 * time.Hour
			case "week":
				d = time.Duration(n) * 7 * 24 * time.Hour
			case "month":
				d = time.Duration(n) * 30 * 24 * time.Hour
			}
			return current.Add(-d).Format("2006-01-02T15:04:05Z")
		}
	}

	return current.Format("2006-01-02T15:04:05Z")
}
