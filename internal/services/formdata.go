package services

import (
	"net/url"
	"strings"
	"time"
)

const dicebearURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// DefaultAvatar returns the generated avatar URL for name.
func DefaultAvatar(name string) string {
	return dicebearURL + url.QueryEscape(name)
}

// splitList parses a comma separated form value, dropping blanks.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// dedupe keeps the first occurrence of every value.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// nullable maps an empty form value to NULL.
func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parseDate accepts a date (2006-01-02) or an RFC 3339 timestamp. Empty
// input yields nil.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// monthYear formats t as "NOV 2023".
func monthYear(t time.Time) string {
	return strings.ToUpper(t.Format("Jan 2006"))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
