package app

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	preparedBinaryResultKey = "disable_prepared_binary_result"
	maxTracedQueryLength    = 512
)

var (
	queryWhitespaceRegex = regexp.MustCompile(`\s+`)
	queryCommentRegex    = regexp.MustCompile(`--[^\n]*`)
)

// normalizeDBURL turns off binary results for prepared statements unless the
// connection string already says otherwise. Both URL and key=value DSNs are
// accepted.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult || strings.TrimSpace(raw) == "" {
		return raw
	}

	if !isURLDSN(raw) {
		if dsnValue(raw, preparedBinaryResultKey) != "" {
			return raw
		}
		return strings.TrimSpace(raw) + " " + preparedBinaryResultKey + "=yes"
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}
	query := parsed.Query()
	if query.Get(preparedBinaryResultKey) == "" {
		query.Set(preparedBinaryResultKey, "yes")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if isURLDSN(trimmed) {
		parsed, err := url.Parse(trimmed)
		if err != nil || parsed == nil {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}
	return dsnValue(trimmed, "dbname")
}

func isURLDSN(raw string) bool {
	return strings.Contains(raw, "://")
}

func dsnValue(dsn, key string) string {
	for _, token := range strings.Fields(dsn) {
		name, value, ok := strings.Cut(token, "=")
		if !ok || name != key {
			continue
		}
		return strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return ""
}

// formatDBQueryForTrace drops line comments, collapses whitespace and caps
// the statement recorded on DB spans.
func formatDBQueryForTrace(query string) string {
	query = queryCommentRegex.ReplaceAllString(query, "")
	normalized := strings.TrimSpace(queryWhitespaceRegex.ReplaceAllString(query, " "))
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}

	return normalized[:maxTracedQueryLength] + "..."
}
