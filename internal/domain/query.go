package domain

import (
	"regexp"
	"strings"
)

const MaxQueryLength = 300

var whitespaceOnly = regexp.MustCompile(`^\s+$`)

// ValidateQuery trims the raw input and returns the query text a search
// cycle may use. Empty input and whitespace-only input are rejected by
// separate explicit checks; the two cases must stay behaviorally
// identical.
func ValidateQuery(raw string) (string, error) {
	if raw == "" || whitespaceOnly.MatchString(raw) {
		return "", ErrEmptyQuery
	}

	query := strings.TrimSpace(raw)
	if query == "" {
		return "", ErrEmptyQuery
	}
	if len(query) > MaxQueryLength {
		return "", ErrQueryTooLong
	}

	return query, nil
}
