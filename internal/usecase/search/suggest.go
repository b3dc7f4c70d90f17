package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/brightlane/sitesearch/internal/domain/record"
)

// Suggestion list shape: prefix hits lead, substring hits fill the tail.
const (
	maxPrefixSuggestions   = 3
	maxContainsSuggestions = 2
	maxSuggestions         = maxPrefixSuggestions + maxContainsSuggestions
)

// Suggest returns autocomplete titles for the query: record titles starting
// with the query first, then titles merely containing it, de-duplicated in
// first-seen order and capped at five. A blank query yields nothing.
func (s *Service) Suggest(ctx context.Context, query string) ([]string, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	records, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return generateSuggestions(q, records), nil
}

// generateSuggestions is a simple prefix/substring pass, independent of the
// threshold-based scoring in Search.
func generateSuggestions(query string, records []record.Record) []string {
	prefix := make([]string, 0, maxPrefixSuggestions)
	contains := make([]string, 0, maxContainsSuggestions)

	for _, rec := range records {
		title := rec.Title()
		lower := strings.ToLower(title)
		switch {
		case len(prefix) < maxPrefixSuggestions && strings.HasPrefix(lower, query):
			prefix = append(prefix, title)
		case len(contains) < maxContainsSuggestions &&
			!strings.HasPrefix(lower, query) && strings.Contains(lower, query):
			contains = append(contains, title)
		}
	}

	seen := make(map[string]struct{}, maxSuggestions)
	out := make([]string, 0, maxSuggestions)
	for _, title := range append(prefix, contains...) {
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		out = append(out, title)
		if len(out) == maxSuggestions {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
