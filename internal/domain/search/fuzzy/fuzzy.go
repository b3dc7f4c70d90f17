// Package fuzzy implements the approximate string-matching primitives behind
// site search: normalized edit-distance similarity, per-record aggregate
// scoring, and query highlighting. All functions are pure and case-insensitive.
package fuzzy

import (
	"regexp"
	"strings"
)

// Scoring defaults. Both are tunable via configuration; the values here are
// the calibrated defaults the ranking expects.
const (
	// ExactMatchBonus is added to a record's running total when its
	// searchable text contains the full query as a substring.
	ExactMatchBonus = 1.0
	// DefaultThreshold is the minimum aggregate score for a record to
	// qualify as a result.
	DefaultThreshold = 0.2
)

// Similarity computes the normalized edit-distance similarity of two strings:
// (maxLen - distance) / maxLen, where distance is the classic
// insert/delete/substitute edit distance. Matching is case-insensitive; both
// inputs are lower-cased internally. Returns a value in [0, 1]; 1 means
// identical (two empty strings are vacuously identical).
func Similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1.0
	}

	dist := editDistance(ra, rb)
	return float64(maxLen-dist) / float64(maxLen)
}

// editDistance computes the Levenshtein distance with a two-row DP table.
func editDistance(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minOf(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// Score computes the aggregate relevance of a record's searchable text for a
// normalized (trimmed, lower-cased) query. query must be the full normalized
// query string and queryWords its whitespace split.
//
// An exact substring hit adds exactBonus to the running total; each query
// word contributes its best word-level similarity when that similarity
// exceeds threshold. The final score is total / max(len(queryWords), 1), or 0
// when nothing matched at all.
func Score(searchableText string, queryWords []string, query string, threshold, exactBonus float64) float64 {
	if len(queryWords) == 0 {
		return 0
	}

	total := 0.0
	matches := 0

	if query != "" && strings.Contains(searchableText, query) {
		total += exactBonus
		matches++
	}

	candidates := strings.Fields(searchableText)
	for _, qw := range queryWords {
		best := 0.0
		for _, cw := range candidates {
			if s := Similarity(qw, cw); s > best {
				best = s
			}
		}
		if best > threshold {
			total += best
			matches++
		}
	}

	if matches == 0 {
		return 0
	}
	return total / float64(len(queryWords))
}

// Highlight wraps case-insensitive occurrences of the full normalized query
// in <mark> tags. The query is escaped with regexp.QuoteMeta so metacharacters
// match literally instead of producing a malformed pattern.
func Highlight(text, query string) string {
	if text == "" || query == "" {
		return text
	}
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(query))
	if err != nil {
		return text
	}
	return re.ReplaceAllString(text, "<mark>${0}</mark>")
}

func minOf(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
