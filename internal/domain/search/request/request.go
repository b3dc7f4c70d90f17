package request

import (
	"fmt"
	"strings"

	"github.com/brightlane/sitesearch/internal/domain/record"
)

// MaxQueryLength is the maximum allowed search query length.
const MaxQueryLength = 1024

// Sort is the result ordering strategy.
type Sort string

// Sort orders.
const (
	// SortRelevance orders by descending fuzzy score (default).
	SortRelevance Sort = "relevance"
	SortDate      Sort = "date"
	SortTitle     Sort = "title"
)

// IsValid checks if the sort is one of the supported values.
func (s Sort) IsValid() bool {
	return s == SortRelevance || s == SortDate || s == SortTitle
}

// Request is a validated search query.
//
// The raw query is normalized (trimmed, lower-cased) at construction; a query
// that normalizes to the empty string is legal and yields an empty result set
// rather than an error.
type Request struct {
	rawQuery  string
	query     string
	words     []string
	threshold float64
	limit     int
	offset    int
	category  record.Category
	from      int64
	to        int64
	sort      Sort
	suggest   bool
}

// New validates and normalizes search parameters.
// threshold <= 0 and limit <= 0 both mean "use the configured default";
// category (if set) must be a known record category.
func New(
	rawQuery string,
	threshold float64,
	limit, offset int,
	category record.Category,
	from, to int64,
	sort Sort,
	suggest bool,
) (Request, error) {
	if len(rawQuery) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if threshold < 0 || threshold > 1 {
		return Request{}, fmt.Errorf("threshold must be between 0 and 1")
	}
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	if category != "" && !category.IsValid() {
		return Request{}, fmt.Errorf("unknown category %q", category)
	}
	if from > 0 && to > 0 && to < from {
		return Request{}, fmt.Errorf("date range: to must not precede from")
	}
	if sort == "" {
		sort = SortRelevance
	}
	if !sort.IsValid() {
		return Request{}, fmt.Errorf("invalid sort %q", sort)
	}

	query := strings.ToLower(strings.TrimSpace(rawQuery))

	return Request{
		rawQuery:  rawQuery,
		query:     query,
		words:     strings.Fields(query),
		threshold: threshold,
		limit:     limit,
		offset:    offset,
		category:  category,
		from:      from,
		to:        to,
		sort:      sort,
		suggest:   suggest,
	}, nil
}

// RawQuery returns the query exactly as the caller supplied it.
func (r *Request) RawQuery() string { return r.rawQuery }

// Query returns the normalized (trimmed, lower-cased) query.
func (r *Request) Query() string { return r.query }

// Words returns the whitespace-split normalized query words.
func (r *Request) Words() []string { return r.words }

// IsBlank reports whether the query normalized to the empty string.
func (r *Request) IsBlank() bool { return r.query == "" }

// Threshold returns the minimum aggregate score (0 = configured default).
func (r *Request) Threshold() float64 { return r.threshold }

// Limit returns the requested page size (0 = configured default).
func (r *Request) Limit() int { return r.limit }

// Offset returns the page offset.
func (r *Request) Offset() int { return r.offset }

// Category returns the category filter ("" = no filter).
func (r *Request) Category() record.Category { return r.category }

// From returns the inclusive lower creation-time bound in epoch ms (0 = unbounded).
func (r *Request) From() int64 { return r.from }

// To returns the inclusive upper creation-time bound in epoch ms (0 = unbounded).
func (r *Request) To() int64 { return r.to }

// Sort returns the result ordering strategy.
func (r *Request) Sort() Sort { return r.sort }

// Suggest reports whether autocomplete suggestions were requested.
func (r *Request) Suggest() bool { return r.suggest }
