package result

import "github.com/brightlane/sitesearch/internal/domain/record"

// Highlighted holds display fields with query occurrences wrapped in
// <mark> tags. Produced only for the returned page of results.
type Highlighted struct {
	Title       string
	Description string
}

// Result is a single search hit: the matched record plus its fuzzy score.
type Result struct {
	rec         record.Record
	score       float64
	highlighted *Highlighted
}

// New creates a search result.
func New(rec record.Record, score float64) Result {
	return Result{rec: rec, score: score}
}

// Record returns the matched record.
func (r *Result) Record() record.Record { return r.rec }

// Score returns the aggregate fuzzy relevance score.
func (r *Result) Score() float64 { return r.score }

// Highlighted returns the highlighted display fields (nil until set).
func (r *Result) Highlighted() *Highlighted { return r.highlighted }

// SetHighlighted attaches highlighted display fields.
func (r *Result) SetHighlighted(h Highlighted) { r.highlighted = &h }
