package sitesearch

// Record is the public shape of a searchable site record.
type Record struct {
	ID          string
	Title       string
	Description string
	Category    string
	URL         string
	CreatedAt   int64 // unix milliseconds; zero means "set on write"

	// Keywords are extra match terms folded into the searchable text
	// without being displayed. Write-only: reads return them empty.
	Keywords []string
}

// Result is a scored search hit.
type Result struct {
	Record
	Score float64

	// HighlightedTitle and HighlightedDescription wrap query matches
	// in <mark> tags.
	HighlightedTitle       string
	HighlightedDescription string
}

// SearchResponse is the outcome of a Search call. Total counts the full
// matched set independent of the returned page.
type SearchResponse struct {
	Query       string
	Results     []Result
	Total       int
	Suggestions []string
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded"
	Checks map[string]string // component -> "ok"/"error"
}
