package sitesearch

import (
	"context"
	"fmt"
	"time"

	"github.com/brightlane/sitesearch/internal/domain"
	domrec "github.com/brightlane/sitesearch/internal/domain/record"
	"github.com/brightlane/sitesearch/internal/domain/search/request"
)

// Sort orders for search results.
const (
	SortRelevance = "relevance"
	SortDate      = "date"
	SortTitle     = "title"
)

// SearchOption narrows or reorders a Search call.
type SearchOption func(*searchParams)

type searchParams struct {
	threshold float64
	limit     int
	offset    int
	category  string
	from      int64
	to        int64
	sort      string
	suggest   bool
}

// WithThreshold overrides the similarity threshold for this call.
func WithThreshold(t float64) SearchOption {
	return func(p *searchParams) { p.threshold = t }
}

// WithLimit caps the number of returned results. Default 20, max 100.
func WithLimit(n int) SearchOption {
	return func(p *searchParams) { p.limit = n }
}

// WithOffset skips the first n matches for pagination.
func WithOffset(n int) SearchOption {
	return func(p *searchParams) { p.offset = n }
}

// WithCategory keeps only records of the given category.
func WithCategory(category string) SearchOption {
	return func(p *searchParams) { p.category = category }
}

// WithCreatedBetween keeps records created inside [from, to], unix
// milliseconds. A zero bound is open.
func WithCreatedBetween(from, to int64) SearchOption {
	return func(p *searchParams) {
		p.from = from
		p.to = to
	}
}

// WithSort sets the result order: SortRelevance (default), SortDate or SortTitle.
func WithSort(sort string) SearchOption {
	return func(p *searchParams) { p.sort = sort }
}

// WithSuggestions includes autocomplete suggestions in the response.
func WithSuggestions() SearchOption {
	return func(p *searchParams) { p.suggest = true }
}

// Search ranks stored records against the query. A blank query returns an
// empty response.
func (c *Client) Search(ctx context.Context, query string, opts ...SearchOption) (_ SearchResponse, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, err) }()

	var p searchParams
	for _, o := range opts {
		o(&p)
	}

	req, err := request.New(
		query, p.threshold, p.limit, p.offset,
		domrec.Category(p.category), p.from, p.to,
		request.Sort(p.sort), p.suggest,
	)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("%s: %w", err, domain.ErrInvalidQuery)
	}

	resp, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return SearchResponse{}, fmt.Errorf("search: %w", err)
	}

	out := SearchResponse{
		Query:       resp.Query,
		Total:       resp.Total,
		Suggestions: resp.Suggestions,
		Results:     make([]Result, len(resp.Results)),
	}
	for i := range resp.Results {
		res := &resp.Results[i]
		rec := res.Record()
		out.Results[i] = Result{
			Record: recordFromDomain(&rec),
			Score:  res.Score(),
		}
		if h := res.Highlighted(); h != nil {
			out.Results[i].HighlightedTitle = h.Title
			out.Results[i].HighlightedDescription = h.Description
		}
	}
	return out, nil
}

// Suggest returns up to five autocomplete titles for a partial query.
func (c *Client) Suggest(ctx context.Context, query string) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("suggest", start, err) }()

	suggestions, err := c.searchSvc.Suggest(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}
	return suggestions, nil
}
