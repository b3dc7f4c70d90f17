package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/brightlane/sitesearch/internal/domain/record"
	"github.com/brightlane/sitesearch/internal/domain/search/fuzzy"
	"github.com/brightlane/sitesearch/internal/domain/search/request"
	"github.com/brightlane/sitesearch/internal/domain/search/result"
)

// Page size bounds applied when the caller does not configure their own.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Response is the outcome of a search call. Total counts the full filtered
// result set, independent of the page slice in Results; Limit and Offset
// are the effective pagination values after defaulting and clamping.
type Response struct {
	Query       string
	Results     []result.Result
	Total       int
	Limit       int
	Offset      int
	Suggestions []string
}

// Service ranks site records against free-text queries using fuzzy
// word-level matching.
type Service struct {
	source       RecordSource
	threshold    float64
	exactBonus   float64
	defaultLimit int
	maxLimit     int
}

// New creates a search service with the default scoring constants and
// page size bounds.
func New(source RecordSource) *Service {
	return &Service{
		source:       source,
		threshold:    fuzzy.DefaultThreshold,
		exactBonus:   fuzzy.ExactMatchBonus,
		defaultLimit: DefaultPageSize,
		maxLimit:     MaxPageSize,
	}
}

// WithScoring overrides the default threshold and exact-match bonus.
// Zero values keep the defaults.
func (s *Service) WithScoring(threshold, exactBonus float64) *Service {
	if threshold > 0 {
		s.threshold = threshold
	}
	if exactBonus > 0 {
		s.exactBonus = exactBonus
	}
	return s
}

// WithPagination overrides the default and maximum page size.
// Zero values keep the defaults.
func (s *Service) WithPagination(defaultPageSize, maxPageSize int) *Service {
	if defaultPageSize > 0 {
		s.defaultLimit = defaultPageSize
	}
	if maxPageSize > 0 {
		s.maxLimit = maxPageSize
	}
	return s
}

// pageLimit resolves a requested page size against the configured bounds.
func (s *Service) pageLimit(requested int) int {
	if requested <= 0 {
		return s.defaultLimit
	}
	if requested > s.maxLimit {
		return s.maxLimit
	}
	return requested
}

// Search scores every record against the query, filters by threshold and
// request filters, ranks, paginates, and highlights the returned page.
// A blank query returns an empty response with Total = 0.
func (s *Service) Search(ctx context.Context, req *request.Request) (Response, error) {
	limit := s.pageLimit(req.Limit())
	if req.IsBlank() {
		return Response{Query: req.Query(), Limit: limit, Offset: req.Offset()}, nil
	}

	records, err := s.source.List(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("load records: %w", err)
	}

	threshold := req.Threshold()
	if threshold == 0 {
		threshold = s.threshold
	}

	matched := make([]result.Result, 0, len(records))
	for _, rec := range records {
		if !matchesFilters(&rec, req) {
			continue
		}
		score := fuzzy.Score(rec.SearchableText(), req.Words(), req.Query(), threshold, s.exactBonus)
		if score > threshold {
			matched = append(matched, result.New(rec, score))
		}
	}

	sortResults(matched, req.Sort())

	resp := Response{
		Query:   req.Query(),
		Total:   len(matched),
		Limit:   limit,
		Offset:  req.Offset(),
		Results: paginate(matched, req.Offset(), limit),
	}

	for i := range resp.Results {
		rec := resp.Results[i].Record()
		resp.Results[i].SetHighlighted(result.Highlighted{
			Title:       fuzzy.Highlight(rec.Title(), req.Query()),
			Description: fuzzy.Highlight(rec.Description(), req.Query()),
		})
	}

	if req.Suggest() {
		resp.Suggestions = generateSuggestions(req.Query(), records)
	}

	return resp, nil
}

// matchesFilters applies the exact-match category filter and the
// creation-time range filter. Records without a creation time pass an
// unbounded range only.
func matchesFilters(rec *record.Record, req *request.Request) bool {
	if req.Category() != "" && rec.Category() != req.Category() {
		return false
	}
	createdAt := rec.Metadata().CreatedAt
	if req.From() > 0 && createdAt < req.From() {
		return false
	}
	if req.To() > 0 && (createdAt == 0 || createdAt > req.To()) {
		return false
	}
	return true
}

func sortResults(results []result.Result, by request.Sort) {
	switch by {
	case request.SortDate:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Record().Metadata().CreatedAt > results[j].Record().Metadata().CreatedAt
		})
	case request.SortTitle:
		sort.SliceStable(results, func(i, j int) bool {
			ti := strings.ToLower(results[i].Record().Title())
			tj := strings.ToLower(results[j].Record().Title())
			return ti < tj
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score() > results[j].Score()
		})
	}
}

func paginate(results []result.Result, offset, limit int) []result.Result {
	if offset >= len(results) {
		return nil
	}
	end := offset + limit
	if end > len(results) {
		end = len(results)
	}
	return results[offset:end]
}
