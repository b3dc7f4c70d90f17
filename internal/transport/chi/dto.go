package chi

import (
	domrec "github.com/brightlane/sitesearch/internal/domain/record"
	searchuc "github.com/brightlane/sitesearch/internal/usecase/search"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type upsertRecordRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	URL         string   `json:"url,omitempty"`
	CreatedAt   int64    `json:"created_at,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

type recordResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	URL         string `json:"url,omitempty"`
	CreatedAt   int64  `json:"created_at,omitempty"`
}

type listRecordsResponse struct {
	Records []recordResponse `json:"records"`
	Total   int              `json:"total"`
}

type highlightedResponse struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type searchResultResponse struct {
	recordResponse
	Score       float64              `json:"score"`
	Highlighted *highlightedResponse `json:"highlighted,omitempty"`
}

type searchResponse struct {
	Query       string                 `json:"query"`
	Results     []searchResultResponse `json:"results"`
	Total       int                    `json:"total"`
	Limit       int                    `json:"limit"`
	Offset      int                    `json:"offset"`
	Suggestions []string               `json:"suggestions,omitempty"`
}

type suggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

func recordToAPI(rec *domrec.Record) recordResponse {
	return recordResponse{
		ID:          rec.ID(),
		Title:       rec.Title(),
		Description: rec.Description(),
		Category:    string(rec.Category()),
		URL:         rec.URL(),
		CreatedAt:   rec.Metadata().CreatedAt,
	}
}

func searchResponseToAPI(resp searchuc.Response) searchResponse {
	results := make([]searchResultResponse, len(resp.Results))
	for i := range resp.Results {
		res := &resp.Results[i]
		rec := res.Record()
		results[i] = searchResultResponse{
			recordResponse: recordToAPI(&rec),
			Score:          res.Score(),
		}
		if h := res.Highlighted(); h != nil {
			results[i].Highlighted = &highlightedResponse{
				Title:       h.Title,
				Description: h.Description,
			}
		}
	}
	return searchResponse{
		Query:       resp.Query,
		Results:     results,
		Total:       resp.Total,
		Limit:       resp.Limit,
		Offset:      resp.Offset,
		Suggestions: resp.Suggestions,
	}
}
