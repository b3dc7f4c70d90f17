package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/brightlane/sitesearch/internal/domain"
	domrec "github.com/brightlane/sitesearch/internal/domain/record"
	"github.com/brightlane/sitesearch/internal/domain/search/request"
	"github.com/brightlane/sitesearch/internal/metrics"
	healthuc "github.com/brightlane/sitesearch/internal/usecase/health"
	recorduc "github.com/brightlane/sitesearch/internal/usecase/record"
	searchuc "github.com/brightlane/sitesearch/internal/usecase/search"
)

// Error response codes returned to API clients.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeRecordNotFound   = "record_not_found"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the search and record APIs over HTTP.
type Server struct {
	search        *searchuc.Service
	records       *recorduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	records *recorduc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:  search,
		records: records,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrRecordNotFound, http.StatusNotFound, codeRecordNotFound),
		sentinelHandler(domain.ErrInvalidRecord, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
	}
	return s
}

// Mount registers all API routes on the given router. The record management
// routes are gated by auth; search, suggest, health and metrics are public.
func (s *Server) Mount(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Get("/api/v1/search", s.SearchRecords)
	r.Get("/api/v1/suggest", s.Suggest)
	r.Route("/api/v1/records", func(r chi.Router) {
		r.Use(auth)
		r.Get("/", s.ListRecords)
		r.Put("/{id}", s.UpsertRecord)
		r.Get("/{id}", s.GetRecord)
		r.Delete("/{id}", s.DeleteRecord)
	})
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// SearchRecords handles GET /api/v1/search.
func (s *Server) SearchRecords(w http.ResponseWriter, r *http.Request) {
	req, err := searchRequestFromQuery(r)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("error").Inc()
		s.handleDomainError(w, err)
		return
	}

	outcome := "ok"
	if req.IsBlank() {
		outcome = "blank"
	}
	metrics.SearchRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.SearchResultCount.Observe(float64(resp.Total))

	writeJSON(w, http.StatusOK, searchResponseToAPI(resp))
}

// Suggest handles GET /api/v1/suggest.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if len(query) > request.MaxQueryLength {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "query too long")
		return
	}

	suggestions, err := s.search.Suggest(r.Context(), query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, suggestResponse{
		Query:       query,
		Suggestions: suggestions,
	})
}

// UpsertRecord handles PUT /api/v1/records/{id}.
func (s *Server) UpsertRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req upsertRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	rec, created, err := s.records.Upsert(r.Context(), id, recorduc.Input{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		URL:         req.URL,
		CreatedAt:   req.CreatedAt,
		Keywords:    req.Keywords,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, recordToAPI(&rec))
}

// GetRecord handles GET /api/v1/records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.records.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recordToAPI(&rec))
}

// DeleteRecord handles DELETE /api/v1/records/{id}.
func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.records.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRecords handles GET /api/v1/records.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.records.List(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]recordResponse, len(records))
	for i := range records {
		items[i] = recordToAPI(&records[i])
	}
	writeJSON(w, http.StatusOK, listRecordsResponse{Records: items, Total: len(items)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// searchRequestFromQuery parses and validates search query parameters.
func searchRequestFromQuery(r *http.Request) (*request.Request, error) {
	q := r.URL.Query()

	threshold, err := parseFloatParam(q.Get("threshold"))
	if err != nil {
		return nil, errors.New("threshold must be a number")
	}
	limit, err := parseIntParam(q.Get("limit"))
	if err != nil {
		return nil, errors.New("limit must be an integer")
	}
	offset, err := parseIntParam(q.Get("offset"))
	if err != nil {
		return nil, errors.New("offset must be an integer")
	}
	from, err := parseInt64Param(q.Get("from"))
	if err != nil {
		return nil, errors.New("from must be a unix millisecond timestamp")
	}
	to, err := parseInt64Param(q.Get("to"))
	if err != nil {
		return nil, errors.New("to must be a unix millisecond timestamp")
	}

	req, err := request.New(
		q.Get("q"),
		threshold,
		int(limit), int(offset),
		domrec.Category(q.Get("category")),
		from, to,
		request.Sort(q.Get("sort")),
		q.Get("suggest") == "true",
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func parseFloatParam(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

func parseIntParam(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 32)
}

func parseInt64Param(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrRecordNotFound,
		domain.ErrInvalidRecord,
		domain.ErrInvalidQuery,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
