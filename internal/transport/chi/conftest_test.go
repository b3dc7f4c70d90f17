package chi

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"testing"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/brightlane/sitesearch/internal/domain"
	domrec "github.com/brightlane/sitesearch/internal/domain/record"
	healthuc "github.com/brightlane/sitesearch/internal/usecase/health"
	recorduc "github.com/brightlane/sitesearch/internal/usecase/record"
	searchuc "github.com/brightlane/sitesearch/internal/usecase/search"
)

var errTest = errors.New("store unavailable")

// inMemoryRepo is a map-backed record store shared by the search and
// record services in handler tests.
type inMemoryRepo struct {
	records map[string]domrec.Record
	err     error
}

func newInMemoryRepo() *inMemoryRepo {
	return &inMemoryRepo{records: make(map[string]domrec.Record)}
}

func (r *inMemoryRepo) Upsert(_ context.Context, rec *domrec.Record) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, exists := r.records[rec.ID()]
	r.records[rec.ID()] = *rec
	return !exists, nil
}

func (r *inMemoryRepo) Get(_ context.Context, id string) (domrec.Record, error) {
	if r.err != nil {
		return domrec.Record{}, r.err
	}
	rec, ok := r.records[id]
	if !ok {
		return domrec.Record{}, domain.ErrRecordNotFound
	}
	return rec, nil
}

func (r *inMemoryRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.records[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *inMemoryRepo) List(_ context.Context) ([]domrec.Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	ids := make([]string, 0, len(r.records))
	for id := range r.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]domrec.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.records[id])
	}
	return out, nil
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func seedRecord(t *testing.T, repo *inMemoryRepo, id, title, description string, category domrec.Category) {
	t.Helper()
	rec, err := domrec.New(id, title, description, category, "/"+id, domrec.Metadata{CreatedAt: 1700000000000})
	if err != nil {
		t.Fatalf("record.New: %v", err)
	}
	repo.records[id] = rec
}

// newTestHandler wires a router with real services over the in-memory repo.
func newTestHandler(t *testing.T, repo *inMemoryRepo, dbErr error) http.Handler {
	t.Helper()
	srv := NewServer(
		searchuc.New(repo),
		recorduc.New(repo),
		healthuc.New(&mockPinger{err: dbErr}),
		zap.NewNop(),
	)
	r := gochi.NewRouter()
	srv.Mount(r, BearerAuthMiddleware(nil))
	return r
}
