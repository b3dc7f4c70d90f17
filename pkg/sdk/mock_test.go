package sitesearch

import (
	"context"

	domrec "github.com/brightlane/sitesearch/internal/domain/record"
	"github.com/brightlane/sitesearch/internal/domain/search/request"
	healthuc "github.com/brightlane/sitesearch/internal/usecase/health"
	recorduc "github.com/brightlane/sitesearch/internal/usecase/record"
	searchuc "github.com/brightlane/sitesearch/internal/usecase/search"
)

type mockSearchUC struct {
	searchResp  searchuc.Response
	searchErr   error
	lastRequest *request.Request
	suggestions []string
	suggestErr  error
}

func (m *mockSearchUC) Search(_ context.Context, req *request.Request) (searchuc.Response, error) {
	m.lastRequest = req
	return m.searchResp, m.searchErr
}

func (m *mockSearchUC) Suggest(_ context.Context, _ string) ([]string, error) {
	return m.suggestions, m.suggestErr
}

type mockRecordUC struct {
	upserted  domrec.Record
	created   bool
	upsertErr error
	lastInput recorduc.Input
	getResult domrec.Record
	getErr    error
	deleteErr error
	listOut   []domrec.Record
	listErr   error
}

func (m *mockRecordUC) Upsert(_ context.Context, _ string, in recorduc.Input) (domrec.Record, bool, error) {
	m.lastInput = in
	return m.upserted, m.created, m.upsertErr
}

func (m *mockRecordUC) Get(_ context.Context, _ string) (domrec.Record, error) {
	return m.getResult, m.getErr
}

func (m *mockRecordUC) Delete(_ context.Context, _ string) error { return m.deleteErr }

func (m *mockRecordUC) List(_ context.Context) ([]domrec.Record, error) {
	return m.listOut, m.listErr
}

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

func newTestClient(search *mockSearchUC, records *mockRecordUC, health *mockHealthUC) *Client {
	if search == nil {
		search = &mockSearchUC{}
	}
	if records == nil {
		records = &mockRecordUC{}
	}
	if health == nil {
		health = &mockHealthUC{}
	}
	return &Client{
		searchSvc: search,
		recordSvc: records,
		healthSvc: health,
	}
}
