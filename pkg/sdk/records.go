package sitesearch

import (
	"context"
	"fmt"
	"time"

	domrec "github.com/brightlane/sitesearch/internal/domain/record"
	recorduc "github.com/brightlane/sitesearch/internal/usecase/record"
)

// RecordService manages searchable records.
type RecordService struct {
	svc recordUseCase
	obs *observer
}

// Upsert creates or updates a record under the given ID.
// Returns true if the record was created, false if updated.
func (s *RecordService) Upsert(ctx context.Context, id string, rec Record) (_ bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("record_upsert", start, err) }()

	_, created, err := s.svc.Upsert(ctx, id, recorduc.Input{
		Title:       rec.Title,
		Description: rec.Description,
		Category:    rec.Category,
		URL:         rec.URL,
		CreatedAt:   rec.CreatedAt,
		Keywords:    rec.Keywords,
	})
	if err != nil {
		return false, fmt.Errorf("upsert record: %w", err)
	}
	return created, nil
}

// Get retrieves a record by ID.
func (s *RecordService) Get(ctx context.Context, id string) (_ Record, err error) {
	start := time.Now()
	defer func() { s.obs.observe("record_get", start, err) }()

	rec, err := s.svc.Get(ctx, id)
	if err != nil {
		return Record{}, fmt.Errorf("get record: %w", err)
	}
	return recordFromDomain(&rec), nil
}

// Delete removes a record by ID.
func (s *RecordService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("record_delete", start, err) }()

	if err = s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// List returns all stored records.
func (s *RecordService) List(ctx context.Context) (_ []Record, err error) {
	start := time.Now()
	defer func() { s.obs.observe("record_list", start, err) }()

	records, err := s.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	out := make([]Record, len(records))
	for i := range records {
		out[i] = recordFromDomain(&records[i])
	}
	return out, nil
}

func recordFromDomain(rec *domrec.Record) Record {
	return Record{
		ID:          rec.ID(),
		Title:       rec.Title(),
		Description: rec.Description(),
		Category:    string(rec.Category()),
		URL:         rec.URL(),
		CreatedAt:   rec.Metadata().CreatedAt,
	}
}
