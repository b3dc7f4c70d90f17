package record

import (
	"context"
	"fmt"
	"time"

	"github.com/brightlane/sitesearch/internal/domain"
	domrec "github.com/brightlane/sitesearch/internal/domain/record"
)

// Input is the transport-agnostic shape of an incoming record write.
type Input struct {
	Title       string
	Description string
	Category    string
	URL         string
	CreatedAt   int64
	Keywords    []string
}

// Service handles record CRUD.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a record service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Upsert validates and stores a record under the given ID.
// Returns true if the record was created, false if updated.
func (s *Service) Upsert(ctx context.Context, id string, in Input) (domrec.Record, bool, error) {
	createdAt := in.CreatedAt
	if createdAt == 0 {
		createdAt = s.now().UnixMilli()
	}

	rec, err := domrec.New(
		id, in.Title, in.Description, domrec.Category(in.Category), in.URL,
		domrec.Metadata{CreatedAt: createdAt}, in.Keywords...,
	)
	if err != nil {
		return domrec.Record{}, false, fmt.Errorf("%s: %w", err, domain.ErrInvalidRecord)
	}

	created, err := s.repo.Upsert(ctx, &rec)
	if err != nil {
		return domrec.Record{}, false, fmt.Errorf("upsert record: %w", err)
	}
	return rec, created, nil
}

// Get retrieves a record by ID.
func (s *Service) Get(ctx context.Context, id string) (domrec.Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// Delete removes a record by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// List returns all stored records.
func (s *Service) List(ctx context.Context) ([]domrec.Record, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}
