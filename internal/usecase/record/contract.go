package record

import (
	"context"

	domrec "github.com/brightlane/sitesearch/internal/domain/record"
)

// Repository defines the storage contract for records.
type Repository interface {
	Upsert(ctx context.Context, rec *domrec.Record) (created bool, err error)
	Get(ctx context.Context, id string) (domrec.Record, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domrec.Record, error)
}
