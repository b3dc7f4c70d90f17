package search

import (
	"context"

	"github.com/brightlane/sitesearch/internal/domain/record"
)

// RecordSource supplies the candidate record set for a search invocation.
// Records are loaded fresh on every call; the engine never mutates them.
type RecordSource interface {
	List(ctx context.Context) ([]record.Record, error)
}
