package sitesearch

import "github.com/brightlane/sitesearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrRecordNotFound = domain.ErrRecordNotFound
	ErrInvalidRecord  = domain.ErrInvalidRecord
	ErrInvalidQuery   = domain.ErrInvalidQuery
)
