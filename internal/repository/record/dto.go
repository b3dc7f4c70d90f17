package record

import (
	"strconv"

	domrec "github.com/brightlane/sitesearch/internal/domain/record"
)

// Hash field names for stored records.
const (
	fieldTitle       = "title"
	fieldDescription = "description"
	fieldCategory    = "category"
	fieldURL         = "url"
	fieldCreatedAt   = "created_at"
	fieldSearchText  = "searchable_text"
)

// buildHashFields converts a domain Record into a flat map[string]string for HSET.
func buildHashFields(rec *domrec.Record) map[string]string {
	m := map[string]string{
		fieldTitle:       rec.Title(),
		fieldDescription: rec.Description(),
		fieldCategory:    string(rec.Category()),
		fieldURL:         rec.URL(),
		fieldSearchText:  rec.SearchableText(),
	}
	if at := rec.Metadata().CreatedAt; at > 0 {
		m[fieldCreatedAt] = strconv.FormatInt(at, 10)
	}
	return m
}

// parseHashFields converts a flat hash map back into a domain Record.
func parseHashFields(id string, m map[string]string) domrec.Record {
	var createdAt int64
	if v := m[fieldCreatedAt]; v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			createdAt = parsed
		}
	}

	return domrec.Reconstruct(
		id,
		m[fieldTitle],
		m[fieldDescription],
		domrec.Category(m[fieldCategory]),
		m[fieldURL],
		domrec.Metadata{CreatedAt: createdAt},
		m[fieldSearchText],
	)
}

// recordDTO is the JSON shape used by the List snapshot cache.
type recordDTO struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Category       string `json:"category"`
	URL            string `json:"url,omitempty"`
	CreatedAt      int64  `json:"created_at,omitempty"`
	SearchableText string `json:"searchable_text"`
}

func dtoFromDomain(rec *domrec.Record) recordDTO {
	return recordDTO{
		ID:             rec.ID(),
		Title:          rec.Title(),
		Description:    rec.Description(),
		Category:       string(rec.Category()),
		URL:            rec.URL(),
		CreatedAt:      rec.Metadata().CreatedAt,
		SearchableText: rec.SearchableText(),
	}
}

func (d recordDTO) toDomain() domrec.Record {
	return domrec.Reconstruct(
		d.ID, d.Title, d.Description, domrec.Category(d.Category), d.URL,
		domrec.Metadata{CreatedAt: d.CreatedAt}, d.SearchableText,
	)
}
