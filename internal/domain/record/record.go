package record

import (
	"fmt"
	"regexp"
	"strings"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxTitleLength is the maximum record title length in bytes.
const MaxTitleLength = 512

// Category classifies a searchable record.
type Category string

// Record categories.
const (
	CategoryProject   Category = "project"
	CategoryUser      Category = "user"
	CategoryDocument  Category = "document"
	CategoryAnalytics Category = "analytics"
	CategorySetting   Category = "setting"
	CategoryPage      Category = "page"
)

// IsValid checks if the category is one of the supported values.
func (c Category) IsValid() bool {
	switch c {
	case CategoryProject, CategoryUser, CategoryDocument, CategoryAnalytics, CategorySetting, CategoryPage:
		return true
	}
	return false
}

// Metadata holds auxiliary record fields used for filtering and sorting,
// never for scoring.
type Metadata struct {
	// CreatedAt is epoch milliseconds; 0 means unset.
	CreatedAt int64
}

// Record is a searchable site record (immutable value object).
// searchableText is the only field the scoring engine reads; it is
// denormalized at construction time and always lower-cased.
type Record struct {
	id             string
	title          string
	description    string
	category       Category
	url            string
	metadata       Metadata
	searchableText string
}

// New validates and creates a Record. Keywords are extra terms folded into
// the searchable text without being displayed anywhere.
func New(
	id, title, description string, category Category, url string,
	metadata Metadata, keywords ...string,
) (Record, error) {
	if id == "" {
		return Record{}, fmt.Errorf("record ID is required")
	}
	if len(id) > 256 {
		return Record{}, fmt.Errorf("record ID too long (max 256)")
	}
	if !idRegex.MatchString(id) {
		return Record{}, fmt.Errorf("record ID must be alphanumeric with underscores and hyphens")
	}
	if title == "" {
		return Record{}, fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLength {
		return Record{}, fmt.Errorf("title too long (max %d bytes)", MaxTitleLength)
	}
	if !category.IsValid() {
		return Record{}, fmt.Errorf("unknown category %q", category)
	}

	return Record{
		id:             id,
		title:          title,
		description:    description,
		category:       category,
		url:            url,
		metadata:       metadata,
		searchableText: buildSearchableText(title, description, category, keywords),
	}, nil
}

// Reconstruct creates a Record without validation (storage hydration).
// searchableText is taken as stored; an empty value is valid and never
// matches a non-empty query.
func Reconstruct(
	id, title, description string, category Category, url string,
	metadata Metadata, searchableText string,
) Record {
	return Record{
		id: id, title: title, description: description, category: category,
		url: url, metadata: metadata, searchableText: searchableText,
	}
}

// ID returns the record identifier.
func (r Record) ID() string { return r.id }

// Title returns the short display string.
func (r Record) Title() string { return r.title }

// Description returns the longer display string.
func (r Record) Description() string { return r.description }

// Category returns the record kind.
func (r Record) Category() Category { return r.category }

// URL returns the navigation target.
func (r Record) URL() string { return r.url }

// Metadata returns the auxiliary filter/sort fields.
func (r Record) Metadata() Metadata { return r.metadata }

// SearchableText returns the lower-cased denormalized match text.
func (r Record) SearchableText() string { return r.searchableText }

func buildSearchableText(title, description string, category Category, keywords []string) string {
	parts := make([]string, 0, 3+len(keywords))
	parts = append(parts, title, description, string(category))
	parts = append(parts, keywords...)

	nonEmpty := parts[:0]
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, " "))
}
