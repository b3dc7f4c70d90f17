package result

import (
	"testing"

	"github.com/brightlane/sitesearch/internal/domain/record"
)

func TestNew(t *testing.T) {
	rec := record.Reconstruct("r1", "Title", "Desc", record.CategoryPage, "/t", record.Metadata{}, "title desc page")
	r := New(rec, 0.75)

	if r.Record().ID() != "r1" {
		t.Errorf("Record().ID() = %q", r.Record().ID())
	}
	if r.Score() != 0.75 {
		t.Errorf("Score() = %f", r.Score())
	}
	if r.Highlighted() != nil {
		t.Errorf("Highlighted() = %v, want nil", r.Highlighted())
	}
}

func TestSetHighlighted(t *testing.T) {
	rec := record.Reconstruct("r1", "Title", "Desc", record.CategoryPage, "/t", record.Metadata{}, "")
	r := New(rec, 1)

	r.SetHighlighted(Highlighted{Title: "<mark>Title</mark>", Description: "Desc"})

	h := r.Highlighted()
	if h == nil {
		t.Fatal("Highlighted() = nil after SetHighlighted")
	}
	if h.Title != "<mark>Title</mark>" {
		t.Errorf("Title = %q", h.Title)
	}
}
