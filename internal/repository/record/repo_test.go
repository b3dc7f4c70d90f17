package record

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/brightlane/sitesearch/internal/domain"
	domrec "github.com/brightlane/sitesearch/internal/domain/record"
)

// --- Upsert ---

func TestUpsert_Create(t *testing.T) {
	repo, ms := newTestRepo()
	ctx := context.Background()
	rec := testRecord(t)

	ms.existsFn = func(_ context.Context, key string) (bool, error) {
		if key != "sitesearch:record:dashboard" {
			t.Errorf("unexpected key: %s", key)
		}
		return false, nil
	}
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		if key != "sitesearch:record:dashboard" {
			t.Errorf("unexpected key: %s", key)
		}
		if fields[fieldTitle] != "Dashboard" {
			t.Errorf("title field = %q", fields[fieldTitle])
		}
		if fields[fieldSearchText] == "" {
			t.Error("searchable_text must be persisted")
		}
		return nil
	}

	created, err := repo.Upsert(ctx, &rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("created = false, want true")
	}
}

func TestUpsert_Update(t *testing.T) {
	repo, ms := newTestRepo()
	rec := testRecord(t)

	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }

	created, err := repo.Upsert(context.Background(), &rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("created = true, want false for existing record")
	}
}

func TestUpsert_StoreError(t *testing.T) {
	repo, ms := newTestRepo()
	rec := testRecord(t)
	wantErr := errors.New("connection refused")

	ms.hsetFn = func(_ context.Context, _ string, _ map[string]string) error { return wantErr }

	if _, err := repo.Upsert(context.Background(), &rec); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want wrapped %v", err, wantErr)
	}
}

// --- Get ---

func TestGet(t *testing.T) {
	repo, ms := newTestRepo()

	ms.hgetAllFn = func(_ context.Context, key string) (map[string]string, error) {
		if key != "sitesearch:record:dashboard" {
			t.Errorf("unexpected key: %s", key)
		}
		return map[string]string{
			fieldTitle:       "Dashboard",
			fieldDescription: "Home overview",
			fieldCategory:    "page",
			fieldURL:         "/dashboard",
			fieldCreatedAt:   "1700000000000",
			fieldSearchText:  "dashboard home overview page",
		}, nil
	}

	rec, err := repo.Get(context.Background(), "dashboard")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID() != "dashboard" || rec.Title() != "Dashboard" {
		t.Errorf("got %q/%q", rec.ID(), rec.Title())
	}
	if rec.Category() != domrec.CategoryPage {
		t.Errorf("Category = %q", rec.Category())
	}
	if rec.Metadata().CreatedAt != 1700000000000 {
		t.Errorf("CreatedAt = %d", rec.Metadata().CreatedAt)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, _ := newTestRepo()

	// Empty hash map means the key does not exist.
	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}
}

// --- Delete ---

func TestDelete(t *testing.T) {
	repo, ms := newTestRepo()
	ms.existsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }

	if err := repo.Delete(context.Background(), "dashboard"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ms.delCalls) == 0 || ms.delCalls[0] != "sitesearch:record:dashboard" {
		t.Errorf("delCalls = %v", ms.delCalls)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, _ := newTestRepo()

	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("err = %v, want ErrRecordNotFound", err)
	}
}

// --- List ---

func TestList(t *testing.T) {
	repo, ms := newTestRepo()

	ms.scanFn = func(_ context.Context, pattern string) ([]string, error) {
		if pattern != "sitesearch:record:*" {
			t.Errorf("scan pattern = %q", pattern)
		}
		return []string{"sitesearch:record:a", "sitesearch:record:b"}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, keys []string) ([]map[string]string, error) {
		return []map[string]string{
			{fieldTitle: "A", fieldCategory: "page", fieldSearchText: "a page"},
			{fieldTitle: "B", fieldCategory: "project", fieldSearchText: "b project"},
		}, nil
	}

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len = %d, want 2", len(records))
	}
	if records[0].ID() != "a" || records[1].ID() != "b" {
		t.Errorf("ids = %q, %q", records[0].ID(), records[1].ID())
	}
}

func TestList_SkipsVanishedKeys(t *testing.T) {
	repo, ms := newTestRepo()

	ms.scanFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{"sitesearch:record:a", "sitesearch:record:gone"}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, _ []string) ([]map[string]string, error) {
		return []map[string]string{
			{fieldTitle: "A", fieldCategory: "page", fieldSearchText: "a"},
			{}, // key deleted between SCAN and HGETALL
		}, nil
	}

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len = %d, want 1", len(records))
	}
}

func TestList_Empty(t *testing.T) {
	repo, _ := newTestRepo()

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records != nil {
		t.Errorf("records = %v, want nil", records)
	}
}

// --- Snapshot cache ---

func TestList_SnapshotHit(t *testing.T) {
	repo, ms := newTestRepo()
	repo.WithSnapshotCache(30 * time.Second)

	snapshot, _ := json.Marshal([]recordDTO{
		{ID: "a", Title: "A", Category: "page", SearchableText: "a page"},
	})
	ms.getFn = func(_ context.Context, key string) ([]byte, error) {
		if key != "sitesearch:records:snapshot" {
			t.Errorf("snapshot key = %q", key)
		}
		return snapshot, nil
	}
	ms.scanFn = func(_ context.Context, _ string) ([]string, error) {
		t.Error("snapshot hit must not scan")
		return nil, nil
	}

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].ID() != "a" {
		t.Errorf("records = %v", records)
	}
}

func TestList_SnapshotMissStoresSnapshot(t *testing.T) {
	repo, ms := newTestRepo()
	repo.WithSnapshotCache(30 * time.Second)

	ms.scanFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{"sitesearch:record:a"}, nil
	}
	ms.hgetAllMultiFn = func(_ context.Context, _ []string) ([]map[string]string, error) {
		return []map[string]string{{fieldTitle: "A", fieldCategory: "page", fieldSearchText: "a"}}, nil
	}

	if _, err := repo.List(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ms.setCalls) != 1 || ms.setCalls[0] != "sitesearch:records:snapshot" {
		t.Errorf("setCalls = %v, want snapshot write", ms.setCalls)
	}
}

func TestUpsert_InvalidatesSnapshot(t *testing.T) {
	repo, ms := newTestRepo()
	repo.WithSnapshotCache(30 * time.Second)
	rec := testRecord(t)

	if _, err := repo.Upsert(context.Background(), &rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, k := range ms.delCalls {
		if k == "sitesearch:records:snapshot" {
			found = true
		}
	}
	if !found {
		t.Error("upsert must invalidate the snapshot cache")
	}
}
