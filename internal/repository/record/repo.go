package record

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/brightlane/sitesearch/internal/domain"
	domrec "github.com/brightlane/sitesearch/internal/domain/record"
)

// store is the consumer interface for records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Repo stores searchable records as Redis hashes under
// {prefix}record:{id}. List optionally serves a short-lived JSON snapshot
// from a KV key to keep per-search SCAN traffic down.
type Repo struct {
	store       store
	prefix      string
	snapshotTTL time.Duration
}

// New creates a record repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// WithSnapshotCache enables the List snapshot cache with the given TTL.
func (r *Repo) WithSnapshotCache(ttl time.Duration) *Repo {
	r.snapshotTTL = ttl
	return r
}

// Upsert creates or updates a record. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, rec *domrec.Record) (bool, error) {
	key := r.recordKey(rec.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.HSet(ctx, key, buildHashFields(rec)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, err)
	}

	r.invalidateSnapshot(ctx)
	return !exists, nil
}

// Get returns a record by ID.
func (r *Repo) Get(ctx context.Context, id string) (domrec.Record, error) {
	key := r.recordKey(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domrec.Record{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return domrec.Record{}, domain.ErrRecordNotFound
	}
	return parseHashFields(id, fields), nil
}

// Delete removes a record by ID.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.recordKey(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrRecordNotFound
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}

	r.invalidateSnapshot(ctx)
	return nil
}

// List returns all records. With the snapshot cache enabled, a fresh scan is
// taken only when the cached snapshot has expired or was invalidated.
func (r *Repo) List(ctx context.Context) ([]domrec.Record, error) {
	if r.snapshotTTL > 0 {
		if records, ok := r.snapshotLoad(ctx); ok {
			return records, nil
		}
	}

	keys, err := r.store.Scan(ctx, r.prefix+"record:*")
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	maps, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	records := make([]domrec.Record, 0, len(maps))
	for i, m := range maps {
		if len(m) == 0 {
			continue // deleted between SCAN and HGETALL
		}
		records = append(records, parseHashFields(r.extractID(keys[i]), m))
	}

	if r.snapshotTTL > 0 {
		r.snapshotStore(ctx, records)
	}
	return records, nil
}

func (r *Repo) recordKey(id string) string {
	return r.prefix + "record:" + id
}

func (r *Repo) snapshotKey() string {
	return r.prefix + "records:snapshot"
}

func (r *Repo) extractID(key string) string {
	return strings.TrimPrefix(key, r.prefix+"record:")
}

// snapshotLoad returns the cached record list, if present and parseable.
func (r *Repo) snapshotLoad(ctx context.Context) ([]domrec.Record, bool) {
	data, err := r.store.Get(ctx, r.snapshotKey())
	if err != nil {
		// A broken cache read is just a miss; the scan path still works.
		return nil, false
	}

	var dtos []recordDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, false
	}

	records := make([]domrec.Record, len(dtos))
	for i, d := range dtos {
		records[i] = d.toDomain()
	}
	return records, true
}

func (r *Repo) snapshotStore(ctx context.Context, records []domrec.Record) {
	dtos := make([]recordDTO, len(records))
	for i := range records {
		dtos[i] = dtoFromDomain(&records[i])
	}
	data, err := json.Marshal(dtos)
	if err != nil {
		return
	}
	_ = r.store.SetWithTTL(ctx, r.snapshotKey(), data, r.snapshotTTL)
}

func (r *Repo) invalidateSnapshot(ctx context.Context) {
	if r.snapshotTTL > 0 {
		_ = r.store.Del(ctx, r.snapshotKey())
	}
}
