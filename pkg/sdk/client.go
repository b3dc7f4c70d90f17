package sitesearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightlane/sitesearch/internal/db"
	dbRedis "github.com/brightlane/sitesearch/internal/db/redis"
	domrec "github.com/brightlane/sitesearch/internal/domain/record"
	"github.com/brightlane/sitesearch/internal/domain/search/request"
	recordrepo "github.com/brightlane/sitesearch/internal/repository/record"
	healthuc "github.com/brightlane/sitesearch/internal/usecase/health"
	recorduc "github.com/brightlane/sitesearch/internal/usecase/record"
	searchuc "github.com/brightlane/sitesearch/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "sitesearch:"
)

// Internal interfaces so tests can substitute the wired services.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) (searchuc.Response, error)
	Suggest(ctx context.Context, query string) ([]string, error)
}

type recordUseCase interface {
	Upsert(ctx context.Context, id string, in recorduc.Input) (domrec.Record, bool, error)
	Get(ctx context.Context, id string) (domrec.Record, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domrec.Record, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the sitesearch SDK entry point.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	recordSvc recordUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a sitesearch Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("sitesearch: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("sitesearch: create store: %w", err)
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("sitesearch: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	repo := recordrepo.New(store, cfg.keyPrefix)
	if cfg.snapshotTTL > 0 {
		repo.WithSnapshotCache(cfg.snapshotTTL)
	}

	searchSvc := searchuc.New(repo).
		WithScoring(cfg.threshold, cfg.exactBonus).
		WithPagination(cfg.defaultPageSize, cfg.maxPageSize)
	recordSvc := recorduc.New(repo)
	healthSvc := healthuc.New(store)

	return &Client{
		store:     store,
		searchSvc: searchSvc,
		recordSvc: recordSvc,
		healthSvc: healthSvc,
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Records returns the record management service.
func (c *Client) Records() *RecordService {
	return &RecordService{svc: c.recordSvc, obs: c.obs}
}

// Health checks the health of all system components.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}
