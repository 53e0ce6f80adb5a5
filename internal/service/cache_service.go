package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// Dashboard cache keys.
const (
	CacheKeyDashboard = "dashboard:data"
	CacheKeyFactors   = "dashboard:factors"
)

// CacheStore is the raw key-value surface backing the cache service.
type CacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CacheService marshals payloads in and out of the cache store. A nil store
// disables caching: reads miss and writes are dropped, so callers never need
// to branch on configuration.
type CacheService struct {
	store   CacheStore
	ttl     time.Duration
	logger  *zap.Logger
	metrics *MetricsService
}

func NewCacheService(store CacheStore, ttl time.Duration, metrics *MetricsService, logger *zap.Logger) *CacheService {
	return &CacheService{store: store, ttl: ttl, metrics: metrics, logger: logger}
}

// GetJSON loads a cached payload into out. Returns ErrCacheMiss when the key
// is absent or caching is disabled.
func (s *CacheService) GetJSON(ctx context.Context, key string, out interface{}) error {
	if s.store == nil {
		return appErrors.ErrCacheMiss
	}
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if err != appErrors.ErrCacheMiss {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
			err = appErrors.ErrCacheMiss
		}
		s.metrics.RecordCacheMiss(key)
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.logger.Warn("cache payload corrupt", zap.String("key", key), zap.Error(err))
		s.metrics.RecordCacheMiss(key)
		return appErrors.ErrCacheMiss
	}
	s.metrics.RecordCacheHit(key)
	return nil
}

// SetJSON stores a payload under key. Failures are logged, never surfaced:
// the cache is an optimization, not a dependency.
func (s *CacheService) SetJSON(ctx context.Context, key string, value interface{}) {
	if s.store == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, key, string(raw), s.ttl); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateDashboard drops cached dashboard payloads after student or
// intervention writes.
func (s *CacheService) InvalidateDashboard(ctx context.Context) {
	if s.store == nil {
		return
	}
	if err := s.store.Delete(ctx, CacheKeyDashboard, CacheKeyFactors); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}
