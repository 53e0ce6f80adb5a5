package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/dropout-watch-api/pkg/errors"
)

// memoryStore is an in-process CacheStore for tests.
type memoryStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]string{}}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return "", appErrors.ErrCacheMiss
}

func (m *memoryStore) Set(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *memoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func TestCacheServiceDisabledAlwaysMisses(t *testing.T) {
	cache := NewCacheService(nil, time.Minute, nil, zap.NewNop())

	var out map[string]string
	err := cache.GetJSON(context.Background(), CacheKeyDashboard, &out)
	assert.True(t, appErrors.Is(err, appErrors.ErrCacheMiss))

	// Writes are dropped without error.
	cache.SetJSON(context.Background(), CacheKeyDashboard, map[string]string{"k": "v"})
}

func TestCacheServiceRoundTrip(t *testing.T) {
	cache := NewCacheService(newMemoryStore(), time.Minute, nil, zap.NewNop())

	cache.SetJSON(context.Background(), CacheKeyFactors, map[string]int{"total": 12})

	var out map[string]int
	require.NoError(t, cache.GetJSON(context.Background(), CacheKeyFactors, &out))
	assert.Equal(t, 12, out["total"])
}

func TestCacheServiceCorruptEntryMisses(t *testing.T) {
	store := newMemoryStore()
	store.data[CacheKeyDashboard] = "{not json"
	cache := NewCacheService(store, time.Minute, nil, zap.NewNop())

	var out map[string]string
	err := cache.GetJSON(context.Background(), CacheKeyDashboard, &out)
	assert.True(t, appErrors.Is(err, appErrors.ErrCacheMiss))
}

func TestCacheServiceInvalidateDashboard(t *testing.T) {
	store := newMemoryStore()
	cache := NewCacheService(store, time.Minute, nil, zap.NewNop())
	cache.SetJSON(context.Background(), CacheKeyDashboard, "a")
	cache.SetJSON(context.Background(), CacheKeyFactors, "b")

	cache.InvalidateDashboard(context.Background())

	var out string
	assert.Error(t, cache.GetJSON(context.Background(), CacheKeyDashboard, &out))
	assert.Error(t, cache.GetJSON(context.Background(), CacheKeyFactors, &out))
}
