package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/nasma-hq/nasma-insights-api/pkg/errors"
)

type cacheRepoStub struct {
	entries map[string][]byte
}

func newCacheRepoStub() *cacheRepoStub {
	return &cacheRepoStub{entries: map[string][]byte{}}
}

func (r *cacheRepoStub) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := r.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (r *cacheRepoStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.entries[key] = raw
	return nil
}

func (r *cacheRepoStub) DeleteByPattern(ctx context.Context, pattern string) error {
	r.entries = map[string][]byte{}
	return nil
}

func TestCacheServiceDisabledIsInert(t *testing.T) {
	repo := newCacheRepoStub()
	svc := NewCacheService(repo, nil, time.Minute, nil, false)

	require.NoError(t, svc.Set(context.Background(), "k", "v", 0))
	assert.Empty(t, repo.entries)

	var out string
	hit, err := svc.Get(context.Background(), "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newCacheRepoStub()
	svc := NewCacheService(repo, nil, time.Minute, nil, true)

	key := ReportKey("adoption", "2024-09-01", "2024-09-30")
	require.NoError(t, svc.Set(context.Background(), key, map[string]int{"count": 3}, 0))

	var out map[string]int
	hit, err := svc.Get(context.Background(), key, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 3, out["count"])
}

func TestCacheServiceMissIsNotAnError(t *testing.T) {
	svc := NewCacheService(newCacheRepoStub(), nil, time.Minute, nil, true)

	var out string
	hit, err := svc.Get(context.Background(), "absent", &out)
	require.NoError(t, err)
	assert.False(t, hit)
}
