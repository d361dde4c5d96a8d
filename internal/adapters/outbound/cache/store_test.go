package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/commitlint/internal/adapters/outbound/cache"
	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/abdidvp/commitlint/internal/domain/lint"
)

func compile(t *testing.T, cfg domain.Config) *lint.Linter {
	t.Helper()
	l, err := lint.New(cfg)
	require.NoError(t, err)
	return l
}

func TestStore_AddAndGet(t *testing.T) {
	store := cache.New(0, 0)
	cfg := domain.DefaultConfig()
	l := compile(t, cfg)

	_, ok := store.Get(cfg)
	assert.False(t, ok)

	store.Add(cfg, l)
	got, ok := store.Get(domain.DefaultConfig())
	require.True(t, ok, "an equal configuration hits the cache")
	assert.Same(t, l, got)

	hits, misses := store.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
}

func TestStore_DifferentConfigMisses(t *testing.T) {
	store := cache.New(0, 0)
	cfg := domain.DefaultConfig()
	store.Add(cfg, compile(t, cfg))

	other := domain.DefaultConfig()
	other.Rules.HeaderMaxLength = 50
	_, ok := store.Get(other)
	assert.False(t, ok)
}

func TestStore_EvictsLeastRecentlyUsed(t *testing.T) {
	store := cache.New(2, time.Hour)
	cfgs := make([]domain.Config, 3)
	for i := range cfgs {
		cfgs[i] = domain.DefaultConfig()
		cfgs[i].Rules.HeaderMaxLength = 60 + i
		store.Add(cfgs[i], compile(t, cfgs[i]))
	}

	assert.Equal(t, 2, store.Len())
	_, ok := store.Get(cfgs[0])
	assert.False(t, ok)
	_, ok = store.Get(cfgs[2])
	assert.True(t, ok)
}

func TestFingerprint(t *testing.T) {
	a := domain.DefaultConfig()
	b := domain.DefaultConfig()
	assert.Equal(t, cache.Fingerprint(a), cache.Fingerprint(b))
	assert.Len(t, cache.Fingerprint(a), 64)

	b.Ignores = []string{"^WIP"}
	assert.NotEqual(t, cache.Fingerprint(a), cache.Fingerprint(b))
}
