package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/abdidvp/commitlint/internal/domain/lint"
)

const (
	// DefaultSize bounds the number of compiled configurations kept.
	DefaultSize = 16
	// DefaultTTL expires linters for configurations that stopped being used.
	DefaultTTL = 10 * time.Minute
)

// Store is an in-memory LRU of compiled linters keyed by configuration
// fingerprint. It is safe for concurrent use.
type Store struct {
	linters *lru.LRU[string, *lint.Linter]
	hits    atomic.Int64
	misses  atomic.Int64
}

// New creates a Store. Non-positive arguments select the defaults.
func New(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{linters: lru.NewLRU[string, *lint.Linter](size, nil, ttl)}
}

// Get returns the linter compiled from an identical configuration.
func (s *Store) Get(cfg domain.Config) (*lint.Linter, bool) {
	l, ok := s.linters.Get(Fingerprint(cfg))
	if ok {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	return l, ok
}

// Add stores a linter compiled from cfg.
func (s *Store) Add(cfg domain.Config, l *lint.Linter) {
	s.linters.Add(Fingerprint(cfg), l)
}

// Len returns the number of cached linters.
func (s *Store) Len() int { return s.linters.Len() }

// Stats returns the hit and miss counters.
func (s *Store) Stats() (hits, misses int64) {
	return s.hits.Load(), s.misses.Load()
}

// Fingerprint returns a stable hash of cfg. encoding/json sorts map keys,
// so equal configurations always hash the same.
func Fingerprint(cfg domain.Config) string {
	data, err := json.Marshal(cfg)
	if err != nil {
		// Config holds only strings, ints, bools, slices and maps.
		panic(err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
