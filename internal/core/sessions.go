package core

// sessions.go keeps one RowStore per page load.
//
// Every visit to the table page opens a fresh Table with its own store, so
// rows never leak between visitors. Sessions are bounded: when the registry
// is full the least recently used table is dropped, and idle tables are
// swept periodically (see scheduler.go).

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// ErrTableNotFound is returned for table ids that are unknown, closed or expired.
var ErrTableNotFound = errors.New("table not found")

// Table is one page load's worth of line items.
type Table struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Store     *RowStore

	lastAccess atomic.Int64 // unix nanoseconds
}

// LastAccess returns when the table was last opened or looked up.
func (t *Table) LastAccess() time.Time {
	return time.Unix(0, t.lastAccess.Load())
}

func (t *Table) touch(now time.Time) {
	t.lastAccess.Store(now.UnixNano())
}

// Sessions is a bounded, least-recently-used registry of open tables.
type Sessions struct {
	mu    sync.Mutex
	cache *simplelru.LRU[uuid.UUID, *Table]
	now   func() time.Time
}

// NewSessions creates a registry holding at most capacity tables.
func NewSessions(capacity int) (*Sessions, error) {
	cache, err := simplelru.NewLRU[uuid.UUID, *Table](capacity, nil)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}
	return &Sessions{cache: cache, now: time.Now}, nil
}

// Open creates and registers an empty table.
// evicted is true if the least recently used table had to be dropped to make room.
func (s *Sessions) Open() (t *Table, evicted bool) {
	now := s.now()
	t = &Table{
		ID:        uuid.New(),
		CreatedAt: now,
		Store:     NewRowStore(),
	}
	t.touch(now)

	s.mu.Lock()
	defer s.mu.Unlock()
	evicted = s.cache.Add(t.ID, t)
	return t, evicted
}

// Get returns the table with the given id and marks it as recently used.
func (s *Sessions) Get(id uuid.UUID) (*Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.cache.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, id)
	}
	t.touch(s.now())
	return t, nil
}

// Close removes a table. Returns false if it was not open.
func (s *Sessions) Close(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(id)
}

// Len returns the number of open tables.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// SweepIdle closes every table not accessed within maxIdle and returns
// how many were closed.
func (s *Sessions) SweepIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-maxIdle)
	removed := 0
	for _, id := range s.cache.Keys() {
		t, ok := s.cache.Peek(id)
		if !ok {
			continue
		}
		if t.LastAccess().Before(cutoff) {
			s.cache.Remove(id)
			removed++
		}
	}
	return removed
}
