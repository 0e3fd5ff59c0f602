// Package uploads keeps raw uploaded files in memory for a bounded time so
// chart requests can re-run the pipeline without a new upload.
package uploads

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Upload is one stored file. Data is never modified after Put.
type Upload struct {
	ID           string
	Name         string
	Data         []byte
	Created      time.Time
	LastAccessed time.Time
}

type Store struct {
	mu    sync.RWMutex
	items map[string]*Upload
	ttl   time.Duration
	max   int
	now   func() time.Time
}

// NewStore creates a store whose entries expire ttl after their last access.
// At most max entries are kept; the least recently used is evicted first.
func NewStore(ttl time.Duration, max int) *Store {
	return &Store{items: make(map[string]*Upload), ttl: ttl, max: max, now: time.Now}
}

func (s *Store) Put(name string, data []byte) *Upload {
	now := s.now()
	u := &Upload{ID: uuid.New().String(), Name: name, Data: data, Created: now, LastAccessed: now}
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.max > 0 && len(s.items) >= s.max {
		s.evictOldestLocked()
	}
	s.items[u.ID] = u
	return u
}

// Get returns a live upload and refreshes its expiry.
func (s *Store) Get(id string) (*Upload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(u.LastAccessed) > s.ttl {
		delete(s.items, id)
		return nil, false
	}
	u.LastAccessed = now
	return u, true
}

func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Sweep removes expired uploads and returns how many were dropped.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, u := range s.items {
		if u.LastAccessed.Before(cutoff) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Debug("expired uploads removed", "count", n, "remaining", s.Len())
			}
		}
	}
}

func (s *Store) evictOldestLocked() {
	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.items[ids[i]].LastAccessed.Before(s.items[ids[j]].LastAccessed)
	})
	delete(s.items, ids[0])
}
