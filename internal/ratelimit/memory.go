package ratelimit

import (
	"context"
	"sync"
	"time"
)

// defaultJanitorInterval is how often the background sweep runs.
const defaultJanitorInterval = time.Minute

// MemoryStore implements CounterStore with in-process state. All operations
// are thread-safe. A background janitor sweeps expired entries for the
// lifetime of the store; callers that create a MemoryStore must release it
// with Close, or the janitor goroutine outlives its store.
//
//	s := ratelimit.NewMemoryStore()
//	defer s.Close()
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry

	closeCh   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type memoryEntry struct {
	count   int64
	resetAt time.Time
}

// NewMemoryStore creates a MemoryStore with the default janitor interval.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithInterval(defaultJanitorInterval)
}

// NewMemoryStoreWithInterval creates a MemoryStore whose janitor runs every
// interval.
func NewMemoryStoreWithInterval(interval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry),
		closeCh: make(chan struct{}),
	}
	s.wg.Add(1)
	go s.janitor(interval)
	return s
}

func (s *MemoryStore) janitor(interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			_, _ = s.Cleanup(context.Background())
		case <-s.closeCh:
			return
		}
	}
}

func (s *MemoryStore) Increment(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, ok := s.entries[key]
	if !ok || !now.Before(e.resetAt) {
		e = &memoryEntry{count: 1, resetAt: now.Add(window)}
		s.entries[key] = e
		return e.count, e.resetAt, nil
	}
	e.count++
	return e.count, e.resetAt, nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || !time.Now().Before(e.resetAt) {
		return 0, false, nil
	}
	return e.count, true, nil
}

func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Cleanup(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for k, e := range s.entries {
		if !now.Before(e.resetAt) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of physically present entries, expired or not.
// Useful for tests and memory monitoring.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the janitor and clears all entries. Safe to call multiple
// times; operations after Close behave as if the store were empty.
func (s *MemoryStore) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
	})
	s.wg.Wait()
	s.mu.Lock()
	s.entries = make(map[string]*memoryEntry)
	s.mu.Unlock()
}

// Compile-time interface verification.
var _ CounterStore = (*MemoryStore)(nil)
