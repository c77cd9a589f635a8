package session

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/slidegen-api/internal/domain"
)

// memoryStore implements Store using an in-memory map with lazy TTL expiry.
// Suitable for development and single-instance deployments.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry

	// now is replaceable in tests.
	now func() time.Time
}

type memoryEntry struct {
	session   *domain.Session
	expiresAt time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		entries: make(map[string]*memoryEntry),
		now:     time.Now,
	}
}

// Get implements Store. Expired entries behave as absent and are evicted.
func (s *memoryStore) Get(ctx context.Context, presentationID string) (*domain.Session, error) {
	s.mu.RLock()
	entry, exists := s.entries[presentationID]
	expired := exists && s.now().After(entry.expiresAt)
	s.mu.RUnlock()

	if !exists {
		return nil, nil
	}
	if expired {
		s.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have refreshed it.
		if cur, ok := s.entries[presentationID]; ok && s.now().After(cur.expiresAt) {
			delete(s.entries, presentationID)
		}
		s.mu.Unlock()
		return nil, nil
	}

	return copySession(entry.session), nil
}

// Set implements Store. The TTL clock restarts on every write.
func (s *memoryStore) Set(ctx context.Context, presentationID string, sess *domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[presentationID] = &memoryEntry{
		session:   copySession(sess),
		expiresAt: s.now().Add(ttl),
	}
	return nil
}

// Delete implements Store.
func (s *memoryStore) Delete(ctx context.Context, presentationID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.entries[presentationID]
	if !exists {
		return false, nil
	}
	delete(s.entries, presentationID)

	// An expired entry that was never read again counts as absent.
	if s.now().After(entry.expiresAt) {
		return false, nil
	}
	return true, nil
}

// TTL implements Store.
func (s *memoryStore) TTL(ctx context.Context, presentationID string) (time.Duration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[presentationID]
	if !exists {
		return 0, ErrNotFound
	}
	remaining := entry.expiresAt.Sub(s.now())
	if remaining <= 0 {
		return 0, ErrNotFound
	}
	return remaining, nil
}

// Close implements Store.
func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return nil
}

// copySession returns a deep enough copy that callers never observe a
// partially-built slide history while a concurrent append is in flight.
func copySession(s *domain.Session) *domain.Session {
	if s == nil {
		return nil
	}
	dup := *s
	dup.SlideHistory = make([]domain.SlideSummary, len(s.SlideHistory))
	copy(dup.SlideHistory, s.SlideHistory)
	return &dup
}
