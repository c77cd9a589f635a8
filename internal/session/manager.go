package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/slidegen-api/internal/domain"
)

// SessionInfo is a read-only snapshot of a session's state.
type SessionInfo struct {
	PresentationID      string    `json:"presentation_id"`
	SlidesInContext     int       `json:"slides_in_context"`
	ContextSizeBytes    int       `json:"context_size_bytes"`
	LastUpdated         time.Time `json:"last_updated"`
	TTLRemainingSeconds int       `json:"ttl_remaining_seconds"`
}

// Manager coordinates session access on top of a Store. It serializes
// read-modify-write cycles per presentation ID so concurrent generations
// for the same presentation never lose an append, while operations on
// different presentations proceed independently.
//
// TTL policy is refresh-on-write: every Append restarts the session's TTL
// clock; reads (Describe, ContextText) never extend a session's life.
type Manager struct {
	store      Store
	ttl        time.Duration
	maxHistory int
	logger     *slog.Logger

	mu       sync.Mutex
	keyLocks map[string]*sync.Mutex
}

// NewManager creates a session manager.
func NewManager(store Store, ttl time.Duration, maxHistory int, logger *slog.Logger) *Manager {
	if maxHistory <= 0 {
		maxHistory = 5
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Manager{
		store:      store,
		ttl:        ttl,
		maxHistory: maxHistory,
		logger:     logger,
		keyLocks:   make(map[string]*sync.Mutex),
	}
}

// MaxHistory returns the configured slide history bound.
func (m *Manager) MaxHistory() int {
	return m.maxHistory
}

// keyLock returns the mutex guarding one presentation ID, creating it on
// first use. The manager-level mutex protects only the lock map itself.
func (m *Manager) keyLock(presentationID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.keyLocks[presentationID]
	if !ok {
		lock = &sync.Mutex{}
		m.keyLocks[presentationID] = lock
	}
	return lock
}

// GetOrCreate returns the existing non-expired session for the presentation,
// or creates and stores an empty one. Expiry is not an error: an expired
// session is silently replaced by a fresh one.
func (m *Manager) GetOrCreate(ctx context.Context, presentationID, theme, audience, narrative string) (*domain.Session, error) {
	lock := m.keyLock(presentationID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.store.Get(ctx, presentationID)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", presentationID, err)
	}
	if sess != nil {
		return sess, nil
	}

	sess, err = domain.NewSession(presentationID)
	if err != nil {
		return nil, err
	}
	sess.Theme = theme
	sess.Audience = audience
	sess.Narrative = narrative

	if err := m.store.Set(ctx, presentationID, sess, m.ttl); err != nil {
		return nil, fmt.Errorf("store session %s: %w", presentationID, err)
	}

	m.logger.Info("created new session", "presentation_id", presentationID, "ttl_seconds", int(m.ttl.Seconds()))
	return sess, nil
}

// Append adds a slide summary to the presentation's history, evicting the
// oldest entry beyond the history bound and refreshing the TTL clock. The
// session is created transparently when absent or expired.
func (m *Manager) Append(ctx context.Context, presentationID string, summary domain.SlideSummary) error {
	if err := summary.Validate(); err != nil {
		return err
	}

	lock := m.keyLock(presentationID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.store.Get(ctx, presentationID)
	if err != nil {
		return fmt.Errorf("get session %s: %w", presentationID, err)
	}
	if sess == nil {
		sess, err = domain.NewSession(presentationID)
		if err != nil {
			return err
		}
	}

	sess.AddSlide(summary, m.maxHistory)

	if err := m.store.Set(ctx, presentationID, sess, m.ttl); err != nil {
		return fmt.Errorf("store session %s: %w", presentationID, err)
	}

	m.logger.Debug("appended slide to session",
		"presentation_id", presentationID,
		"slide_number", summary.SlideNumber,
		"slides_in_context", len(sess.SlideHistory))
	return nil
}

// ContextText renders the presentation's recent history into the text block
// injected into prompts. An absent or expired session yields the defined
// no-prior-context marker, never an error.
func (m *Manager) ContextText(ctx context.Context, presentationID string, maxSlides int) (string, error) {
	sess, err := m.store.Get(ctx, presentationID)
	if err != nil {
		return "", fmt.Errorf("get session %s: %w", presentationID, err)
	}
	if sess == nil {
		return domain.NoContextMarker, nil
	}
	return sess.ContextSummary(maxSlides), nil
}

// Describe returns a read-only snapshot of the session.
// Returns ErrNotFound if the session is absent or expired.
func (m *Manager) Describe(ctx context.Context, presentationID string) (*SessionInfo, error) {
	sess, err := m.store.Get(ctx, presentationID)
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", presentationID, err)
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, presentationID)
	}

	remaining, err := m.store.TTL(ctx, presentationID)
	if err != nil {
		// The session expired between the two reads; treat it as absent.
		return nil, fmt.Errorf("%w: %s", ErrNotFound, presentationID)
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("serialize session %s: %w", presentationID, err)
	}

	return &SessionInfo{
		PresentationID:      presentationID,
		SlidesInContext:     len(sess.SlideHistory),
		ContextSizeBytes:    len(payload),
		LastUpdated:         sess.LastUpdated,
		TTLRemainingSeconds: int(remaining.Seconds()),
	}, nil
}

// Delete removes the session and reports whether it existed.
func (m *Manager) Delete(ctx context.Context, presentationID string) (bool, error) {
	lock := m.keyLock(presentationID)
	lock.Lock()
	defer lock.Unlock()

	existed, err := m.store.Delete(ctx, presentationID)
	if err != nil {
		return false, fmt.Errorf("delete session %s: %w", presentationID, err)
	}

	// Key locks are deliberately kept after deletion: removing one while a
	// concurrent request waits on it would let two writers into the same
	// critical section. A mutex per presentation ID is a few dozen bytes.

	if existed {
		m.logger.Info("deleted session", "presentation_id", presentationID)
	}
	return existed, nil
}
