package playback

import (
	"errors"
	"sync"
)

// Repository is the concurrency-safe contract for tracking live playback
// sessions.
type Repository interface {
	// AddSession registers a new session.
	AddSession(s *Session)

	// GetSession returns a live session by id. The ok return is false when
	// the session does not exist or has already ended.
	GetSession(id string) (*Session, bool)

	// EndSession disposes a session and removes it. Ending a session that
	// does not exist is a no-op for idempotency.
	EndSession(id string) error

	// ActiveSessionCount returns the number of live sessions. Used for
	// metrics.
	ActiveSessionCount() int
}

// ErrSessionNotFound is returned when an operation targets a session id
// that is not registered.
var ErrSessionNotFound = errors.New("session not found")

// InMemoryRepository is a concurrency-safe in-memory Repository backed by
// a Store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store Store
}

// NewInMemoryRepository constructs a repository with a default in-memory
// store.
func NewInMemoryRepository() *InMemoryRepository {
	return NewInMemoryRepositoryWithStore(NewInMemoryStore())
}

// NewInMemoryRepositoryWithStore constructs a repository over the given
// Store. Useful for testing or plugging in a different backend.
func NewInMemoryRepositoryWithStore(store Store) *InMemoryRepository {
	return &InMemoryRepository{store: store}
}

// AddSession implements Repository.AddSession.
func (r *InMemoryRepository) AddSession(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.SetSession(s)
}

// GetSession implements Repository.GetSession.
func (r *InMemoryRepository) GetSession(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.store.GetSession(id)
	if !ok || sess.Ended() {
		return nil, false
	}
	return sess, true
}

// EndSession implements Repository.EndSession.
func (r *InMemoryRepository) EndSession(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.store.GetSession(id)
	if !ok {
		return nil
	}
	sess.Dispose()
	r.store.DeleteSession(id)
	return nil
}

// ActiveSessionCount implements Repository.ActiveSessionCount.
func (r *InMemoryRepository) ActiveSessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, id := range r.store.ListSessionIDs() {
		if sess, ok := r.store.GetSession(id); ok && !sess.Ended() {
			n++
		}
	}
	return n
}
