package playback

// Store is the persistence abstraction for playback sessions.
// Sessions are inherently ephemeral (they die with the viewer's playback),
// so the default implementation is in-memory; the interface exists so the
// Repository never needs to know.
type Store interface {
	GetSession(id string) (*Session, bool)
	SetSession(s *Session)
	DeleteSession(id string)
	ListSessionIDs() []string
}

// InMemoryStore is the in-memory implementation of Store.
type InMemoryStore struct {
	sessions map[string]*Session
}

// NewInMemoryStore returns a new empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*Session)}
}

// GetSession implements Store.GetSession.
func (s *InMemoryStore) GetSession(id string) (*Session, bool) {
	sess, ok := s.sessions[id]
	return sess, ok
}

// SetSession implements Store.SetSession.
func (s *InMemoryStore) SetSession(sess *Session) {
	s.sessions[sess.ID()] = sess
}

// DeleteSession implements Store.DeleteSession.
func (s *InMemoryStore) DeleteSession(id string) {
	delete(s.sessions, id)
}

// ListSessionIDs implements Store.ListSessionIDs.
func (s *InMemoryStore) ListSessionIDs() []string {
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}
