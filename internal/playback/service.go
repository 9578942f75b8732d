package playback

import (
	"errors"
	"log/slog"

	"csai-playback/internal/platform/metrics"
	"csai-playback/internal/platform/sched"
	"csai-playback/internal/pod"
)

// ErrUnknownContent is returned when a session is requested for a content
// id the catalog does not have.
var ErrUnknownContent = errors.New("unknown content")

// Service creates and drives playback sessions; it is the single entry
// point the HTTP layer talks to.
type Service struct {
	repo    Repository
	catalog Catalog
	seekCfg SeekConfig
	sched   sched.Scheduler
	log     *slog.Logger
	metrics *metrics.Metrics // may be nil
}

// NewService returns a Service over the given repository and catalog.
func NewService(repo Repository, catalog Catalog, seekCfg SeekConfig, scheduler sched.Scheduler, log *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		seekCfg: seekCfg,
		sched:   scheduler,
		log:     log,
		metrics: m,
	}
}

// Catalog returns the service's content catalog.
func (s *Service) Catalog() Catalog {
	return s.catalog
}

// CreateSession starts a new playback session for the given content.
func (s *Service) CreateSession(contentID string) (*Session, error) {
	content, ok := s.catalog.ContentByID(contentID)
	if !ok {
		return nil, ErrUnknownContent
	}

	sess := NewSession(content, s.seekCfg, s.sched, s.log, s.metrics)
	s.repo.AddSession(sess)
	sess.Initialize()

	if s.metrics != nil {
		s.metrics.IncSessionsCreated()
	}
	return sess, nil
}

// PlayerEvent forwards a host player event into a session.
func (s *Service) PlayerEvent(sessionID string, ev PlayerEvent) error {
	sess, ok := s.repo.GetSession(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	sess.HandlePlayerEvent(ev)
	return nil
}

// RemoteEvent forwards a remote-control action into a session.
func (s *Service) RemoteEvent(sessionID, action string) error {
	sess, ok := s.repo.GetSession(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	sess.HandleRemoteEvent(action)
	return nil
}

// SurfaceEvent forwards an interactive ad surface event into a session.
func (s *Service) SurfaceEvent(sessionID string, ev pod.SurfaceEvent) error {
	sess, ok := s.repo.GetSession(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	sess.HandleSurfaceEvent(ev)
	return nil
}

// Context returns a session's playback snapshot.
func (s *Service) Context(sessionID string) (Context, bool) {
	sess, ok := s.repo.GetSession(sessionID)
	if !ok {
		return Context{}, false
	}
	return sess.Context(), true
}

// Commands drains a session's pending player commands for the host.
func (s *Service) Commands(sessionID string) ([]Command, bool) {
	sess, ok := s.repo.GetSession(sessionID)
	if !ok {
		return nil, false
	}
	return sess.DrainCommands(), true
}

// EndSession disposes a session. Ending an unknown session is a no-op.
func (s *Service) EndSession(sessionID string) error {
	return s.repo.EndSession(sessionID)
}

// ActiveSessionCount reports the number of live sessions.
func (s *Service) ActiveSessionCount() int {
	return s.repo.ActiveSessionCount()
}
