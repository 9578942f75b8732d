package playback

import (
	"testing"

	"csai-playback/internal/platform/logger"
	"csai-playback/internal/platform/sched"
)

func newRepoSession(t *testing.T) *Session {
	t.Helper()
	content, _ := ExampleCatalog().ContentByID("csai-example-1")
	return NewSession(content, DefaultSeekConfig(), sched.NewManual(), logger.Discard(), nil)
}

func TestInMemoryRepository_AddGetSession(t *testing.T) {
	repo := NewInMemoryRepository()

	if _, ok := repo.GetSession("missing"); ok {
		t.Error("expected not found for empty repository")
	}

	sess := newRepoSession(t)
	repo.AddSession(sess)

	got, ok := repo.GetSession(sess.ID())
	if !ok || got != sess {
		t.Errorf("GetSession: ok=%v, got %p want %p", ok, got, sess)
	}
	if n := repo.ActiveSessionCount(); n != 1 {
		t.Errorf("ActiveSessionCount = %d, want 1", n)
	}
}

func TestInMemoryRepository_EndSession(t *testing.T) {
	repo := NewInMemoryRepository()
	sess := newRepoSession(t)
	repo.AddSession(sess)

	if err := repo.EndSession(sess.ID()); err != nil {
		t.Fatalf("EndSession: %v", err)
	}
	if !sess.Ended() {
		t.Error("session should be disposed")
	}
	if _, ok := repo.GetSession(sess.ID()); ok {
		t.Error("ended session should not be retrievable")
	}
	if n := repo.ActiveSessionCount(); n != 0 {
		t.Errorf("ActiveSessionCount = %d, want 0", n)
	}

	// Ending again, or ending a session that never existed, is a no-op.
	if err := repo.EndSession(sess.ID()); err != nil {
		t.Errorf("repeat EndSession: %v", err)
	}
	if err := repo.EndSession("missing"); err != nil {
		t.Errorf("EndSession missing: %v", err)
	}
}

func TestInMemoryRepository_hides_disposed_sessions(t *testing.T) {
	repo := NewInMemoryRepository()
	sess := newRepoSession(t)
	repo.AddSession(sess)

	// A session disposed out of band still must not be handed out.
	sess.Dispose()
	if _, ok := repo.GetSession(sess.ID()); ok {
		t.Error("disposed session should not be retrievable")
	}
	if n := repo.ActiveSessionCount(); n != 0 {
		t.Errorf("ActiveSessionCount = %d, want 0", n)
	}
}

func TestNewInMemoryRepositoryWithStore(t *testing.T) {
	store := NewInMemoryStore()
	repo := NewInMemoryRepositoryWithStore(store)

	sess := newRepoSession(t)
	repo.AddSession(sess)

	got, ok := store.GetSession(sess.ID())
	if !ok || got != sess {
		t.Errorf("store should hold the session: ok=%v", ok)
	}
}
