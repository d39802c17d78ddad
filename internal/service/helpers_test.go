package service_test

import (
	"sync"
	"testing"
	"time"

	"troubleshoot-titans/internal/content"
	"troubleshoot-titans/internal/interfaces/mocks"
	"troubleshoot-titans/internal/models"
	"troubleshoot-titans/internal/scenario"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// manualScheduler запускает таймеры только по Drain.
type manualScheduler struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	mu      sync.Mutex
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) scenario.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{f: f}
	s.pending = append(s.pending, t)
	return t
}

// Drain выполняет все таймеры, включая запланированные во время выполнения.
func (s *manualScheduler) Drain() {
	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.mu.Unlock()
			return
		}
		t := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		t.mu.Lock()
		stopped := t.stopped
		t.mu.Unlock()
		if !stopped {
			t.f()
		}
	}
}

func testSession() *models.Session {
	return &models.Session{UserID: "user-1", DisplayName: "Alex", Provider: "jwt"}
}

func newTestStore(t *testing.T) (*content.Store, *mocks.GeneratedContentRepository) {
	t.Helper()
	catalog, err := content.LoadCatalog()
	require.NoError(t, err)
	repo := mocks.NewGeneratedContentRepository(t)
	return content.NewStore(catalog, repo, zap.NewNop()), repo
}
