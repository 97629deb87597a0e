package loop

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions tracks the live game sessions of a server so they can be
// cancelled together on shutdown. Each session runs its own Game.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]context.CancelFunc
}

// NewSessions creates an empty registry.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]context.CancelFunc)}
}

// Register adds a session and returns its ID, a context cancelled on
// shutdown, and a func the session must call when it ends.
func (s *Sessions) Register(parent context.Context) (string, context.Context, func()) {
	id := uuid.New().String()
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	s.sessions[id] = cancel
	s.mu.Unlock()

	return id, ctx, func() {
		cancel()
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
	}
}

// Count returns the number of live sessions.
func (s *Sessions) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Shutdown cancels every session and waits until they have all ended or
// timeout passes. Returns the number still running.
func (s *Sessions) Shutdown(timeout time.Duration) int {
	s.mu.RLock()
	for _, cancel := range s.sessions {
		cancel()
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		if remaining := s.Count(); remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			return s.Count()
		case <-ticker.C:
		}
	}
}
