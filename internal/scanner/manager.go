package scanner

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Manager keeps at most one active session per owner
type Manager struct {
	decoder  FrameDecoder
	newLimit func() *rate.Limiter

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a manager. framesPerSecond <= 0 disables frame throttling.
func NewManager(decoder FrameDecoder, framesPerSecond float64) *Manager {
	m := &Manager{
		decoder:  decoder,
		sessions: make(map[string]*Session),
	}
	if framesPerSecond > 0 {
		m.newLimit = func() *rate.Limiter {
			return rate.NewLimiter(rate.Limit(framesPerSecond), 1)
		}
	}
	return m
}

// Start stops any session the owner already has, then starts a new one over src.
// The session ends on a valid payload, when src reports io.EOF, or on Stop.
func (m *Manager) Start(ctx context.Context, owner string, src FrameSource) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.sessions[owner]; ok {
		prev.Stop()
	}

	var limiter *rate.Limiter
	if m.newLimit != nil {
		limiter = m.newLimit()
	}

	s := newSession(ctx, owner, src, m.decoder, limiter)
	m.sessions[owner] = s
	s.start()
	return s
}

// Stop ends the owner's session, if any
func (m *Manager) Stop(owner string) {
	m.mu.Lock()
	s, ok := m.sessions[owner]
	delete(m.sessions, owner)
	m.mu.Unlock()

	if ok {
		s.Stop()
	}
}

// Active reports whether the owner has a running session
func (m *Manager) Active(owner string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[owner]
	if !ok {
		return false
	}
	select {
	case <-s.Done():
		delete(m.sessions, owner)
		return false
	default:
		return true
	}
}

// StopAll ends every session; used at shutdown
func (m *Manager) StopAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for owner, s := range m.sessions {
		sessions = append(sessions, s)
		delete(m.sessions, owner)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
}
