package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// StoreFactory builds the per-scope Store a session persists through.
type StoreFactory func(scope string) Store

// Manager hands out one cart session per session scope and owns their
// lifecycle: created lazily on first use, torn down together at
// shutdown. There are no module-level singletons; everything a session
// needs is injected here once.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	stores   StoreFactory
	prices   Pricer
	log      *zap.Logger
}

func NewManager(stores StoreFactory, prices Pricer, log *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		stores:   stores,
		prices:   prices,
		log:      log,
	}
}

// Session returns the scope's session, constructing it (and loading its
// persisted cart) on first access.
func (m *Manager) Session(ctx context.Context, scope string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[scope]; ok {
		return s
	}

	s := NewSession(ctx, m.stores(scope), m.prices, m.log.With(zap.String("scope", scope)))
	m.sessions[scope] = s
	return s
}

// Shutdown drains every session's pending writes.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	var applied, failed uint64
	for _, s := range sessions {
		s.CloseSession()
		a, f := s.Stats()
		applied += a
		failed += f
	}

	m.log.Info("cart sessions closed",
		zap.Int("sessions", len(sessions)),
		zap.Uint64("mutations_applied", applied),
		zap.Uint64("persist_failures", failed),
	)
}
