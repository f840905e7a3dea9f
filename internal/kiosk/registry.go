package kiosk

import (
	"context"
	"sync"
	"time"

	"teahouse-kiosk/internal/logger"

	"go.uber.org/zap"
)

const cleanupInterval = time.Minute

// Registry keeps one session per device and forgets devices that go quiet.
type Registry struct {
	deps    Deps
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(deps Deps, idleTTL time.Duration) *Registry {
	return &Registry{
		deps:     deps,
		idleTTL:  idleTTL,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the device's session, creating it on first use.
func (r *Registry) Get(deviceID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	s, exists := r.sessions[deviceID]
	if !exists {
		s = NewSession(deviceID, r.deps)
		r.sessions[deviceID] = s
	}
	s.touch(now)
	return s
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Evict drops sessions idle for longer than the TTL and returns how many went.
func (r *Registry) Evict() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	evicted := 0
	for id, s := range r.sessions {
		if s.idleSince(now) > r.idleTTL {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run evicts idle sessions every minute until ctx is done.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(); n > 0 {
				logger.L().Info("evicted idle kiosk sessions", zap.Int("count", n))
			}
		}
	}
}
