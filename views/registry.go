package views

import (
	"context"
	"sync"
	"time"

	"goflix/metrics"

	"github.com/rohanthewiz/logger"
)

// Registry keeps the live components of each browser session.
// Components live from the page load that mounts them until the session
// has been idle for idleTTL.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	idleTTL  time.Duration
	newHome  func() *Home
	now      func() time.Time
}

type session struct {
	home     *Home
	login    *Login
	lastSeen time.Time
}

// NewRegistry creates an empty registry. newHome builds each unmounted Home.
func NewRegistry(idleTTL time.Duration, newHome func() *Home) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		idleTTL:  idleTTL,
		newHome:  newHome,
		now:      time.Now,
	}
}

// touch returns the session, creating it if needed. Caller holds mu.
func (r *Registry) touch(id string) *session {
	s, ok := r.sessions[id]
	if !ok {
		s = &session{}
		r.sessions[id] = s
		metrics.ActiveSessions.Set(float64(len(r.sessions)))
	}
	s.lastSeen = r.now()
	return s
}

// MountHome replaces the session's home screen with a fresh one and mounts it.
// The new Home is registered before mounting so clicks reach it right away.
func (r *Registry) MountHome(ctx context.Context, sessionID string) *Home {
	home := r.newHome()

	r.mu.Lock()
	r.touch(sessionID).home = home
	r.mu.Unlock()

	home.Mount(ctx)
	return home
}

// Home returns the session's mounted home screen.
func (r *Registry) Home(sessionID string) (*Home, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok || s.home == nil {
		return nil, false
	}
	s.lastSeen = r.now()
	return s.home, true
}

// MountLogin replaces the session's login form with one in SignIn.
func (r *Registry) MountLogin(sessionID string) *Login {
	login := NewLogin()

	r.mu.Lock()
	r.touch(sessionID).login = login
	r.mu.Unlock()

	return login
}

// Login returns the session's login form.
func (r *Registry) Login(sessionID string) (*Login, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok || s.login == nil {
		return nil, false
	}
	s.lastSeen = r.now()
	return s.login, true
}

// Len is the number of sessions held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle longer than the TTL and returns how many went.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idleTTL)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	metrics.ActiveSessions.Set(float64(len(r.sessions)))
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				logger.Debug("Evicted idle sessions", "count", n)
			}
		}
	}
}
