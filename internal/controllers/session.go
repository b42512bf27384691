package controllers

import (
	"slices"
	"sync"
	"time"

	"github.com/adamanr/workflow_portal/internal/database"
	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/adamanr/workflow_portal/internal/timer"
	"github.com/adamanr/workflow_portal/internal/view"
)

// Session is the capability handed out at login. Every operation that acts
// on behalf of someone takes it explicitly; it is gone after logout.
type Session struct {
	Identity  entity.Identity
	TokenID   string
	Token     string
	ExpiresAt time.Time
	Workspace *database.Workspace
	Timer     *timer.Session
}

func (s *Session) View() view.View {
	return view.Resolve(&s.Identity)
}

// Require fails with ErrForbidden unless the session role is one of roles.
func (s *Session) Require(roles ...entity.Role) error {
	if slices.Contains(roles, s.Identity.Role) {
		return nil
	}
	return ErrForbidden
}

func (s *Session) Privileged() bool {
	return s.Require(entity.RoleHR, entity.RoleAdmin) == nil
}

// sessionRegistry tracks live sessions by token id. All sessions of one
// identity share a single check-in timer, closed when the last of them ends.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	timers   map[string]*identityTimer
}

type identityTimer struct {
	timer *timer.Session
	refs  int
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*Session),
		timers:   make(map[string]*identityTimer),
	}
}

// add registers s and attaches its identity's timer, creating it with
// newTimer on the identity's first session.
func (r *sessionRegistry) add(s *Session, newTimer func() *timer.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.timers[s.Identity.ID]
	if !ok {
		t = &identityTimer{timer: newTimer()}
		r.timers[s.Identity.ID] = t
	}
	t.refs++

	s.Timer = t.timer
	r.sessions[s.TokenID] = s
}

func (r *sessionRegistry) get(tokenID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[tokenID]
	return s, ok
}

func (r *sessionRegistry) remove(tokenID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[tokenID]
	if ok {
		r.drop(s)
	}
	return s, ok
}

func (r *sessionRegistry) expired(now time.Time) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Session
	for _, s := range r.sessions {
		if !now.Before(s.ExpiresAt) {
			out = append(out, s)
			r.drop(s)
		}
	}
	return out
}

// drop must be called with r.mu held.
func (r *sessionRegistry) drop(s *Session) {
	delete(r.sessions, s.TokenID)

	t, ok := r.timers[s.Identity.ID]
	if !ok {
		return
	}
	if t.refs--; t.refs == 0 {
		t.timer.Close()
		delete(r.timers, s.Identity.ID)
	}
}

func (r *sessionRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
