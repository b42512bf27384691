// Package timer implements the check-in session counter.
package timer

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const Tick = time.Second

var (
	ErrSessionActive   = errors.New("session already active")
	ErrSessionInactive = errors.New("no active session")
)

type Granularity string

const (
	HoursMinutes        Granularity = "hm"
	HoursMinutesSeconds Granularity = "hms"
)

type State struct {
	Active     bool
	Since      time.Time
	LastAction time.Time
	Elapsed    time.Duration
	Display    string
}

// Session counts time elapsed since check-in. The counter is recomputed on
// every tick while active and frozen on Stop.
type Session struct {
	mu sync.Mutex

	clock       Clock
	scheduler   Scheduler
	granularity Granularity

	active     bool
	reference  time.Time
	lastAction time.Time
	elapsed    time.Duration
	cancel     func()
	generation uint64
}

func NewSession(clock Clock, scheduler Scheduler, granularity Granularity) *Session {
	if granularity != HoursMinutes {
		granularity = HoursMinutesSeconds
	}

	return &Session{
		clock:       clock,
		scheduler:   scheduler,
		granularity: granularity,
	}
}

func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return ErrSessionActive
	}

	now := s.clock.Now()
	s.active = true
	s.reference = now
	s.lastAction = now
	s.elapsed = 0
	s.generation++

	gen := s.generation
	s.cancel = s.scheduler.Every(Tick, func() { s.tick(gen) })

	return nil
}

func (s *Session) tick(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A tick already in flight when Stop ran must not touch the frozen value.
	if !s.active || gen != s.generation {
		return
	}

	s.elapsed = s.clock.Now().Sub(s.reference)
}

func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrSessionInactive
	}

	s.halt()
	s.lastAction = s.clock.Now()

	return nil
}

func (s *Session) halt() {
	s.active = false
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Reset zeroes the counter. An active session keeps running from now.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elapsed = 0
	if s.active {
		s.reference = s.clock.Now()
	}
}

// Close cancels the tick if one is scheduled. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		s.halt()
	}
}

func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.elapsed
}

func (s *Session) Display() string {
	return Format(s.Elapsed(), s.granularity)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Active:     s.active,
		Since:      s.reference,
		LastAction: s.lastAction,
		Elapsed:    s.elapsed,
		Display:    Format(s.elapsed, s.granularity),
	}
}

func Format(d time.Duration, granularity Granularity) string {
	if d < 0 {
		d = 0
	}

	total := int64(d / time.Second)
	h, m, sec := total/3600, (total%3600)/60, total%60

	if granularity == HoursMinutes {
		return fmt.Sprintf("%dh %dm", h, m)
	}

	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, sec)
	}

	return fmt.Sprintf("%dm %ds", m, sec)
}
