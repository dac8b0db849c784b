// Package theme holds the colour-scheme preference of one request as an
// explicit state object instead of a process-wide toggle.
package theme

import (
	"errors"
	"fmt"
	"sync"
)

type Mode string

const (
	Light  Mode = "light"
	Dark   Mode = "dark"
	System Mode = "system"
)

var (
	ErrInvalidMode = errors.New("invalid theme mode")
	ErrClosed      = errors.New("theme state closed")
)

// ParseMode accepts "light", "dark" or "system".
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Light, Dark, System:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// State is the theme of one root view. It is initialized from the persisted
// preference or the system signal and changes only through Set.
type State struct {
	mu         sync.Mutex
	mode       Mode
	systemDark bool
	subs       map[int]func(mode, resolved Mode)
	next       int
	closed     bool
}

// NewState starts from pref; an empty or unknown pref means System.
func NewState(pref Mode, systemDark bool) *State {
	if _, err := ParseMode(string(pref)); err != nil {
		pref = System
	}
	return &State{mode: pref, systemDark: systemDark, subs: make(map[int]func(Mode, Mode))}
}

func (s *State) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Resolved turns System into Light or Dark.
func (s *State) Resolved() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolved()
}

func (s *State) resolved() Mode {
	if s.mode != System {
		return s.mode
	}
	if s.systemDark {
		return Dark
	}
	return Light
}

func (s *State) Dark() bool { return s.Resolved() == Dark }

// Set is the only mutation entry point. Subscribers are notified after the
// change, outside the lock.
func (s *State) Set(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.mode = m
	resolved := s.resolved()
	subs := make([]func(Mode, Mode), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(m, resolved)
	}
	return nil
}

// Toggle flips the resolved theme and returns the new mode.
func (s *State) Toggle() (Mode, error) {
	next := Dark
	if s.Resolved() == Dark {
		next = Light
	}
	return next, s.Set(next)
}

// Subscribe registers fn for changes and returns its cancel function.
func (s *State) Subscribe(fn func(mode, resolved Mode)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close drops every subscriber; further Set calls fail with ErrClosed.
func (s *State) Close() {
	s.mu.Lock()
	s.closed = true
	clear(s.subs)
	s.mu.Unlock()
}
