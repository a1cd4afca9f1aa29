package shell

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when a session id has no mounted shell.
var ErrSessionNotFound = errors.New("shell: session not found")

// DefaultSessionTTL is how long an untouched session stays mounted.
const DefaultSessionTTL = 30 * time.Minute

// SessionStore keeps one mounted Shell per session and serializes access to it.
type SessionStore interface {
	Create(ctx context.Context, shell *Shell) (string, error)
	With(ctx context.Context, id string, fn func(*Shell) error) error
	Delete(ctx context.Context, id string) error
}

// SessionSweeper is implemented by stores that evict idle sessions.
type SessionSweeper interface {
	Sweep() []string
	Len() int
}

type sessionEntry struct {
	mu       sync.Mutex
	shell    *Shell
	lastSeen time.Time
	evicted  bool
}

// MemorySessionStore is the default in-process store. Sessions idle longer than the TTL
// are dropped by Sweep.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	newID    func() string
	now      func() time.Time
	ttl      time.Duration
}

// MemoryStoreOption customizes a MemorySessionStore.
type MemoryStoreOption func(*MemorySessionStore)

// WithIdleTTL sets the idle lifetime; zero keeps sessions until Delete.
func WithIdleTTL(ttl time.Duration) MemoryStoreOption {
	return func(s *MemorySessionStore) {
		if ttl >= 0 {
			s.ttl = ttl
		}
	}
}

// WithStoreClock overrides the clock used for idle tracking.
func WithStoreClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemorySessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemorySessionStore creates an empty store issuing uuid session ids.
func NewMemorySessionStore(opts ...MemoryStoreOption) *MemorySessionStore {
	s := &MemorySessionStore{
		sessions: make(map[string]*sessionEntry),
		newID:    func() string { return uuid.NewString() },
		now:      time.Now,
		ttl:      DefaultSessionTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create stores the shell under a fresh id.
func (s *MemorySessionStore) Create(_ context.Context, shell *Shell) (string, error) {
	if shell == nil {
		return "", fmt.Errorf("shell: cannot store nil shell")
	}
	id := s.newID()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &sessionEntry{shell: shell, lastSeen: s.now()}
	return id, nil
}

// With runs fn while holding the session's lock; calls on one session never interleave.
func (s *MemorySessionStore) With(ctx context.Context, id string, fn func(*Shell) error) error {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("shell: session %q: %w", id, ErrSessionNotFound)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.evicted {
		return fmt.Errorf("shell: session %q: %w", id, ErrSessionNotFound)
	}
	entry.lastSeen = s.now()
	return fn(entry.shell)
}

// Delete drops the session.
func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("shell: session %q: %w", id, ErrSessionNotFound)
	}
	entry.mu.Lock()
	entry.evicted = true
	entry.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Sweep evicts sessions idle longer than the TTL and returns their ids.
// Sessions busy in With are skipped.
func (s *MemorySessionStore) Sweep() []string {
	if s.ttl <= 0 {
		return nil
	}
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	var evicted []string
	for id, entry := range s.sessions {
		if !entry.mu.TryLock() {
			continue
		}
		if entry.lastSeen.Before(cutoff) {
			entry.evicted = true
			delete(s.sessions, id)
			evicted = append(evicted, id)
		}
		entry.mu.Unlock()
	}
	return evicted
}

// Len reports the number of mounted sessions.
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
