package chat

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"propertychat/internal/models"
)

// SessionStore owns every live conversation. Sessions exist only in process
// memory for the lifetime of the process; the store self-bounds through
// retention sweeps triggered opportunistically by request traffic, so peak
// size between sweeps is unbounded. Callers needing a hard cap must count
// live sessions and reject creation past it.
type SessionStore struct {
	clock clock.Clock

	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

// sessionEntry serializes all mutation of one session. Distinct ids proceed
// independently; the store map lock is never held across a turn.
type sessionEntry struct {
	mu      sync.Mutex
	session *models.ChatSession
}

// NewSessionStore constructs an empty store.
func NewSessionStore(clk clock.Clock) *SessionStore {
	return &SessionStore{
		clock:    clk,
		sessions: make(map[string]*sessionEntry),
	}
}

// GetOrCreate returns the live session under id, or mints a fresh session
// when id is empty or unknown. Creation is atomic: two requests racing on the
// same absent id observe the same winner instead of creating duplicates.
func (s *SessionStore) GetOrCreate(id string) *models.ChatSession {
	entry := s.getOrCreateEntry(id)
	return entry.session
}

// WithSession resolves (or creates) the session and runs fn while holding its
// lock. A whole visitor turn runs as one critical section, so a dangling
// visitor message without its reply can never be observed. A sweep can evict
// the entry between resolution and lock; the liveness re-check catches that
// and resolves a fresh entry, so a turn never lands in an evicted session.
func (s *SessionStore) WithSession(id string, fn func(session *models.ChatSession) error) (string, error) {
	for {
		entry := s.getOrCreateEntry(id)
		entry.mu.Lock()
		s.mu.RLock()
		live := s.sessions[entry.session.ID] == entry
		s.mu.RUnlock()
		if !live {
			entry.mu.Unlock()
			continue
		}
		err := fn(entry.session)
		sessionID := entry.session.ID
		entry.mu.Unlock()
		return sessionID, err
	}
}

func (s *SessionStore) getOrCreateEntry(id string) *sessionEntry {
	if id != "" {
		s.mu.RLock()
		entry, ok := s.sessions[id]
		s.mu.RUnlock()
		if ok {
			return entry
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" {
		// Lost the race to a concurrent creator: attach to the winner.
		if entry, ok := s.sessions[id]; ok {
			return entry
		}
	}
	// A well-formed id that is simply not live anymore is adopted, so two
	// requests racing on the same absent id converge on one session instead
	// of creating duplicates. Anything else gets a minted id.
	newID := id
	if newID == "" || uuid.Validate(newID) != nil {
		newID = uuid.NewString()
	}
	now := s.clock.Now().UTC()
	session := &models.ChatSession{
		ID:             newID,
		Messages:       make([]*models.ChatMessage, 0, 4),
		Status:         models.StatusActive,
		CreatedAt:      now,
		LastActivityAt: now,
	}
	entry := &sessionEntry{session: session}
	s.sessions[session.ID] = entry
	return entry
}

// Get returns the live session under id, if any.
func (s *SessionStore) Get(id string) (*models.ChatSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return entry.session, true
}

// UpdateIfPresent runs fn under the session's lock when the session is live,
// and reports whether it was. Unlike WithSession it never creates a session.
func (s *SessionStore) UpdateIfPresent(id string, fn func(session *models.ChatSession)) bool {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	fn(entry.session)
	return true
}

// Append pushes a message onto the session and bumps LastActivityAt.
// LastActivityAt never moves backwards.
func (s *SessionStore) Append(session *models.ChatSession, msg *models.ChatMessage) {
	session.Messages = append(session.Messages, msg)
	if now := s.clock.Now().UTC(); now.After(session.LastActivityAt) {
		session.LastActivityAt = now
	}
}

// Sweep removes every session whose last activity is older than the retention
// window and reports how many were evicted. Sessions currently serving a
// request are skipped: they just had their activity bumped and cannot be the
// eviction target of the same pass.
func (s *SessionStore) Sweep(retention time.Duration) int {
	cutoff := s.clock.Now().UTC().Add(-retention)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.sessions {
		if !entry.mu.TryLock() {
			continue
		}
		expired := entry.session.LastActivityAt.Before(cutoff)
		entry.mu.Unlock()
		if expired {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
