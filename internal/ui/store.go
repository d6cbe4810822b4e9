package ui

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// SessionStore defines the interface for storing and retrieving page
// sessions by their cookie token.
type SessionStore interface {
	// Create makes a new session and returns its token
	Create() (token string, s *Session, err error)

	// Retrieve gets a session by its token
	Retrieve(token string) (*Session, error)

	// Delete removes a session
	Delete(token string) error

	// Stats reports the live session count and the age of the oldest
	Stats() (count int, oldestAge time.Duration)
}

// sessionEntry holds a session with its expiration time
type sessionEntry struct {
	session   *Session
	expiresAt time.Time
}

// MemorySessionStore implements SessionStore using in-memory storage
// with TTL. Suitable for single-instance deployments; a distributed
// deployment would need Redis or another shared backend.
type MemorySessionStore struct {
	mu         sync.RWMutex
	sessions   map[string]sessionEntry
	ttl        time.Duration
	newSession func() *Session
	stopChan   chan struct{}
}

// NewMemorySessionStore creates a new in-memory session store.
// newSession constructs a fresh session for Create.
// ttl specifies how long idle sessions are kept before expiration.
// cleanupInterval specifies how often to run the cleanup routine.
func NewMemorySessionStore(newSession func() *Session, ttl, cleanupInterval time.Duration) *MemorySessionStore {
	store := &MemorySessionStore{
		sessions:   make(map[string]sessionEntry),
		ttl:        ttl,
		newSession: newSession,
		stopChan:   make(chan struct{}),
	}

	// Start background cleanup goroutine
	go store.cleanupLoop(cleanupInterval)

	return store
}

// Create makes a new session and returns its token.
func (s *MemorySessionStore) Create() (string, *Session, error) {
	token, err := generateToken()
	if err != nil {
		return "", nil, err
	}

	sess := s.newSession()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = sessionEntry{
		session:   sess,
		expiresAt: time.Now().Add(s.ttl),
	}

	return token, sess, nil
}

// Retrieve gets a session by its token. Unlike a one-shot cursor, a
// session stays live while the page is in use, so retrieval renews the
// TTL.
func (s *MemorySessionStore) Retrieve(token string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.sessions[token]
	if !exists {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(entry.expiresAt) {
		delete(s.sessions, token)
		return nil, ErrSessionExpired
	}

	entry.expiresAt = time.Now().Add(s.ttl)
	s.sessions[token] = entry

	return entry.session, nil
}

// Delete removes a session by its token.
func (s *MemorySessionStore) Delete(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// Stop stops the background cleanup goroutine.
func (s *MemorySessionStore) Stop() {
	close(s.stopChan)
}

// cleanupLoop periodically removes expired sessions.
func (s *MemorySessionStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopChan:
			return
		}
	}
}

// cleanup removes all expired sessions.
func (s *MemorySessionStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for token, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, token)
		}
	}
}

// Stats returns statistics about the session store.
func (s *MemorySessionStore) Stats() (count int, oldestAge time.Duration) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count = len(s.sessions)
	if count == 0 {
		return 0, 0
	}

	var oldest time.Time
	now := time.Now()
	for _, entry := range s.sessions {
		created := entry.expiresAt.Add(-s.ttl)
		if oldest.IsZero() || created.Before(oldest) {
			oldest = created
		}
	}

	return count, now.Sub(oldest)
}

// generateToken creates a cryptographically secure random token.
func generateToken() (string, error) {
	bytes := make([]byte, 16) // 128 bits = 32 hex chars
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// Sentinel errors for session store operations
var (
	ErrSessionNotFound = sessionStoreError("session not found")
	ErrSessionExpired  = sessionStoreError("session expired")
)

type sessionStoreError string

func (e sessionStoreError) Error() string {
	return string(e)
}
