package identity

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

type session struct {
	identity  Identity
	expiresAt time.Time
}

// SessionStore holds server-side sessions keyed by opaque token. Sessions
// expire a fixed TTL after creation; there is no sliding renewal.
type SessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]session
	done     chan struct{}
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	store := &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]session),
		done:     make(chan struct{}),
	}
	go store.sweep()
	return store
}

func (s *SessionStore) Create(ident Identity) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.sessions[token] = session{identity: ident, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token, nil
}

func (s *SessionStore) Get(token string) (Identity, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(sess.expiresAt) {
		return Identity{}, false
	}
	return sess.identity, true
}

func (s *SessionStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

func (s *SessionStore) Close() {
	close(s.done)
}

func (s *SessionStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for token, sess := range s.sessions {
				if now.After(sess.expiresAt) {
					delete(s.sessions, token)
				}
			}
			s.mu.Unlock()
		}
	}
}

func generateToken() (string, error) {
	buff := make([]byte, 32)
	if _, err := rand.Read(buff); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buff), nil
}
