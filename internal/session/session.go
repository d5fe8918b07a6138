// Package session holds the authenticated identity and token. It replaces
// the browser's localStorage with an explicit file-backed store that the
// gateway client consumes as a TokenSource.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ajosh-NyxBar/SkillSwap/internal/models"
)

// Session is one authenticated login: the bearer token and the identity the
// backend returned alongside it.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Store persists the session to a JSON file and serves it to the rest of the
// client. All access goes through the store; there is no ambient global.
type Store struct {
	path string

	mu      sync.RWMutex
	current *Session
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load restores a previously saved session. A missing file is not an error;
// it simply means nobody is logged in.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if sess.Token == "" {
		return nil, nil
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return &sess, nil
}

// Save stores the session in memory and on disk.
func (s *Store) Save(sess *Session) error {
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear logs out: memory and file both go.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Current returns the active session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Expired reports whether the stored token's exp claim has passed. The
// signature is not verified; the client has no key and the backend is the
// authority anyway. Tokens without an exp claim count as live.
func (s *Store) Expired(now time.Time) bool {
	token := s.Token()
	if token == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
