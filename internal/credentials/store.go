// Package credentials holds the bearer token and current user for the
// admin session. State lives in memory and is mirrored to a JSON file
// so a restarted process resumes the same session, the way the web
// dashboard resumes from local storage.
package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"homequest-admin/internal/models"

	"github.com/dgrijalva/jwt-go"
)

// Store is the process-wide credential state. Construct it once and
// inject it wherever requests are issued; all writes happen under one
// mutex so there is a single writer at a time.
type Store struct {
	mu    sync.Mutex
	path  string
	token string
	user  *models.User
}

// persisted is the on-disk shape of the session file.
type persisted struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

// NewStore creates a credential store backed by the given file path and
// rehydrates any previously persisted session. A missing file is not an
// error; it just means nobody is logged in.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read session file: %v", err)
	}

	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		// A corrupt session file is treated as logged out rather than
		// wedging every startup.
		return s, nil
	}
	s.token = p.Token
	s.user = p.User
	return s, nil
}

// Set stores the token and user in memory and on disk in one step.
func (s *Store) Set(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = user
	return s.persistLocked()
}

// Clear removes the token and user from memory and deletes the session
// file. Clearing an already-empty store is a no-op.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %v", err)
	}
	return nil
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// CurrentUser returns the logged-in user record, or nil.
func (s *Store) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a usable token is present. A token
// whose exp claim has passed counts as absent.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && !tokenExpired(s.token)
}

func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %v", err)
	}
	data, err := json.Marshal(persisted{Token: s.token, User: s.user})
	if err != nil {
		return fmt.Errorf("failed to marshal session: %v", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %v", err)
	}
	return nil
}

// tokenExpired peeks at the JWT exp claim without verifying the
// signature; verification is the server's job. Opaque tokens are
// treated as non-expiring.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := &jwt.Parser{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return false
	}
	return time.Now().After(time.Unix(int64(exp), 0))
}
