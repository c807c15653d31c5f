package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/eduplat/campus-cli/internal/domain"
	"github.com/eduplat/campus-cli/internal/ports"
)

const (
	storeDirMode    = 0o700
	sessionFileMode = 0o600
	tempFilePattern = ".session-*.json.tmp"
)

type sessionSchema struct {
	Token string          `json:"token"`
	User  json.RawMessage `json:"user"`
}

// Store persists the session as a 0600 JSON file and serves reads from
// memory. A corrupt or partial file degrades to "not authenticated" rather
// than an error, matching how the client treats partial sessions.
type Store struct {
	path string

	mu      sync.RWMutex
	current domain.Session
}

var _ ports.SessionStore = (*Store)(nil)

func NewStore(path string) (*Store, error) {
	store := &Store{path: filepath.Clean(path)}
	if err := store.load(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Save(session domain.Session) error {
	if !session.Authenticated() {
		return fmt.Errorf("refusing to persist partial session: %w", domain.ErrNotAuthenticated)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(session); err != nil {
		return err
	}
	s.current = session
	return nil
}

func (s *Store) UpdateUser(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.current.Authenticated() {
		return domain.ErrNotAuthenticated
	}

	updated := domain.Session{Token: s.current.Token, User: &user}
	if err := s.write(updated); err != nil {
		return err
	}
	s.current = updated
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = domain.Session{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read session file: %w", err)
	}

	var schema sessionSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		// Unreadable state is treated as logged out, not fatal.
		return nil
	}

	var user *domain.User
	if len(schema.User) > 0 && string(schema.User) != "null" {
		var decoded domain.User
		if err := json.Unmarshal(schema.User, &decoded); err == nil {
			user = &decoded
		}
	}

	session := domain.Session{Token: schema.Token, User: user}
	if session.Authenticated() {
		s.current = session
	}
	return nil
}

func (s *Store) write(session domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), storeDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(s.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp session file: %w", err)
	}
	if err := tempFile.Chmod(sessionFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp session file: %w", err)
	}

	if err := os.Rename(tempName, s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	cleanup = false
	return nil
}
