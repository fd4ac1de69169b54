// Package session is the single owner of the locally persisted login
// state: the auth token, the account-type tag and the cached account
// record. Every read and write of that state goes through the Store so
// the source of truth stays singular and testable.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/localpay/localpay/internal/common"
	"github.com/localpay/localpay/internal/model"
)

// schemaVersion tags the persisted session file so future shape changes
// can migrate or discard stale data instead of misparsing it.
const schemaVersion = 1

// Session is the live login state. Exactly one exists per client.
type Session struct {
	Token       string            `json:"token"`
	AccountType model.AccountType `json:"accountType"`
	Account     model.Account     `json:"account"`
}

type envelope struct {
	Version int     `json:"version"`
	Session Session `json:"session"`
}

// Store persists the session as a JSON file. Writes are whole-record
// replaces; there are no partial updates.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a session store backed by the given file path.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("session path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Load returns the current session, or ErrNotLoggedIn when none exists.
// A file written by an incompatible schema version is discarded.
func (s *Store) Load() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, common.ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Corrupt file: treat as logged out rather than crash.
		_ = os.Remove(s.path)
		return nil, common.ErrNotLoggedIn
	}
	if env.Version != schemaVersion {
		_ = os.Remove(s.path)
		return nil, common.ErrNotLoggedIn
	}
	if env.Session.Token == "" || !env.Session.AccountType.Valid() {
		return nil, common.ErrNotLoggedIn
	}

	return &env.Session, nil
}

// Save replaces the persisted session atomically.
func (s *Store) Save(sess Session) error {
	if sess.Token == "" {
		return fmt.Errorf("session token cannot be empty")
	}
	if !sess.AccountType.Valid() {
		return fmt.Errorf("invalid account type: %q", sess.AccountType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(envelope{Version: schemaVersion, Session: sess}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Clearing an absent session is not
// an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Token returns the stored token, or "" when logged out. Used by the API
// client as its token source.
func (s *Store) Token() string {
	sess, err := s.Load()
	if err != nil {
		return ""
	}
	return sess.Token
}
