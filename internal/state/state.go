// Package state persists per-manuscript index sessions between runs.
package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
)

const (
	stateFileName = "index_sessions.json"
	hashBytes     = 8192 // First 8KB for content hash
)

// SavedTerm is one manually added index term.
type SavedTerm struct {
	Term     string `json:"term"`
	Category string `json:"category"`
	Page     int    `json:"page"`
}

// Session stores the index terms and page format chosen for one manuscript.
type Session struct {
	PageFormat string      `json:"page_format"`
	Terms      []SavedTerm `json:"terms,omitempty"`
}

// Store manages persistent sessions keyed by manuscript content hash.
type Store struct {
	path string
	data map[string]Session
	mu   sync.RWMutex
}

// NewStore creates or loads the session store from XDG_STATE_HOME/folio.
func NewStore() (*Store, error) {
	dir := getStateDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	store := &Store{
		path: filepath.Join(dir, stateFileName),
		data: make(map[string]Session),
	}
	if err := store.load(); err != nil {
		// Non-fatal - start with empty state
		store.data = make(map[string]Session)
	}
	return store, nil
}

// getStateDir returns XDG_STATE_HOME/folio or ~/.local/state/folio
func getStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "folio")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "folio")
}

// ComputeHash generates content hash for file identity
func ComputeHash(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, hashBytes)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	hash := sha256.Sum256(buf[:n])
	return hex.EncodeToString(hash[:16]), nil // First 16 bytes = 32 hex chars
}

// Session returns the saved session for a manuscript, if any.
func (s *Store) Session(hash string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.data[hash]
	return sess, ok
}

// SaveSession stores the session for a manuscript.
func (s *Store) SaveSession(hash string, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[hash] = sess
	return s.save()
}

// Clear removes the saved session for a manuscript.
func (s *Store) Clear(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, hash)
	return s.save()
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.data)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
