package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"pomotick/internal/core/model"
)

const sessionFileName = "session.json"

// SessionStore persists the session snapshot as one JSON file in the app
// data directory, the single well-known key the state machine mirrors into.
type SessionStore struct {
	dir string
}

// NewSessionStore creates a store rooted at dir.
func NewSessionStore(dir string) *SessionStore {
	return &SessionStore{dir: dir}
}

// DefaultDir returns the OS-standard data directory for the app.
func DefaultDir(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

// Load reads the persisted snapshot. A missing file reports absent; a
// corrupt file is logged, removed and also reported absent, so a bad
// snapshot can never wedge startup.
func (store *SessionStore) Load() (model.Session, bool) {
	rawData, err := os.ReadFile(store.path())
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("read session snapshot: %v", err)
		}
		return model.DefaultSession(), false
	}

	var session model.Session
	if err := json.Unmarshal(rawData, &session); err != nil {
		log.Printf("discard corrupt session snapshot: %v", err)
		if err := store.Clear(); err != nil {
			log.Printf("clear session snapshot: %v", err)
		}
		return model.DefaultSession(), false
	}

	return session.Normalize(), true
}

// Save writes the snapshot, creating the data directory if needed.
func (store *SessionStore) Save(session model.Session) error {
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	serialized, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session snapshot: %w", err)
	}

	if err := os.WriteFile(store.path(), serialized, 0o644); err != nil {
		return fmt.Errorf("write session snapshot: %w", err)
	}
	return nil
}

// Clear removes the persisted snapshot.
func (store *SessionStore) Clear() error {
	if err := os.Remove(store.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session snapshot: %w", err)
	}
	return nil
}

func (store *SessionStore) path() string {
	return filepath.Join(store.dir, sessionFileName)
}
