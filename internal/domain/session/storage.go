// internal/domain/session/storage.go
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// storedSession is the on-disk session format: the one durable key
// the client keeps between runs
type storedSession struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// saveSession writes the session file with owner-only permissions
func saveSession(path string, token string, user *User) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(storedSession{Token: token, User: user}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// loadSession reads a previously saved session. A missing file is
// not an error; it returns an empty session.
func loadSession(path string) (*storedSession, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to decode session file: %w", err)
	}
	if stored.Token == "" || stored.User == nil {
		// Partial sessions are treated as absent
		return nil, nil
	}

	return &stored, nil
}

// removeSession deletes the session file; a missing file is fine
func removeSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
