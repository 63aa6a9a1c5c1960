// Package token persists the Mixamo access token between runs.
package token

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPath returns the default token location, ~/.animcp/token.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".animcp", "token"), nil
}

// Store reads and writes the access token file. Tokens are captured by the
// user from a logged-in browser session; the store only persists them.
type Store struct {
	path string
}

// NewStore creates a store writing to path. An empty path selects the
// default location under the user's home directory.
func NewStore(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return &Store{path: path}, nil
}

// Path returns the token file location.
func (s *Store) Path() string {
	return s.path
}

// Save writes the token with owner-only permissions, creating the parent
// directory on demand.
func (s *Store) Save(tok string) error {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return fmt.Errorf("refusing to save an empty token")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(tok+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Load returns the stored token, or an empty string when no token file
// exists yet.
func (s *Store) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Clear removes the token file. Clearing an absent token is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
