package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const tokenFile = "token"

var _ TokenStore = (*FileStore)(nil)

// FileStore keeps the credential in a single file, readable only by the
// owner. Used by the CLI so logins survive between invocations.
type FileStore struct {
	path string
}

// NewFileStore stores under dir, or ~/.lms when dir is empty.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(home, ".lms")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return &FileStore{path: filepath.Join(dir, tokenFile)}, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

func (s *FileStore) Set(token string) error {
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
