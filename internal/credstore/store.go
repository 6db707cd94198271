// Package credstore persists the session token to durable local storage.
package credstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// TokenFile is the stored token filename.
const TokenFile = "token"

// ErrStorageFailure wraps underlying storage errors. Callers must treat a
// storage failure as "not authenticated" (fail closed); a missing token is
// not a failure.
var ErrStorageFailure = errors.New("credential storage failure")

// Store persists and retrieves a single opaque session token. Only the
// session manager writes through it.
type Store interface {
	// Save persists the token, overwriting any existing value.
	Save(token string) error

	// Load returns the persisted token. The second return is false when no
	// token is stored; absence is a normal outcome, not an error.
	Load() (string, bool, error)

	// Clear removes the persisted token. Clearing an empty store succeeds.
	Clear() error
}

// FileStore keeps the token in a single file under the config directory,
// mode 0600.
type FileStore struct {
	dir string
	log zerolog.Logger
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string, log zerolog.Logger) *FileStore {
	return &FileStore{dir: dir, log: log}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, TokenFile)
}

// Save implements Store.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	if err := os.WriteFile(s.path(), []byte(token), 0600); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	s.log.Debug().Str("path", s.path()).Msg("token saved")
	return nil
}

// Load implements Store.
func (s *FileStore) Load() (string, bool, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false, nil
	}
	return token, true, nil
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	s.log.Debug().Str("path", s.path()).Msg("token cleared")
	return nil
}
