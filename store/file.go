package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps one file per key under a directory.
// Writes go to a temp file in the same directory and are renamed into place.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the directory if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get reads the file for key.
func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	data, err := os.ReadFile(s.path(key)) // #nosec G304 - path is built from an escaped key
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", &Error{Op: "get", Key: key, Cause: err}
	}
	return string(data), nil
}

// Set atomically replaces the file for key.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return &Error{Op: "set", Key: key, Cause: err}
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return &Error{Op: "set", Key: key, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &Error{Op: "set", Key: key, Cause: err}
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return &Error{Op: "set", Key: key, Cause: err}
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

var _ KV = (*FileStore)(nil)
