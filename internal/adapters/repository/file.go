package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

// FileStore persists each save as one JSON file under a directory. Writes go
// through a temp file and rename so a crash mid-write never leaves a
// truncated save behind.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func (s *FileStore) path(key string) string {
	name := unsafeKeyChars.ReplaceAllString(key, "_")
	return filepath.Join(s.dir, name+".json")
}

// Load returns the blob stored under key.
func (s *FileStore) Load(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read save %s: %w", key, err)
	}
	return data, nil
}

// Save writes the blob under key.
func (s *FileStore) Save(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	target := s.path(key)
	tmp, err := os.CreateTemp(s.dir, ".save-*")
	if err != nil {
		return fmt.Errorf("write save %s: %w", key, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write save %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write save %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write save %s: %w", key, err)
	}
	return nil
}

// Delete removes the save under key.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete save %s: %w", key, err)
	}
	return nil
}
