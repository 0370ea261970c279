// Package filestore keeps key-value entries in a single JSON file.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/minbar-sermons-api/internal/repository"
)

// Store implements repository.KeyValueStore over a JSON object file.
// Writes go to a temporary file that is renamed over the original.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a file store at path. The file is created on first write.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("file store path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}
	return &Store{path: path}, nil
}

// Get returns the value stored under key
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return "", false, &repository.StorageError{Op: "get", Key: key, Err: err}
	}
	value, ok := entries[key]
	return value, ok, nil
}

// Set writes value under key
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return &repository.StorageError{Op: "set", Key: key, Err: err}
	}
	entries[key] = value
	if err := s.write(entries); err != nil {
		return &repository.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Delete removes key
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return &repository.StorageError{Op: "delete", Key: key, Err: err}
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	if err := s.write(entries); err != nil {
		return &repository.StorageError{Op: "delete", Key: key, Err: err}
	}
	return nil
}

// Ping checks that the storage file, if present, is readable
func (s *Store) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.read(); err != nil {
		return &repository.StorageError{Op: "ping", Err: err}
	}
	return nil
}

// Close is a no-op
func (s *Store) Close() error { return nil }

func (s *Store) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	entries := map[string]string{}
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return entries, nil
}

func (s *Store) write(entries map[string]string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
