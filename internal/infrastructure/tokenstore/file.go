package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

// FileStore keeps the session values in a JSON document on disk, one string
// value per key. Writes replace the whole document atomically.
type FileStore struct {
	path string
	keys Keys
	mu   sync.Mutex
	log  zerolog.Logger
}

func NewFileStore(path, prefix string, log zerolog.Logger) *FileStore {
	return &FileStore{
		path: path,
		keys: NewKeys(prefix),
		log:  log,
	}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Token(_ context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.read()[s.keys.Token]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (s *FileStore) SetToken(_ context.Context, token string) error {
	return s.mutate(func(values map[string]string) {
		values[s.keys.Token] = token
	})
}

func (s *FileStore) User(_ context.Context) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.read()[s.keys.User]
	if !ok || !json.Valid([]byte(v)) {
		return nil, false
	}
	return json.RawMessage(v), true
}

func (s *FileStore) SetUser(_ context.Context, blob json.RawMessage) error {
	return s.mutate(func(values map[string]string) {
		values[s.keys.User] = string(blob)
	})
}

func (s *FileStore) Clear(_ context.Context) error {
	return s.mutate(func(values map[string]string) {
		delete(values, s.keys.Token)
		delete(values, s.keys.User)
	})
}

func (s *FileStore) mutate(fn func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := s.read()
	fn(values)
	return s.write(values)
}

// read returns the stored values. Missing or corrupt files read as empty.
func (s *FileStore) read() map[string]string {
	values := make(map[string]string)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("token store unreadable")
		}
		return values
	}
	if err := json.Unmarshal(data, &values); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("token store corrupt, treating as empty")
		return make(map[string]string)
	}
	return values
}

// write persists values with tmp -> fsync -> rename.
func (s *FileStore) write(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("token store: create dir: %w", err)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("token store: marshal: %w", err)
	}

	tmpPath := s.path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("token store: create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("token store: write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("token store: fsync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("token store: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("token store: rename: %w", err)
	}
	return nil
}
