package tokenstore

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps the session values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	keys   Keys
	values map[string][]byte
}

func NewMemoryStore(prefix string) *MemoryStore {
	return &MemoryStore{
		keys:   NewKeys(prefix),
		values: make(map[string][]byte),
	}
}

func (s *MemoryStore) Token(_ context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[s.keys.Token]
	if !ok || len(v) == 0 {
		return "", false
	}
	return string(v), true
}

func (s *MemoryStore) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[s.keys.Token] = []byte(token)
	return nil
}

func (s *MemoryStore) User(_ context.Context) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[s.keys.User]
	if !ok || !json.Valid(v) {
		return nil, false
	}
	return append(json.RawMessage(nil), v...), true
}

func (s *MemoryStore) SetUser(_ context.Context, blob json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[s.keys.User] = append([]byte(nil), blob...)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, s.keys.Token)
	delete(s.values, s.keys.User)
	return nil
}
