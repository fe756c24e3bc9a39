// internal/infrastructure/kv/memory.go
package kv

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memEntry struct {
	value     []byte
	list      [][]byte
	expiresAt time.Time
}

func (e memEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore is an in-process Store used by tests and local runs without Redis
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]memEntry
	now  func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]memEntry),
		now:  time.Now,
	}
}

func (s *MemoryStore) lookup(key string) (memEntry, bool) {
	e, ok := s.data[key]
	if !ok {
		return memEntry{}, false
	}
	if e.expired(s.now()) {
		delete(s.data, key)
		return memEntry{}, false
	}
	return e, true
}

// Get retrieves a value by key
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(key)
	if !ok || e.value == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), e.value...), nil
}

// Set stores a value with expiration
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(Set(key, value, ttl))
	return nil
}

// SetNX stores value only when key is absent and reports whether it did
func (s *MemoryStore) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lookup(key); ok {
		return false, nil
	}
	s.apply(Set(key, value, ttl))
	return true, nil
}

// Delete deletes one or more keys
func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

// List returns the list stored under key, head first
func (s *MemoryStore) List(_ context.Context, key string) ([][]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(key)
	if !ok {
		return nil, nil
	}
	out := make([][]byte, len(e.list))
	for i, v := range e.list {
		out[i] = append([]byte(nil), v...)
	}
	return out, nil
}

// Commit applies every op under one lock
func (s *MemoryStore) Commit(_ context.Context, ops ...Op) error {
	for _, op := range ops {
		switch op.Kind {
		case OpSet, OpDelete, OpPush, OpCreate:
		default:
			return fmt.Errorf("unknown op kind %d", op.Kind)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range ops {
		if op.Kind != OpCreate {
			continue
		}
		if _, ok := s.lookup(op.Key); ok {
			return fmt.Errorf("%w: %s", ErrConflict, op.Key)
		}
	}
	for _, op := range ops {
		s.apply(op)
	}
	return nil
}

// Ping always succeeds
func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) apply(op Op) {
	switch op.Kind {
	case OpSet, OpCreate:
		e := memEntry{value: append([]byte(nil), op.Value...)}
		if op.TTL > 0 {
			e.expiresAt = s.now().Add(op.TTL)
		}
		s.data[op.Key] = e
	case OpDelete:
		delete(s.data, op.Key)
	case OpPush:
		e, _ := s.lookup(op.Key)
		e.value = nil
		e.list = append([][]byte{append([]byte(nil), op.Value...)}, e.list...)
		s.data[op.Key] = e
	}
}
