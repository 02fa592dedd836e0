// Package kv provides the injected key-value store the storefront uses for
// session-durable state: the live cart snapshot, the local order history,
// and the remembered customer profile.
package kv

import (
	"context"
	"errors"
	"sync"
)

// ErrKeyNotFound is returned by Get when the key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// Store is a minimal durable key-value interface. Values are opaque blobs;
// callers own the encoding. Set overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore is an in-memory Store implementation for tests and for
// running without a state directory.
type MemoryStore struct {
	values sync.Map
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := s.values.Load(key)
	if !ok {
		return nil, ErrKeyNotFound
	}
	blob := value.([]byte)
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	blob := make([]byte, len(value))
	copy(blob, value)
	s.values.Store(key, blob)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.values.Delete(key)
	return nil
}

var _ Store = (*MemoryStore)(nil)
