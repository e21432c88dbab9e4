package prefs

import (
	"context"
	"sync"
)

// KV is the storage medium behind a Store.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Backend hands out a KV per visitor.
type Backend interface {
	Scope(visitor string) KV
}

// MemoryKV is a KV held in process memory.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	m.values[key] = value
	m.mu.Unlock()
	return nil
}

// MemoryBackend keeps one MemoryKV per visitor.
type MemoryBackend struct {
	mu     sync.Mutex
	scopes map[string]*MemoryKV
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{scopes: make(map[string]*MemoryKV)}
}

func (b *MemoryBackend) Scope(visitor string) KV {
	b.mu.Lock()
	defer b.mu.Unlock()
	kv, ok := b.scopes[visitor]
	if !ok {
		kv = NewMemoryKV()
		b.scopes[visitor] = kv
	}
	return kv
}
