package storage

import (
	"context"
	"sync"
)

// MemoryArea is an in-process Area. Its contents die with the process.
type MemoryArea struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryArea returns an empty area.
func NewMemoryArea() *MemoryArea {
	return &MemoryArea{values: make(map[string]string)}
}

func (a *MemoryArea) Get(_ context.Context, key string) (string, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	v, ok := a.values[key]
	return v, ok, nil
}

func (a *MemoryArea) SetAll(_ context.Context, values map[string]string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for k, v := range values {
		a.values[k] = v
	}
	return nil
}

func (a *MemoryArea) Delete(_ context.Context, keys ...string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, k := range keys {
		delete(a.values, k)
	}
	return nil
}
