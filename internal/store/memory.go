package store

import (
	"maps"
	"sync"
)

// Memory is a Medium that keeps values in process memory only.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns an empty in-memory medium.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// NewMemoryFrom returns an in-memory medium holding a copy of values.
func NewMemoryFrom(values map[string]string) *Memory {
	m := NewMemory()
	maps.Copy(m.values, values)
	return m
}

func (m *Memory) Name() string { return "memory" }

func (m *Memory) LoadAll() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.values), nil
}

func (m *Memory) Save(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Close() error { return nil }
