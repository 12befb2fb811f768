package storage

import "sync"

// MemorySlots keeps slots in process memory. Used for tests and the "memory" driver.
type MemorySlots struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{data: make(map[string]string)}
}

func (m *MemorySlots) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemorySlots) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemorySlots) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemorySlots) Close() error { return nil }
