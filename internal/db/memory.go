package db

import (
	"context"
	"sync"
)

// MemoryRepository is a map-backed snapshot repository. It backs tests and
// ephemeral runs; nothing survives the process.
type MemoryRepository struct {
	mu      sync.Mutex
	buckets map[string][]byte

	// SaveCalls counts Save invocations, letting tests assert that a
	// multi-write operation landed as a single snapshot.
	SaveCalls int
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{buckets: make(map[string][]byte)}
}

func (m *MemoryRepository) Load(ctx context.Context) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.buckets))
	for k, v := range m.buckets {
		cp := make([]byte, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out, nil
}

func (m *MemoryRepository) Save(ctx context.Context, buckets map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range buckets {
		cp := make([]byte, len(v))
		copy(cp, v)
		m.buckets[k] = cp
	}
	m.SaveCalls++
	return nil
}
