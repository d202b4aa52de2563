package cache

import "arxivdigest/internal/ports"

// Memory is the per-run collaborator cache. It assumes the pipeline's
// single-threaded execution model and carries no locking; a concurrent
// pipeline must synchronize it or shard it per worker.
type Memory struct {
	buckets map[string]map[string]string
}

var _ ports.Cache = (*Memory)(nil)

// NewMemory builds an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{buckets: map[string]map[string]string{}}
}

// Get returns the cached value for key within bucket.
func (m *Memory) Get(bucket, key string) (string, bool) {
	value, ok := m.buckets[bucket][key]
	return value, ok
}

// Set stores value under key within bucket.
func (m *Memory) Set(bucket, key, value string) error {
	b, ok := m.buckets[bucket]
	if !ok {
		b = map[string]string{}
		m.buckets[bucket] = b
	}
	b[key] = value
	return nil
}
