package storage

import (
	"context"
	"sync"

	"github.com/garrettladley/sugang/internal/credential"
)

var _ Backend = (*MemoryBackend)(nil)

type MemoryBackend struct {
	mu       sync.RWMutex
	creds    *credential.Credentials
	attempts []Attempt
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Get(_ context.Context) (credential.Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.creds == nil {
		return credential.Credentials{}, ErrNotFound
	}
	return *m.creds, nil
}

func (m *MemoryBackend) Set(_ context.Context, c credential.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = &c
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creds = nil
	return nil
}

func (m *MemoryBackend) RecordAttempt(_ context.Context, a Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *MemoryBackend) ListAttempts(_ context.Context, limit int) ([]Attempt, error) {
	if limit <= 0 {
		return nil, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Attempt, 0, min(limit, len(m.attempts)))
	for i := len(m.attempts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.attempts[i])
	}
	return out, nil
}

func (m *MemoryBackend) Close() error { return nil }
