package store

import (
	"context"
	"sync"

	"credstate/internal/domain"
	"credstate/pkg/platform/sentinel"
)

// MemoryStore keeps OTP enrollments in memory. Suitable for development and
// tests; production deployments use the Postgres or Redis store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]domain.OTPRecord
}

// NewMemory creates an empty in-memory OTP record store.
func NewMemory() *MemoryStore {
	return &MemoryStore{records: make(map[string]domain.OTPRecord)}
}

func (s *MemoryStore) Find(_ context.Context, identity domain.Identity) (*domain.OTPRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[identity.DN]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	copied := record
	return &copied, nil
}

func (s *MemoryStore) Save(_ context.Context, record domain.OTPRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Identity.DN] = record
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, identity domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, identity.DN)
	return nil
}
