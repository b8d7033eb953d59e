package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/core"
)

// ErrNotFound is returned when an analyzed email does not exist
var ErrNotFound = errors.New("analyzed email not found")

// MemoryStore is an in-memory implementation of the EmailRepository
// interface, mainly for tests and ephemeral deployments
type MemoryStore struct {
	emails map[string]*core.AnalyzedEmail
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		emails: make(map[string]*core.AnalyzedEmail),
		logger: logger,
	}
}

// Save stores an analyzed email
func (s *MemoryStore) Save(ctx context.Context, email *core.AnalyzedEmail) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *email
	s.emails[email.ID] = &stored
	return nil
}

// Get retrieves an analyzed email by id
func (s *MemoryStore) Get(ctx context.Context, id string) (*core.AnalyzedEmail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email, ok := s.emails[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := *email
	return &found, nil
}

// List returns analyzed emails, newest first
func (s *MemoryStore) List(ctx context.Context) ([]*core.AnalyzedEmail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	emails := make([]*core.AnalyzedEmail, 0, len(s.emails))
	for _, email := range s.emails {
		found := *email
		emails = append(emails, &found)
	}
	sort.Slice(emails, func(i, j int) bool {
		return emails[i].CreatedAt.After(emails[j].CreatedAt)
	})
	return emails, nil
}

// Delete removes an analyzed email
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.emails[id]; !ok {
		return ErrNotFound
	}
	delete(s.emails, id)
	return nil
}
