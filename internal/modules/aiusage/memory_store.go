package aiusage

import (
	"context"
	"sync"

	"garagehub/internal/types"
)

type usage struct {
	tokens int
	month  string
}

type MemoryStore struct {
	mu   sync.Mutex
	rows map[types.ID]usage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[types.ID]usage)}
}

func (s *MemoryStore) UseToken(_ context.Context, uid types.ID, month string, allowance int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[uid]
	if !ok {
		return ErrInsufficientTokens
	}
	if row.month < month {
		row = usage{tokens: allowance, month: month}
	}
	if row.tokens <= 0 {
		return ErrInsufficientTokens
	}
	row.tokens--
	s.rows[uid] = row
	return nil
}

func (s *MemoryStore) EnsureUser(_ context.Context, uid types.ID, month string, allowance int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[uid]; !ok {
		s.rows[uid] = usage{tokens: allowance, month: month}
	}
	return nil
}

func (s *MemoryStore) Remaining(_ context.Context, uid types.ID) (int, string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[uid]
	return row.tokens, row.month, ok, nil
}
