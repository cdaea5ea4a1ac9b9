package store

import (
	"context"
	"sync"

	"github.com/trackmint/mailledger/internal/domain"
)

// MemoryStore is an in-memory TransactionStore, safe for concurrent use.
// Data is lost on restart; it backs tests and local runs without GCP
// credentials.
type MemoryStore struct {
	mu  sync.RWMutex
	txs map[string]map[string]domain.PersistedTransaction // userID -> id -> tx
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{txs: make(map[string]map[string]domain.PersistedTransaction)}
}

// Exists implements TransactionStore.
func (s *MemoryStore) Exists(ctx context.Context, userID, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.txs[userID][id]
	return ok, nil
}

// Create implements TransactionStore.
func (s *MemoryStore) Create(ctx context.Context, userID string, tx *domain.PersistedTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.txs[userID]
	if !ok {
		user = make(map[string]domain.PersistedTransaction)
		s.txs[userID] = user
	}
	if _, ok := user[tx.ID]; ok {
		return ErrExists
	}
	user[tx.ID] = *tx
	return nil
}

// List implements TransactionStore.
func (s *MemoryStore) List(ctx context.Context, userID string) ([]domain.PersistedTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.PersistedTransaction, 0, len(s.txs[userID]))
	for _, tx := range s.txs[userID] {
		result = append(result, tx)
	}
	return result, nil
}

var _ TransactionStore = (*MemoryStore)(nil)
