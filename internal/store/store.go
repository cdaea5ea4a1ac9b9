package store

import (
	"context"
	"errors"

	"github.com/trackmint/mailledger/internal/domain"
)

// ErrExists means a transaction with the same identity is already stored.
// Callers treat it as a silent duplicate, not a failure.
var ErrExists = errors.New("store: transaction already exists")

// TransactionStore is the engine's write-once view of the document store.
// Documents are keyed by (user, transaction id); the engine never updates
// or deletes after Create.
type TransactionStore interface {
	// Exists reports whether a transaction with this id is already stored
	// for the user.
	Exists(ctx context.Context, userID, id string) (bool, error)

	// Create stores a new transaction. It returns ErrExists when a document
	// with the same id is already present, including when a concurrent
	// writer won the race after an Exists check.
	Create(ctx context.Context, userID string, tx *domain.PersistedTransaction) error

	// List returns all stored transactions for the user, used by batch
	// analyses such as subscription detection.
	List(ctx context.Context, userID string) ([]domain.PersistedTransaction, error)
}
