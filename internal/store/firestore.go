package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/trackmint/mailledger/internal/domain"
)

// FirestoreStore keeps transactions under users/{uid}/transactions/{id}.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore connects to the project's Firestore database.
func NewFirestoreStore(ctx context.Context, projectID string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

// Close releases the underlying client.
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

// txDoc is the Firestore row shape. This is a storage struct, not the
// domain struct: the decimal amount is serialized as a string so no
// precision is lost to float rounding.
type txDoc struct {
	Kind             string    `firestore:"kind"`
	Amount           string    `firestore:"amount"`
	BankCode         string    `firestore:"bank_code,omitempty"`
	Note             string    `firestore:"note,omitempty"`
	Timestamp        time.Time `firestore:"timestamp"`
	CounterpartyName string    `firestore:"counterparty_name,omitempty"`
	CounterpartyType string    `firestore:"counterparty_type,omitempty"`
	VPA              string    `firestore:"vpa,omitempty"`
	CardLast4        string    `firestore:"card_last4,omitempty"`
	Instrument       string    `firestore:"instrument,omitempty"`
	Category         string    `firestore:"category"`
	Subcategory      string    `firestore:"subcategory"`
	Tags             []string  `firestore:"tags,omitempty"`
	IsSubscription   bool      `firestore:"is_subscription"`
	SubscriptionName string    `firestore:"subscription_name,omitempty"`
	IsHiddenCharge   bool      `firestore:"is_hidden_charge"`
	SourceMessageID  string    `firestore:"source_message_id"`
	SourceSnippet    string    `firestore:"source_snippet,omitempty"`
	CreatedAt        time.Time `firestore:"created_at"`
}

func (s *FirestoreStore) doc(userID, id string) *firestore.DocumentRef {
	return s.client.Collection("users").Doc(userID).Collection("transactions").Doc(id)
}

// Exists implements TransactionStore.
func (s *FirestoreStore) Exists(ctx context.Context, userID, id string) (bool, error) {
	_, err := s.doc(userID, id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, fmt.Errorf("exists %s: %w", id, err)
	}
	return true, nil
}

// Create implements TransactionStore. Firestore's Create fails with
// AlreadyExists when the document is present, which converts a lost
// check-then-write race into ErrExists instead of an overwrite.
func (s *FirestoreStore) Create(ctx context.Context, userID string, tx *domain.PersistedTransaction) error {
	_, err := s.doc(userID, tx.ID).Create(ctx, toDoc(tx))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return ErrExists
		}
		return fmt.Errorf("create %s: %w", tx.ID, err)
	}
	return nil
}

// List implements TransactionStore.
func (s *FirestoreStore) List(ctx context.Context, userID string) ([]domain.PersistedTransaction, error) {
	snaps, err := s.client.Collection("users").Doc(userID).Collection("transactions").Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	txs := make([]domain.PersistedTransaction, 0, len(snaps))
	for _, snap := range snaps {
		var d txDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", snap.Ref.ID, err)
		}
		tx, err := fromDoc(snap.Ref.ID, &d)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", snap.Ref.ID, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func toDoc(tx *domain.PersistedTransaction) *txDoc {
	return &txDoc{
		Kind:             string(tx.Kind),
		Amount:           tx.Amount.StringFixed(2),
		BankCode:         tx.BankCode,
		Note:             tx.Note,
		Timestamp:        tx.Timestamp,
		CounterpartyName: tx.Counterparty.Name,
		CounterpartyType: string(tx.Counterparty.Type),
		VPA:              tx.Counterparty.VPA,
		CardLast4:        tx.CardLast4,
		Instrument:       string(tx.Instrument),
		Category:         tx.Category,
		Subcategory:      tx.Subcategory,
		Tags:             tx.Tags,
		IsSubscription:   tx.IsSubscription,
		SubscriptionName: tx.SubscriptionName,
		IsHiddenCharge:   tx.IsHiddenCharge,
		SourceMessageID:  tx.Provenance.MessageID,
		SourceSnippet:    tx.Provenance.Snippet,
		CreatedAt:        tx.CreatedAt,
	}
}

func fromDoc(id string, d *txDoc) (domain.PersistedTransaction, error) {
	amount, err := decimal.NewFromString(d.Amount)
	if err != nil {
		return domain.PersistedTransaction{}, fmt.Errorf("amount %q: %w", d.Amount, err)
	}
	return domain.PersistedTransaction{
		ID:        id,
		Kind:      domain.Kind(d.Kind),
		Amount:    amount,
		BankCode:  d.BankCode,
		Note:      d.Note,
		Timestamp: d.Timestamp,
		Counterparty: domain.Counterparty{
			Name: d.CounterpartyName,
			Type: domain.CounterpartyType(d.CounterpartyType),
			VPA:  d.VPA,
		},
		CardLast4:        d.CardLast4,
		Instrument:       domain.Instrument(d.Instrument),
		Category:         d.Category,
		Subcategory:      d.Subcategory,
		Tags:             d.Tags,
		IsSubscription:   d.IsSubscription,
		SubscriptionName: d.SubscriptionName,
		IsHiddenCharge:   d.IsHiddenCharge,
		Provenance: domain.Provenance{
			MessageID: d.SourceMessageID,
			Snippet:   d.SourceSnippet,
		},
		CreatedAt: d.CreatedAt,
	}, nil
}

var _ TransactionStore = (*FirestoreStore)(nil)
