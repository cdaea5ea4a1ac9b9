package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the money-flow direction of a transaction as inferred from
// the message text. DirectionNone means the text was ambiguous or carried
// no directional cue; such messages are never persisted.
type Direction string

const (
	DirectionNone   Direction = ""
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// Kind is the closed set of transaction kinds this engine produces. The
// store boundary only accepts these values; free-form kind strings from
// other producers are not part of this engine's contract.
type Kind string

const (
	KindEmailDebit  Kind = "Email Debit"
	KindEmailCredit Kind = "Email Credit"
)

// KindFor maps a direction to its stored kind.
func KindFor(d Direction) Kind {
	if d == DirectionCredit {
		return KindEmailCredit
	}
	return KindEmailDebit
}

// Instrument is the payment instrument inferred from the message text.
type Instrument string

const (
	InstrumentNone       Instrument = ""
	InstrumentUPI        Instrument = "UPI"
	InstrumentCreditCard Instrument = "Credit Card"
	InstrumentDebitCard  Instrument = "Debit Card"
	InstrumentNetBanking Instrument = "NetBanking"
)

// CounterpartyType classifies who the money moved to or from.
type CounterpartyType string

const (
	CounterpartyUnknown  CounterpartyType = "unknown"
	CounterpartyMerchant CounterpartyType = "merchant"
	CounterpartyPerson   CounterpartyType = "person"
	CounterpartyBank     CounterpartyType = "bank"
	CounterpartyEmployer CounterpartyType = "employer"
)

// Counterparty is the extracted merchant/person/bank on the other side of
// the transaction. VPA is set when a UPI handle was found in the text.
type Counterparty struct {
	Name string
	Type CounterpartyType
	VPA  string
}

// CategoryResult is the output of the category classifier. Confidence 1.0
// means a brand-dictionary hit; low values signal that downstream
// consumers should not trust the guess.
type CategoryResult struct {
	Category    string
	Subcategory string
	Confidence  float64
	Tags        []string
}

// TransactionCandidate is the extraction engine's output for one message
// before persistence. A candidate with DirectionNone or a non-positive
// amount is rejected and never reaches the store.
type TransactionCandidate struct {
	Direction        Direction
	Amount           decimal.Decimal
	Counterparty     Counterparty
	CardLast4        string
	Instrument       Instrument
	Category         CategoryResult
	IsSubscription   bool
	SubscriptionName string
	IsHiddenCharge   bool
	Timestamp        time.Time
}

// Provenance links a stored transaction back to the message it came from.
type Provenance struct {
	MessageID string
	Snippet   string
}

// PersistedTransaction is a candidate plus its deterministic identity and
// provenance. Created once per unique (bank, amount, timestamp, direction)
// tuple; the engine never mutates or deletes it after creation. No two
// records produced by this engine share an ID.
type PersistedTransaction struct {
	ID   string
	Kind Kind

	Amount    decimal.Decimal
	BankCode  string // detected issuer code, or "" when the bank was unresolved
	Note      string // first body line, truncated
	Timestamp time.Time

	Counterparty     Counterparty
	CardLast4        string
	Instrument       Instrument
	Category         string
	Subcategory      string
	Tags             []string
	IsSubscription   bool
	SubscriptionName string
	IsHiddenCharge   bool

	Provenance Provenance
	CreatedAt  time.Time
}
