package extract

import (
	"strings"

	"github.com/trackmint/mailledger/internal/domain"
)

var debitCues = []string{"debited", "spent", "paid", "purchase", "withdrawn"}

var creditCues = []string{"credited", "received", "salary", "refund"}

// InferDirection decides debit vs credit from verb cues. If both cue sets
// match (e.g. a consolidated statement mentioning debits and credits) or
// neither matches, the result is DirectionNone and the message is dropped.
// Ambiguity is never guessed.
func InferDirection(text string) domain.Direction {
	lower := strings.ToLower(text)

	debit := hasAny(lower, debitCues)
	credit := hasAny(lower, creditCues)

	switch {
	case debit && !credit:
		return domain.DirectionDebit
	case credit && !debit:
		return domain.DirectionCredit
	default:
		return domain.DirectionNone
	}
}
