package extract

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trackmint/mailledger/internal/domain"
)

// subscriptionKeywords are brands that bill on a recurring basis. Matched
// case-insensitively as substrings; the matched keyword, title-cased,
// becomes the subscription name.
var subscriptionKeywords = []string{
	"netflix", "spotify", "hotstar", "prime video", "youtube premium",
	"sonyliv", "zee5", "jiosaavn", "gaana", "audible",
	"icloud", "google one", "aws", "azure", "github", "openai",
	"cult.fit", "times prime", "linkedin premium",
}

// hiddenChargeKeywords flag fees that banks tuck into statements.
var hiddenChargeKeywords = []string{
	"forex markup", "convenience fee", "surcharge", "late fee",
	"annual fee", "atm fee", "processing fee", "service charge",
	"penal charge", "markup fee", "joining fee", "overlimit fee",
}

// Signals are the subscription/hidden-charge flags for one message. They
// are independent of category classification and drive user-facing alerts
// only; both may be true at once.
type Signals struct {
	IsSubscription   bool
	SubscriptionName string
	IsHiddenCharge   bool
}

// AnalyzeTransaction scans the text for recurring-subscription and
// hidden-fee patterns.
func AnalyzeTransaction(text string) Signals {
	lower := strings.ToLower(text)

	var s Signals
	for _, kw := range subscriptionKeywords {
		if strings.Contains(lower, kw) {
			s.IsSubscription = true
			s.SubscriptionName = titleCase(kw)
			break
		}
	}
	s.IsHiddenCharge = hasAny(lower, hiddenChargeKeywords)
	return s
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// RecurringSubscription is one detected subscription cluster projected
// forward. The projection assumes strict monthly billing; it is an
// estimate, not a guarantee.
type RecurringSubscription struct {
	Name          string
	Amount        decimal.Decimal
	LastCharged   time.Time
	NextDue       time.Time
	DaysRemaining int
}

// DetectSubscriptions clusters stored transactions by subscription keyword,
// keeps the most recent transaction per cluster, and projects the next due
// date one month after it. DaysRemaining is computed against now and may be
// negative when a charge looks overdue.
func DetectSubscriptions(txs []domain.PersistedTransaction, now time.Time) []RecurringSubscription {
	latest := make(map[string]domain.PersistedTransaction)
	order := make([]string, 0)

	for _, tx := range txs {
		corpus := strings.ToLower(tx.SubscriptionName + " " + tx.Counterparty.Name + " " + tx.Note)
		for _, kw := range subscriptionKeywords {
			if !strings.Contains(corpus, kw) {
				continue
			}
			prev, seen := latest[kw]
			if !seen {
				order = append(order, kw)
			}
			if !seen || tx.Timestamp.After(prev.Timestamp) {
				latest[kw] = tx
			}
			break
		}
	}

	result := make([]RecurringSubscription, 0, len(order))
	for _, kw := range order {
		tx := latest[kw]
		nextDue := tx.Timestamp.AddDate(0, 1, 0)
		result = append(result, RecurringSubscription{
			Name:          titleCase(kw),
			Amount:        tx.Amount,
			LastCharged:   tx.Timestamp,
			NextDue:       nextDue,
			DaysRemaining: int(nextDue.Sub(now).Hours() / 24),
		})
	}
	return result
}
