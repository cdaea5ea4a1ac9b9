package extract

import (
	"regexp"
	"strings"

	"github.com/trackmint/mailledger/internal/domain"
)

// Most inbox mail is not a transaction, and unknown senders are the
// dominant source of marketing false positives. The gate filters cheaply
// before the heavier extractors run: a currency marker and a transaction
// verb are always required, and untrusted senders additionally need a
// reference marker (UTR/ref/txn/account) in the text.

// Word boundaries keep "rs" from matching inside words like "offers".
var currencyPattern = regexp.MustCompile(`(?i)₹|\binr\b|\brs\.?(?:\s|[0-9])`)

var transactionVerbs = []string{
	"debited", "credited", "spent", "paid", "purchase", "charged", "withdrawn",
}

// strongCreditVerbs back the looser income gate. Under-detecting income is
// considered worse than the occasional false positive.
var strongCreditVerbs = []string{"credited", "received", "salary", "payout"}

var referenceMarkers = []string{"utr", "ref", "txn", "account", "a/c"}

// trustedGatewayDomains is an allowlist of payment processors and card
// networks whose mail gets the cheaper bar even when no bank profile
// matches the message.
var trustedGatewayDomains = []string{
	"razorpay.com",
	"payu.in",
	"billdesk.com",
	"ccavenue.com",
	"paytm.com",
	"phonepe.com",
	"cashfree.com",
	"visa.com",
	"mastercard.com",
	"americanexpress.com",
	"npci.org.in",
}

func hasAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func hasCurrencyMarker(text string) bool {
	return currencyPattern.MatchString(text)
}

// PassesTransactionGate reports whether the message plausibly describes a
// financial transaction. senderDomain is the domain of the From address;
// bank is the issuer detected for this message.
func PassesTransactionGate(text, senderDomain string, bank domain.DetectedBank) bool {
	lower := strings.ToLower(text)

	if !hasCurrencyMarker(lower) || !hasAny(lower, transactionVerbs) {
		return false
	}
	if bank.Major() {
		return true
	}
	for _, d := range trustedGatewayDomains {
		if senderDomain == d || strings.HasSuffix(senderDomain, "."+d) {
			return true
		}
	}
	return hasAny(lower, referenceMarkers)
}

// PassesIncomeGate is the looser credit-only gate: a currency marker plus a
// strong credit verb is enough regardless of sender trust.
func PassesIncomeGate(text string) bool {
	lower := strings.ToLower(text)
	return hasCurrencyMarker(lower) && hasAny(lower, strongCreditVerbs)
}
