package extract

import (
	"regexp"
	"strings"

	"github.com/trackmint/mailledger/internal/domain"
)

var (
	// UPI-style handle: alphanumeric/.-_ local part, alphabetic provider.
	vpaPattern = regexp.MustCompile(`\b([a-zA-Z0-9][a-zA-Z0-9._-]*@[a-zA-Z]{2,})\b`)

	// Debit counterparty patterns, tried in order. Labelled forms first so
	// "Beneficiary: X" is not swallowed by the generic "to X" rule.
	debitNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:beneficiary|payee)\s*[:\-]\s*([A-Za-z0-9][A-Za-z0-9 .&@'_-]{1,60})`),
		regexp.MustCompile(`(?i)\bpaid\s+to\s+([A-Za-z0-9][A-Za-z0-9 .&@'_-]{1,60})`),
		regexp.MustCompile(`(?i)\b(?:to|at|towards)\s+([A-Za-z0-9][A-Za-z0-9 .&@'_-]{1,60})`),
	}

	creditNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:from|by)\s+([A-Za-z0-9][A-Za-z0-9 .&@'_-]{1,60})`),
	}

	// Trailing clauses like "on 12-03-2025" or "via UPI" describe the
	// channel, not the name.
	trailingClausePattern = regexp.MustCompile(`(?i)\s+(?:on|via|using|through)\s+.*$`)

	leadingFillerPattern = regexp.MustCompile(`(?i)^(?:for|the|a|an)\s+`)

	bankNamePattern = regexp.MustCompile(`(?i)\b(?:bank|hdfc|icici|sbi|axis|kotak|pnb|canara|federal|indusind)\b`)

	cardLast4Pattern = regexp.MustCompile(`(?i)(?:ending(?:\s+in)?|x{2,}|\*{2,})\s*(\d{4})\b`)
)

const maxNameLen = 40

// Merchant extracts the counterparty the money moved to (debits) or from
// (credits), plus the UPI handle when one appears in the text. When no
// textual name is found but a handle was, the uppercased handle serves as
// the fallback name. Returns false when nothing at all can be derived.
func Merchant(text string, dir domain.Direction) (domain.Counterparty, bool) {
	vpa := ""
	if m := vpaPattern.FindStringSubmatch(text); m != nil {
		vpa = strings.ToLower(m[1])
	}

	patterns := debitNamePatterns
	if dir == domain.DirectionCredit {
		patterns = creditNamePatterns
	}

	name := ""
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			name = cleanName(m[1])
			if name != "" {
				break
			}
		}
	}

	// A handle with no surrounding text, or a name that is just the handle
	// itself, falls back to the uppercased handle.
	if vpa != "" && (name == "" || strings.EqualFold(name, vpa)) {
		name = strings.ToUpper(vpa)
	}
	if name == "" {
		return domain.Counterparty{}, false
	}

	return domain.Counterparty{Name: name, Type: counterpartyType(name, vpa, dir), VPA: vpa}, true
}

func cleanName(raw string) string {
	name := strings.Join(strings.Fields(raw), " ")
	name = trailingClausePattern.ReplaceAllString(name, "")
	name = leadingFillerPattern.ReplaceAllString(name, "")
	name = strings.Trim(name, " .-")
	if runes := []rune(name); len(runes) > maxNameLen {
		name = strings.TrimSpace(string(runes[:maxNameLen]))
	}
	return name
}

func counterpartyType(name, vpa string, dir domain.Direction) domain.CounterpartyType {
	if bankNamePattern.MatchString(name) {
		return domain.CounterpartyBank
	}
	if vpa != "" {
		return domain.CounterpartyPerson
	}
	// Salary-like credits usually name an employer, not a merchant.
	if dir == domain.DirectionCredit {
		return domain.CounterpartyEmployer
	}
	return domain.CounterpartyMerchant
}

// CardLast4 returns the last four card digits when the text mentions them
// ("ending 1234", "XXXX1234"), or "".
func CardLast4(text string) string {
	if m := cardLast4Pattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// InferInstrument picks the payment instrument from text cues. hasVPA marks
// that a UPI handle was already found elsewhere in the message.
func InferInstrument(text string, hasVPA bool) domain.Instrument {
	lower := strings.ToLower(text)
	switch {
	case hasVPA || strings.Contains(lower, "upi"):
		return domain.InstrumentUPI
	case strings.Contains(lower, "credit card"):
		return domain.InstrumentCreditCard
	case strings.Contains(lower, "debit card"):
		return domain.InstrumentDebitCard
	case strings.Contains(lower, "netbanking") || strings.Contains(lower, "net banking"):
		return domain.InstrumentNetBanking
	default:
		return domain.InstrumentNone
	}
}
