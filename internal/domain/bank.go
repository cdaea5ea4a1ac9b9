package domain

// BankTier ranks how confidently the issuer was identified. Major means a
// curated bank profile matched; unknown means no profile matched and the
// gate should demand extra evidence before trusting the message.
type BankTier string

const (
	BankTierMajor   BankTier = "major"
	BankTierUnknown BankTier = "unknown"
)

// DetectedBank is the institution a notification came from. Code and Name
// are empty for unknown-tier results; ambiguous or unlisted banks are left
// unresolved rather than guessed.
type DetectedBank struct {
	Code string // short issuer code, e.g. "HDFC"
	Name string // display name, e.g. "HDFC Bank"
	Tier BankTier
}

// Major reports whether the bank was recognized from the curated list.
func (b DetectedBank) Major() bool {
	return b.Tier == BankTierMajor
}

// CodeOrUnknown returns the issuer code, or "UNK" when unresolved. This is
// the form used when building transaction identities.
func (b DetectedBank) CodeOrUnknown() string {
	if b.Code == "" {
		return "UNK"
	}
	return b.Code
}
