package extract

import (
	"strings"

	"github.com/trackmint/mailledger/internal/domain"
)

// bankProfile is one curated issuer: its sending domains and the phrases
// its notification headers use. Table order encodes priority where hint
// phrases overlap.
type bankProfile struct {
	code    string
	name    string
	domains []string
	hints   []string
}

var bankProfiles = []bankProfile{
	{"HDFC", "HDFC Bank", []string{"hdfcbank.net", "hdfcbank.com"}, []string{"hdfc bank", "hdfcbank"}},
	{"ICICI", "ICICI Bank", []string{"icicibank.com"}, []string{"icici bank", "icicibank"}},
	{"SBI", "State Bank of India", []string{"sbi.co.in", "onlinesbi.sbi"}, []string{"state bank of india", "sbi card", "onlinesbi"}},
	{"AXIS", "Axis Bank", []string{"axisbank.com"}, []string{"axis bank", "axisbank"}},
	{"KOTAK", "Kotak Mahindra Bank", []string{"kotak.com"}, []string{"kotak mahindra", "kotak bank"}},
	{"IDFC", "IDFC FIRST Bank", []string{"idfcfirstbank.com"}, []string{"idfc first"}},
	{"YES", "Yes Bank", []string{"yesbank.in"}, []string{"yes bank"}},
	{"INDUSIND", "IndusInd Bank", []string{"indusind.com"}, []string{"indusind"}},
	{"PNB", "Punjab National Bank", []string{"pnb.co.in"}, []string{"punjab national bank"}},
	{"BOB", "Bank of Baroda", []string{"bankofbaroda.co.in", "bankofbaroda.com"}, []string{"bank of baroda"}},
	{"CANARA", "Canara Bank", []string{"canarabank.com"}, []string{"canara bank"}},
	{"UNION", "Union Bank of India", []string{"unionbankofindia.bank.in", "unionbankofindia.co.in"}, []string{"union bank of india"}},
	{"FEDERAL", "Federal Bank", []string{"federalbank.co.in"}, []string{"federal bank"}},
	{"RBL", "RBL Bank", []string{"rblbank.com"}, []string{"rbl bank"}},
	{"AU", "AU Small Finance Bank", []string{"aubank.in"}, []string{"au small finance"}},
	{"CITI", "Citibank", []string{"citibank.co.in", "citi.com"}, []string{"citibank"}},
	{"HSBC", "HSBC India", []string{"hsbc.co.in"}, []string{"hsbc"}},
	{"SCB", "Standard Chartered", []string{"sc.com"}, []string{"standard chartered"}},
	{"AMEX", "American Express", []string{"americanexpress.com", "aexp.com"}, []string{"american express"}},
	{"PAYTMB", "Paytm Payments Bank", []string{"paytmbank.com"}, []string{"paytm payments bank"}},
}

// DetectBank identifies which institution sent the notification. It matches
// the sender's email domain against each profile's known domains, then
// looks for header-hint phrases in the combined lowercase corpus of From,
// Subject and body. First match wins. This is a lookup, not fuzzy matching;
// unlisted banks come back as unknown tier rather than a guess.
func DetectBank(from, subject, body string) domain.DetectedBank {
	corpus := strings.ToLower(from + " " + subject + " " + body)
	senderDomain := SenderDomain(from)

	for _, p := range bankProfiles {
		for _, d := range p.domains {
			if senderDomain == d || strings.HasSuffix(senderDomain, "."+d) {
				return domain.DetectedBank{Code: p.code, Name: p.name, Tier: domain.BankTierMajor}
			}
		}
		for _, h := range p.hints {
			if strings.Contains(corpus, h) {
				return domain.DetectedBank{Code: p.code, Name: p.name, Tier: domain.BankTierMajor}
			}
		}
	}
	return domain.DetectedBank{Tier: domain.BankTierUnknown}
}

// SenderDomain returns the lowercased domain of a raw From header, or ""
// when the header has no parseable address.
func SenderDomain(from string) string {
	addr := from
	if start := strings.LastIndex(addr, "<"); start >= 0 {
		if end := strings.Index(addr[start:], ">"); end > 0 {
			addr = addr[start+1 : start+end]
		}
	}
	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(addr[at+1:]))
}
