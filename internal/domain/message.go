package domain

import (
	"strings"
	"time"
)

// RawMessage is one email as fetched from the mail transport: the headers
// we care about, the decoded plain-text body, and the provider-assigned id.
// It is immutable input; the extraction engine never writes back to it.
type RawMessage struct {
	ID        string    // provider-assigned message id
	From      string    // raw From header, e.g. `"HDFC Bank" <alerts@hdfcbank.net>`
	Subject   string
	Body      string    // decoded plain-text body
	Snippet   string    // short provider-generated preview
	Timestamp time.Time // provider internal date
}

// Text returns the subject and body joined, which is what the extraction
// heuristics scan. The subject frequently carries the amount and verb when
// the body is mostly boilerplate.
func (m *RawMessage) Text() string {
	return m.Subject + "\n" + m.Body
}

// FirstLine returns the first non-empty line of the body truncated to max
// runes. Used as the human-readable note on stored transactions.
func (m *RawMessage) FirstLine(max int) string {
	for _, line := range strings.Split(m.Body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		if len(runes) > max {
			return string(runes[:max])
		}
		return line
	}
	return ""
}
