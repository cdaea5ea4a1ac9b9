package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/trackmint/mailledger/internal/domain"
)

// ErrUnauthorized means the transport rejected the access credential. It is
// terminal for the current sync run: the caller must prompt the user to
// re-authorize, not retry.
var ErrUnauthorized = errors.New("mail: unauthorized")

// Session is the explicit authorization state for one sync run. There is no
// hidden global token cache; the orchestrator checks expiry before each
// batch and returns ErrUnauthorized instead of failing mid-run.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Expired reports whether the session cannot be used at the given instant.
// A zero ExpiresAt means the provider did not report an expiry.
func (s Session) Expired(now time.Time) bool {
	if s.Token == "" {
		return true
	}
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Query describes one mailbox search: a keyword OR-list over subject/body,
// a recency window, and the standard exclusions for spam/trash/promotions.
type Query struct {
	Keywords      []string
	NewerThanDays int
	PageSize      int64
}

// DefaultKeywords are the terms transaction notifications reliably contain.
var DefaultKeywords = []string{
	"debited", "credited", "transaction", "payment", "spent", "withdrawn", "UPI",
}

// String renders the query in Gmail search syntax.
func (q Query) String() string {
	keywords := q.Keywords
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	parts := []string{"(" + strings.Join(keywords, " OR ") + ")"}
	if q.NewerThanDays > 0 {
		parts = append(parts, fmt.Sprintf("newer_than:%dd", q.NewerThanDays))
	}
	parts = append(parts, "-in:spam", "-in:trash", "-category:promotions")
	return strings.Join(parts, " ")
}

// Page is one page of search results. NextToken is "" on the last page.
type Page struct {
	IDs       []string
	NextToken string
}

// Client is the search-and-fetch contract the orchestrator consumes. Page
// tokens are sequential state from the remote transport, so Search is
// called serially; Fetch may be called concurrently for ids of one page.
type Client interface {
	Search(ctx context.Context, q Query, pageToken string) (Page, error)
	Fetch(ctx context.Context, id string) (*domain.RawMessage, error)
}
