package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/trackmint/mailledger/internal/domain"
)

// GmailClient implements Client over the Gmail API.
type GmailClient struct {
	svc *gmail.Service
}

// NewGmailClient builds a client from an explicit session. The token is
// wrapped in a static source; refresh is the caller's concern, which is why
// the session carries its own expiry.
func NewGmailClient(ctx context.Context, session Session) (*GmailClient, error) {
	if session.Expired(time.Now()) {
		return nil, ErrUnauthorized
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: session.Token,
		Expiry:      session.ExpiresAt,
	})
	svc, err := gmail.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("gmail service: %w", err)
	}
	return &GmailClient{svc: svc}, nil
}

// Search lists message ids matching the query, one page at a time.
func (c *GmailClient) Search(ctx context.Context, q Query, pageToken string) (Page, error) {
	call := c.svc.Users.Messages.List("me").Q(q.String()).Context(ctx)
	if q.PageSize > 0 {
		call = call.MaxResults(q.PageSize)
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return Page{}, wrapTransportErr("search", err)
	}

	page := Page{NextToken: resp.NextPageToken}
	for _, m := range resp.Messages {
		page.IDs = append(page.IDs, m.Id)
	}
	return page, nil
}

// Fetch retrieves one message and decodes its headers and plain-text body.
func (c *GmailClient) Fetch(ctx context.Context, id string) (*domain.RawMessage, error) {
	msg, err := c.svc.Users.Messages.Get("me", id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, wrapTransportErr("fetch", err)
	}

	raw := &domain.RawMessage{
		ID:        msg.Id,
		Snippet:   msg.Snippet,
		Timestamp: time.UnixMilli(msg.InternalDate),
	}
	if msg.Payload != nil {
		for _, h := range msg.Payload.Headers {
			switch h.Name {
			case "From":
				raw.From = h.Value
			case "Subject":
				raw.Subject = h.Value
			}
		}
		raw.Body = extractPlainText(msg.Payload)
	}
	if raw.Body == "" {
		raw.Body = msg.Snippet
	}
	return raw, nil
}

// extractPlainText walks the MIME tree depth-first for the first text/plain
// part. Multipart containers carry the text in their children; single-part
// messages carry it directly in the payload body. When no plain part exists
// at all, the root body is decoded as-is so that senders who put everything
// on the root part still produce something scannable.
func extractPlainText(root *gmail.MessagePart) string {
	if root == nil {
		return ""
	}
	if text := findPlainPart(root); text != "" {
		return text
	}
	if root.Body != nil && root.Body.Data != "" {
		if decoded, err := decodeBody(root.Body.Data); err == nil {
			return decoded
		}
	}
	return ""
}

func findPlainPart(part *gmail.MessagePart) string {
	if strings.HasPrefix(part.MimeType, "text/plain") && part.Body != nil && part.Body.Data != "" {
		if decoded, err := decodeBody(part.Body.Data); err == nil {
			return decoded
		}
	}
	for _, child := range part.Parts {
		if text := findPlainPart(child); text != "" {
			return text
		}
	}
	return ""
}

func decodeBody(data string) (string, error) {
	b, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		b, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return "", fmt.Errorf("decode body: %w", err)
		}
	}
	return string(b), nil
}

func wrapTransportErr(op string, err error) error {
	if apiErr, ok := err.(*googleapi.Error); ok {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return fmt.Errorf("%s: %w", op, ErrUnauthorized)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

var _ Client = (*GmailClient)(nil)
