package mail

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	gmail "google.golang.org/api/gmail/v1"
)

func TestSessionExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		session Session
		want    bool
	}{
		{"valid", Session{Token: "tok", ExpiresAt: now.Add(time.Hour)}, false},
		{"expired", Session{Token: "tok", ExpiresAt: now.Add(-time.Minute)}, true},
		{"no token", Session{ExpiresAt: now.Add(time.Hour)}, true},
		{"no expiry reported", Session{Token: "tok"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.Expired(now); got != tt.want {
				t.Errorf("Expired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQueryString(t *testing.T) {
	q := Query{Keywords: []string{"debited", "credited"}, NewerThanDays: 7}
	got := q.String()

	for _, want := range []string{"(debited OR credited)", "newer_than:7d", "-in:spam", "-in:trash", "-category:promotions"} {
		if !strings.Contains(got, want) {
			t.Errorf("query %q missing %q", got, want)
		}
	}
}

func TestQueryString_Defaults(t *testing.T) {
	got := Query{}.String()
	if !strings.Contains(got, "debited OR credited") {
		t.Errorf("default query %q should use default keywords", got)
	}
	if strings.Contains(got, "newer_than") {
		t.Errorf("query %q should omit window when unset", got)
	}
}

func TestExtractPlainText(t *testing.T) {
	encode := func(s string) string {
		return base64.URLEncoding.EncodeToString([]byte(s))
	}

	tests := []struct {
		name string
		part *gmail.MessagePart
		want string
	}{
		{
			name: "single part plain text",
			part: &gmail.MessagePart{
				MimeType: "text/plain",
				Body:     &gmail.MessagePartBody{Data: encode("Rs. 500 debited")},
			},
			want: "Rs. 500 debited",
		},
		{
			name: "multipart picks plain over html",
			part: &gmail.MessagePart{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: encode("<b>html</b>")}},
					{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: encode("plain body")}},
				},
			},
			want: "plain body",
		},
		{
			name: "nested multipart",
			part: &gmail.MessagePart{
				MimeType: "multipart/mixed",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "multipart/alternative",
						Parts: []*gmail.MessagePart{
							{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: encode("nested")}},
						},
					},
				},
			},
			want: "nested",
		},
		{
			name: "raw url encoding without padding",
			part: &gmail.MessagePart{
				MimeType: "text/plain",
				Body:     &gmail.MessagePartBody{Data: base64.RawURLEncoding.EncodeToString([]byte("unpadded"))},
			},
			want: "unpadded",
		},
		{
			name: "nil part",
			part: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractPlainText(tt.part); got != tt.want {
				t.Errorf("extractPlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}
