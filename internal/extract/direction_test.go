package extract

import (
	"testing"

	"github.com/trackmint/mailledger/internal/domain"
)

func TestInferDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Direction
	}{
		{"debited", "Rs. 500 debited from your account", domain.DirectionDebit},
		{"spent", "You spent INR 300 at a store", domain.DirectionDebit},
		{"withdrawn", "₹2000 withdrawn at ATM", domain.DirectionDebit},
		{"credited", "INR 50000 credited to your account", domain.DirectionCredit},
		{"refund", "Your refund of Rs. 120 is on its way", domain.DirectionCredit},
		{"salary", "Salary of INR 80000 received", domain.DirectionCredit},
		{"both cue sets ambiguous", "Rs. 100 debited and Rs. 100 credited in your statement", domain.DirectionNone},
		{"neither cue set", "Your account statement is ready", domain.DirectionNone},
		{"empty", "", domain.DirectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferDirection(tt.text); got != tt.want {
				t.Errorf("InferDirection(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

// A non-null direction must never be returned when both cue sets match.
func TestInferDirection_Exclusive(t *testing.T) {
	ambiguous := []string{
		"debited credited",
		"Amount paid and refund issued",
		"salary credited after loan amount withdrawn",
	}
	for _, text := range ambiguous {
		if got := InferDirection(text); got != domain.DirectionNone {
			t.Errorf("InferDirection(%q) = %q, want none for ambiguous text", text, got)
		}
	}
}
