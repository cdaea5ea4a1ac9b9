package extract

import (
	"testing"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    string
		wantOK  bool
	}{
		{"rupee symbol", "₹499 debited", "499", true},
		{"rs with dot", "Rs. 1,250.00 debited from your account", "1250", true},
		{"rs without dot", "Rs 199 - Netflix subscription auto-debited", "199", true},
		{"inr prefix", "You have received INR 50000.00 credited", "50000", true},
		{"thousands separators", "INR 1,23,456.78 transferred", "123456.78", true},
		{"first match wins over later balance", "Rs. 250 spent. Available balance Rs. 9,750.00", "250", true},
		{"zero amount skipped for later positive", "Rs. 0.00 fee, Rs. 45 charged", "45", true},
		{"all zero", "Rs. 0 due", "", false},
		{"no currency prefix", "Paid 500 to store", "", false},
		{"no number after prefix", "Rs. was debited", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Amount(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("Amount(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.String() != tt.want {
				t.Errorf("Amount(%q) = %s, want %s", tt.text, got.String(), tt.want)
			}
			if !got.IsPositive() {
				t.Errorf("Amount(%q) returned non-positive %s", tt.text, got.String())
			}
		})
	}
}
