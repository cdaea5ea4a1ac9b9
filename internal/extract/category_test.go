package extract

import (
	"testing"
)

func TestCategorize_BrandMatch(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		merchant    string
		wantCat     string
		wantSubcat  string
	}{
		{"swiggy in text", "Rs. 1250 debited, paid to SWIGGY", "SWIGGY", "Food", "food delivery"},
		{"netflix subscription", "Rs 199 - Netflix subscription auto-debited", "", "Entertainment", "OTT services"},
		{"brand only in merchant name", "Rs. 350 debited from your account", "ZOMATO", "Food", "food delivery"},
		{"irctc travel", "INR 1540 paid to IRCTC for booking", "", "Travel", "train tickets"},
		{"zerodha investment", "Rs. 5000 transferred to ZERODHA", "", "Investments", "stock broking"},
		{"fuel brand", "Rs. 2000 spent at INDIAN OIL", "", "Fuel", "petrol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.text, tt.merchant)
			if got.Category != tt.wantCat || got.Subcategory != tt.wantSubcat {
				t.Errorf("Categorize() = %s/%s, want %s/%s", got.Category, got.Subcategory, tt.wantCat, tt.wantSubcat)
			}
			if got.Confidence != 1.0 {
				t.Errorf("brand match confidence = %v, want 1.0", got.Confidence)
			}
			if len(got.Tags) == 0 {
				t.Error("brand match should carry tags")
			}
		})
	}
}

func TestCategorize_Heuristics(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantCat        string
		wantSubcat     string
		wantConfidence float64
	}{
		{"subscription cue", "Your e-mandate renewal of Rs. 499 processed", "Subscriptions", "digital services", 0.9},
		{"dining cue", "Rs. 850 spent at The Corner restaurant", "Food", "dining", 0.75},
		{"cab cue", "Rs. 230 paid for your ride", "Travel", "cab rides", 0.8},
		{"generic travel cue", "Rs. 4300 charged for flight booking", "Travel", "travel", 0.7},
		{"grocery cue", "Rs. 1200 spent at the supermarket", "Groceries", "groceries", 0.75},
		{"fuel cue", "Rs. 1800 spent on petrol", "Fuel", "petrol", 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Categorize(tt.text, "")
			if got.Category != tt.wantCat || got.Subcategory != tt.wantSubcat {
				t.Errorf("Categorize(%q) = %s/%s, want %s/%s", tt.text, got.Category, got.Subcategory, tt.wantCat, tt.wantSubcat)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestCategorize_Default(t *testing.T) {
	got := Categorize("You have received INR 50000.00 credited to your account. Salary credit from ACME CORP", "ACME CORP")
	if got.Category != "Others" || got.Subcategory != "others" {
		t.Errorf("default = %s/%s, want Others/others", got.Category, got.Subcategory)
	}
	if got.Confidence != 0.1 {
		t.Errorf("default confidence = %v, want 0.1", got.Confidence)
	}
	if len(got.Tags) != 0 {
		t.Errorf("default tags = %v, want empty", got.Tags)
	}
}

// A brand hit must short-circuit the heuristics: the text also contains a
// subscription cue, but the brand's 1.0 confidence must win.
func TestCategorize_BrandBeatsHeuristics(t *testing.T) {
	got := Categorize("Netflix subscription renewal of Rs. 199 auto-debited", "")
	if got.Category != "Entertainment" || got.Confidence != 1.0 {
		t.Errorf("got %s confidence %v, want Entertainment at 1.0", got.Category, got.Confidence)
	}
}

// Every dictionary entry must map to a usable category; the tables are data
// and this keeps them honest as they grow.
func TestBrandTableIntegrity(t *testing.T) {
	seen := make(map[string]bool)
	for _, b := range brandTable {
		if b.keyword == "" || b.category == "" || b.subcategory == "" {
			t.Errorf("brand entry %+v has empty keyword or category", b)
		}
		if b.keyword != "" && seen[b.keyword] {
			t.Errorf("duplicate brand keyword %q", b.keyword)
		}
		seen[b.keyword] = true
	}
	for _, r := range heuristicRules {
		if len(r.keywords) == 0 || r.category == "" || r.subcategory == "" {
			t.Errorf("heuristic rule %+v incomplete", r)
		}
		if r.confidence <= 0 || r.confidence >= 1 {
			t.Errorf("heuristic rule %s confidence %v out of (0,1)", r.category, r.confidence)
		}
	}
}
