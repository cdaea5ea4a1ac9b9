package extract

import (
	"strings"

	"github.com/trackmint/mailledger/internal/domain"
)

// brandEntry maps a known brand substring to its category. The table is
// ordered; the first entry whose keyword appears in the combined
// (text + merchant name) string wins with confidence 1.0.
type brandEntry struct {
	keyword     string
	category    string
	subcategory string
	tags        []string
}

var brandTable = []brandEntry{
	// Food & dining
	{"zomato", "Food", "food delivery", []string{"food", "delivery"}},
	{"swiggy", "Food", "food delivery", []string{"food", "delivery"}},
	{"dominos", "Food", "dining", []string{"food", "pizza"}},
	{"mcdonald", "Food", "dining", []string{"food", "fast food"}},
	{"kfc", "Food", "dining", []string{"food", "fast food"}},
	{"pizza hut", "Food", "dining", []string{"food", "pizza"}},
	{"starbucks", "Food", "cafe", []string{"food", "coffee"}},
	{"eatsure", "Food", "food delivery", []string{"food", "delivery"}},

	// Groceries
	{"blinkit", "Groceries", "quick commerce", []string{"grocery", "quick commerce"}},
	{"zepto", "Groceries", "quick commerce", []string{"grocery", "quick commerce"}},
	{"bigbasket", "Groceries", "online grocery", []string{"grocery"}},
	{"instamart", "Groceries", "quick commerce", []string{"grocery", "quick commerce"}},
	{"dmart", "Groceries", "supermarket", []string{"grocery"}},

	// Entertainment & subscriptions
	{"netflix", "Entertainment", "OTT services", []string{"subscription", "streaming"}},
	{"spotify", "Entertainment", "music streaming", []string{"subscription", "music"}},
	{"hotstar", "Entertainment", "OTT services", []string{"subscription", "streaming"}},
	{"prime video", "Entertainment", "OTT services", []string{"subscription", "streaming"}},
	{"sonyliv", "Entertainment", "OTT services", []string{"subscription", "streaming"}},
	{"zee5", "Entertainment", "OTT services", []string{"subscription", "streaming"}},
	{"bookmyshow", "Entertainment", "movies & events", []string{"movies"}},
	{"youtube premium", "Entertainment", "OTT services", []string{"subscription", "streaming"}},

	// Travel
	{"uber", "Travel", "cab rides", []string{"travel", "cab"}},
	{"ola", "Travel", "cab rides", []string{"travel", "cab"}},
	{"rapido", "Travel", "cab rides", []string{"travel", "bike taxi"}},
	{"irctc", "Travel", "train tickets", []string{"travel", "train"}},
	{"makemytrip", "Travel", "bookings", []string{"travel"}},
	{"goibibo", "Travel", "bookings", []string{"travel"}},
	{"cleartrip", "Travel", "bookings", []string{"travel"}},
	{"redbus", "Travel", "bus tickets", []string{"travel", "bus"}},
	{"indigo", "Travel", "flights", []string{"travel", "flight"}},
	{"air india", "Travel", "flights", []string{"travel", "flight"}},

	// Shopping
	{"amazon", "Shopping", "online shopping", []string{"shopping"}},
	{"flipkart", "Shopping", "online shopping", []string{"shopping"}},
	{"myntra", "Shopping", "fashion", []string{"shopping", "fashion"}},
	{"ajio", "Shopping", "fashion", []string{"shopping", "fashion"}},
	{"nykaa", "Shopping", "beauty", []string{"shopping", "beauty"}},
	{"meesho", "Shopping", "online shopping", []string{"shopping"}},

	// Utilities & telecom
	{"jio", "Utilities", "mobile recharge", []string{"telecom"}},
	{"airtel", "Utilities", "mobile recharge", []string{"telecom"}},
	{"vodafone", "Utilities", "mobile recharge", []string{"telecom"}},
	{"bsnl", "Utilities", "mobile recharge", []string{"telecom"}},
	{"tata power", "Utilities", "electricity", []string{"utilities"}},

	// Investments
	{"zerodha", "Investments", "stock broking", []string{"investment", "stocks"}},
	{"groww", "Investments", "stock broking", []string{"investment", "stocks"}},
	{"upstox", "Investments", "stock broking", []string{"investment", "stocks"}},
	{"kuvera", "Investments", "mutual funds", []string{"investment", "mutual funds"}},

	// Health
	{"pharmeasy", "Health", "pharmacy", []string{"health", "medicine"}},
	{"netmeds", "Health", "pharmacy", []string{"health", "medicine"}},
	{"1mg", "Health", "pharmacy", []string{"health", "medicine"}},
	{"apollo", "Health", "pharmacy", []string{"health"}},
	{"cult.fit", "Health", "fitness", []string{"health", "fitness"}},
	{"practo", "Health", "consultation", []string{"health"}},

	// Fuel
	{"indian oil", "Fuel", "petrol", []string{"fuel"}},
	{"indianoil", "Fuel", "petrol", []string{"fuel"}},
	{"hpcl", "Fuel", "petrol", []string{"fuel"}},
	{"bpcl", "Fuel", "petrol", []string{"fuel"}},

	// Digital services
	{"icloud", "Subscriptions", "cloud storage", []string{"subscription", "cloud"}},
	{"google one", "Subscriptions", "cloud storage", []string{"subscription", "cloud"}},
	{"aws", "Subscriptions", "cloud services", []string{"subscription", "cloud"}},
	{"github", "Subscriptions", "developer tools", []string{"subscription", "tools"}},
	{"openai", "Subscriptions", "ai services", []string{"subscription", "ai"}},

	// Education
	{"udemy", "Education", "online courses", []string{"education"}},
	{"coursera", "Education", "online courses", []string{"education"}},
	{"unacademy", "Education", "online courses", []string{"education"}},
}

// heuristicRule is one keyword-pattern fallback tried after the brand
// table. Rules are evaluated top to bottom, first hit wins; adding or
// reordering a heuristic is a data change, not a control-flow change.
type heuristicRule struct {
	keywords    []string
	category    string
	subcategory string
	confidence  float64
	tags        []string
}

var heuristicRules = []heuristicRule{
	{[]string{"subscription", "renewal", "auto-debit", "autopay", "e-mandate", "recurring"},
		"Subscriptions", "digital services", 0.9, []string{"subscription"}},
	{[]string{"restaurant", "cafe", "dining", "eatery", "food order"},
		"Food", "dining", 0.75, []string{"food"}},
	{[]string{"cab", "taxi", "ride"},
		"Travel", "cab rides", 0.8, []string{"travel", "cab"}},
	{[]string{"flight", "hotel", "travel", "bus ticket", "train ticket"},
		"Travel", "travel", 0.7, []string{"travel"}},
	{[]string{"grocery", "groceries", "supermarket", "kirana", "mart"},
		"Groceries", "groceries", 0.75, []string{"grocery"}},
	{[]string{"petrol", "diesel", "fuel", "filling station"},
		"Fuel", "petrol", 0.9, []string{"fuel"}},
}

// Categorize maps a transaction to a category. Stage 1 is the brand
// dictionary over text + merchant name (confidence 1.0); stage 2 the
// ordered lexical heuristics; stage 3 the default Others bucket whose low
// confidence tells consumers the engine guessed nothing meaningful.
func Categorize(text, merchantName string) domain.CategoryResult {
	corpus := strings.ToLower(text + " " + merchantName)

	for _, b := range brandTable {
		if strings.Contains(corpus, b.keyword) {
			return domain.CategoryResult{
				Category:    b.category,
				Subcategory: b.subcategory,
				Confidence:  1.0,
				Tags:        append([]string(nil), b.tags...),
			}
		}
	}

	lower := strings.ToLower(text)
	for _, r := range heuristicRules {
		if hasAny(lower, r.keywords) {
			return domain.CategoryResult{
				Category:    r.category,
				Subcategory: r.subcategory,
				Confidence:  r.confidence,
				Tags:        append([]string(nil), r.tags...),
			}
		}
	}

	return domain.CategoryResult{Category: "Others", Subcategory: "others", Confidence: 0.1, Tags: []string{}}
}
