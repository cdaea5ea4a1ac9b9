package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trackmint/mailledger/internal/domain"
)

func TestBuildIdentity_Deterministic(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	amt := decimal.NewFromFloat(1250.00)

	first := BuildIdentity("HDFC", amt, ts, domain.DirectionDebit)
	for i := 0; i < 100; i++ {
		if got := BuildIdentity("HDFC", amt, ts, domain.DirectionDebit); got != first {
			t.Fatalf("identity not deterministic: %q vs %q", got, first)
		}
	}
}

func TestBuildIdentity_FormatInsensitive(t *testing.T) {
	ts := time.Now()
	// The same underlying amount parsed from "1250" and "1,250.00" must
	// produce the same identity.
	a, _ := decimal.NewFromString("1250")
	b, _ := decimal.NewFromString("1250.00")

	if BuildIdentity("HDFC", a, ts, domain.DirectionDebit) != BuildIdentity("HDFC", b, ts, domain.DirectionDebit) {
		t.Error("identities differ for equal amounts with different representations")
	}
}

func TestBuildIdentity_DistinguishesTuples(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	amt := decimal.NewFromInt(500)

	base := BuildIdentity("HDFC", amt, ts, domain.DirectionDebit)

	variants := []string{
		BuildIdentity("ICICI", amt, ts, domain.DirectionDebit),
		BuildIdentity("HDFC", decimal.NewFromInt(501), ts, domain.DirectionDebit),
		BuildIdentity("HDFC", amt, ts.Add(time.Millisecond), domain.DirectionDebit),
		BuildIdentity("HDFC", amt, ts, domain.DirectionCredit),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collided with base identity %q", i, base)
		}
	}
}

func TestBuildIdentity_UnresolvedBank(t *testing.T) {
	ts := time.Now()
	amt := decimal.NewFromInt(100)

	if BuildIdentity("", amt, ts, domain.DirectionDebit) != BuildIdentity("UNK", amt, ts, domain.DirectionDebit) {
		t.Error("empty bank code should hash as UNK")
	}
}

func TestBuildIdentity_StorageSafe(t *testing.T) {
	id := BuildIdentity("HDFC", decimal.NewFromInt(1), time.Unix(0, 0), domain.DirectionDebit)
	if !strings.HasPrefix(id, "txn_") {
		t.Errorf("identity %q missing txn_ prefix", id)
	}
	if strings.ContainsAny(id, "/ \t\n-") {
		t.Errorf("identity %q contains unsafe characters", id)
	}
}
