package extract

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/trackmint/mailledger/internal/domain"
)

// BuildIdentity derives the deterministic document id for a transaction
// from (bank, amount, timestamp, direction). The same tuple always yields
// the same id regardless of which raw message produced it, which is what
// makes re-ingestion idempotent when the transport re-delivers the same
// underlying transaction with different message formatting. The amount is
// fixed to two decimals so "1250" and "1250.00" hash identically.
//
// The hash is deliberately non-cryptographic; collisions between genuinely
// different transactions sharing the full tuple are accepted as a known
// low-probability risk. Salting with the message id would defeat the
// cross-fetch dedup this id exists for.
func BuildIdentity(bankCode string, amount decimal.Decimal, ts time.Time, dir domain.Direction) string {
	if bankCode == "" {
		bankCode = "UNK"
	}
	key := fmt.Sprintf("%s|%s|%d|%s", bankCode, amount.StringFixed(2), ts.UnixMilli(), dir)

	var h int32
	for _, c := range key {
		h = (h << 5) - h + c
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return fmt.Sprintf("txn_%x", v)
}
