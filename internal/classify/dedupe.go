// Package classify deduplicates merged transactions and labels each one
// Unique, Inter-bank, or Reversed.
package classify

import (
	"strings"

	"github.com/bankmerge-dev/bankmerge/internal/model"
)

// Deduplicate drops exact duplicates, keeping the first occurrence in
// input order. Two transactions are duplicates only when account number,
// date, narration, withdrawal, deposit, and balance all match exactly;
// overlapping statement periods across files are the expected cause.
func Deduplicate(txns []model.Transaction) (kept []model.Transaction, dropped int) {
	seen := make(map[string]bool, len(txns))
	kept = make([]model.Transaction, 0, len(txns))

	for _, t := range txns {
		key := dedupeKey(t)
		if seen[key] {
			dropped++
			continue
		}
		seen[key] = true
		kept = append(kept, t)
	}
	return kept, dropped
}

func dedupeKey(t model.Transaction) string {
	return strings.Join([]string{
		t.AccountNumber,
		t.Date.Format("2006-01-02"),
		t.Narration,
		t.Withdrawal.String(),
		t.Deposit.String(),
		t.Balance.String(),
	}, "\x1f")
}
