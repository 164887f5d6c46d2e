package classify

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankmerge-dev/bankmerge/internal/model"
)

// Amounts within this tolerance of zero are treated as cancelling.
var tolerance = decimal.New(1, -2)

// Classify labels every transaction exactly once. Reversed detection runs
// first so a same-account cancellation is never mislabeled as a transfer;
// the residual label is Unique. Matching is index-based per reference
// number, never pairwise over the whole set.
func Classify(txns []model.Transaction) {
	for i := range txns {
		txns[i].Classification = model.ClassUnique
	}

	byRef := make(map[string][]int)
	var refOrder []string
	for i, t := range txns {
		if t.ReferenceNumber == "" {
			continue
		}
		if _, seen := byRef[t.ReferenceNumber]; !seen {
			refOrder = append(refOrder, t.ReferenceNumber)
		}
		byRef[t.ReferenceNumber] = append(byRef[t.ReferenceNumber], i)
	}

	claimed := make(map[int]bool)

	for _, ref := range refOrder {
		group := byRef[ref]
		if len(group) < 2 {
			continue
		}
		markPairs(txns, group, claimed, model.ClassReversed, sameAccount)
		markPairs(txns, group, claimed, model.ClassInterBank, crossAccount)
	}
}

type pairRule func(a, b model.Transaction) bool

// sameAccount admits reversal candidates: one account, nets cancelling.
func sameAccount(a, b model.Transaction) bool {
	return a.AccountNumber == b.AccountNumber
}

// crossAccount admits transfer candidates: two accounts, opposite-signed
// equal-magnitude nets.
func crossAccount(a, b model.Transaction) bool {
	return a.AccountNumber != b.AccountNumber &&
		a.Net().Sign() != 0 &&
		a.Net().Sign() == -b.Net().Sign()
}

type candidate struct {
	i, j int
	dist int // days between the two dates
}

// markPairs finds cancelling pairs within a reference group and labels
// both legs. Pairs are ranked by date proximity; when more than two
// candidates share a reference, the closest dates pair first and the
// leftovers keep their Unique label.
func markPairs(txns []model.Transaction, group []int, claimed map[int]bool, label model.Classification, rule pairRule) {
	var cands []candidate
	for x := 0; x < len(group); x++ {
		for y := x + 1; y < len(group); y++ {
			i, j := group[x], group[y]
			if claimed[i] || claimed[j] {
				continue
			}
			a, b := txns[i], txns[j]
			if !rule(a, b) {
				continue
			}
			if !a.Net().Add(b.Net()).Abs().LessThan(tolerance) {
				continue
			}
			if !withinWindow(a.Date, b.Date) {
				continue
			}
			cands = append(cands, candidate{i: i, j: j, dist: dayDistance(a.Date, b.Date)})
		}
	}

	sort.Slice(cands, func(a, b int) bool {
		if cands[a].dist != cands[b].dist {
			return cands[a].dist < cands[b].dist
		}
		if cands[a].i != cands[b].i {
			return cands[a].i < cands[b].i
		}
		return cands[a].j < cands[b].j
	})

	for _, c := range cands {
		if claimed[c.i] || claimed[c.j] {
			continue
		}
		claimed[c.i] = true
		claimed[c.j] = true
		txns[c.i].Classification = label
		txns[c.j].Classification = label
	}
}

// withinWindow reports whether two dates fall on the same day or on
// adjacent business days.
func withinWindow(a, b time.Time) bool {
	early, late := a, b
	if b.Before(a) {
		early, late = b, a
	}
	if sameDay(early, late) {
		return true
	}
	return sameDay(nextBusinessDay(early), late)
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func nextBusinessDay(d time.Time) time.Time {
	next := d.AddDate(0, 0, 1)
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func dayDistance(a, b time.Time) int {
	diff := int(b.Sub(a).Hours() / 24)
	if diff < 0 {
		diff = -diff
	}
	return diff
}
