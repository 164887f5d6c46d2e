// Package report aggregates classified transactions into a summary and
// serializes the consolidated table.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankmerge-dev/bankmerge/internal/model"
	"github.com/bankmerge-dev/bankmerge/internal/reference"
)

// topPartyLimit caps the counterparty table in the summary.
const topPartyLimit = 10

// AccountSummary aggregates one account's activity.
type AccountSummary struct {
	Name   string
	Number string

	Transactions int

	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	NetChange      decimal.Decimal

	ExternalIncome  decimal.Decimal
	ExternalExpense decimal.Decimal
	ExternalNet     decimal.Decimal
}

// PartyTotal aggregates external volume for one counterparty.
type PartyTotal struct {
	Name         string
	Transactions int
	Volume       decimal.Decimal
}

// Summary is the aggregate report over one consolidation run. It is a
// plain value with no behavior beyond rendering.
type Summary struct {
	RunID       uuid.UUID
	GeneratedAt time.Time

	FilesProcessed    int
	FilesFailed       int
	Transactions      int
	DuplicatesDropped int

	FirstDate time.Time
	LastDate  time.Time

	Accounts []AccountSummary

	IncomeCount  int
	ExpenseCount int
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal

	ExternalIncomeCount  int
	ExternalExpenseCount int
	ExternalIncome       decimal.Decimal
	ExternalExpense      decimal.Decimal
	// NetProfit is external income minus external expense: the business
	// P&L with transfers and reversals factored out.
	NetProfit decimal.Decimal

	UniqueCount     int
	InterBankCount  int
	ReversedCount   int
	InterBankVolume decimal.Decimal
	ReversedVolume  decimal.Decimal

	TopCounterparties []PartyTotal

	MostActiveAccount     string
	HighestIncomeAccount  string
	HighestExpenseAccount string
}

// Stats carries run bookkeeping the transaction list alone cannot supply.
type Stats struct {
	RunID             uuid.UUID
	GeneratedAt       time.Time
	FilesProcessed    int
	FilesFailed       int
	DuplicatesDropped int
}

// Build computes a Summary from the final classified transaction sequence
// and the per-file account metadata. Pure: no I/O, no mutation of inputs.
func Build(txns []model.Transaction, statements []model.AccountInfo, stats Stats) Summary {
	s := Summary{
		RunID:             stats.RunID,
		GeneratedAt:       stats.GeneratedAt,
		FilesProcessed:    stats.FilesProcessed,
		FilesFailed:       stats.FilesFailed,
		DuplicatesDropped: stats.DuplicatesDropped,
		Transactions:      len(txns),
	}

	type acctAgg struct {
		AccountSummary
		firstBalance   decimal.Decimal
		lastBalance    decimal.Decimal
		sawTransaction bool
		hasMetaOpening bool
		hasMetaClosing bool
	}
	aggs := make(map[string]*acctAgg)
	var acctOrder []string
	acct := func(number, name string) *acctAgg {
		a, ok := aggs[number]
		if !ok {
			a = &acctAgg{AccountSummary: AccountSummary{Name: name, Number: number}}
			aggs[number] = a
			acctOrder = append(acctOrder, number)
		}
		return a
	}

	parties := make(map[string]*PartyTotal)

	for _, t := range txns {
		if s.FirstDate.IsZero() || t.Date.Before(s.FirstDate) {
			s.FirstDate = t.Date
		}
		if t.Date.After(s.LastDate) {
			s.LastDate = t.Date
		}

		a := acct(t.AccountNumber, t.AccountName)
		a.Transactions++
		if !a.sawTransaction {
			a.firstBalance = t.Balance
			a.sawTransaction = true
		}
		a.lastBalance = t.Balance

		switch t.Type {
		case model.TypeIncome:
			s.IncomeCount++
			s.TotalIncome = s.TotalIncome.Add(t.Deposit)
		case model.TypeExpense:
			s.ExpenseCount++
			s.TotalExpense = s.TotalExpense.Add(t.Withdrawal)
		}

		switch t.Classification {
		case model.ClassUnique:
			s.UniqueCount++
			switch t.Type {
			case model.TypeIncome:
				s.ExternalIncomeCount++
				s.ExternalIncome = s.ExternalIncome.Add(t.Deposit)
				a.ExternalIncome = a.ExternalIncome.Add(t.Deposit)
			case model.TypeExpense:
				s.ExternalExpenseCount++
				s.ExternalExpense = s.ExternalExpense.Add(t.Withdrawal)
				a.ExternalExpense = a.ExternalExpense.Add(t.Withdrawal)
			}
			if party := reference.Party(t.Narration); party != accountsUnknown {
				pt, ok := parties[party]
				if !ok {
					pt = &PartyTotal{Name: party}
					parties[party] = pt
				}
				pt.Transactions++
				pt.Volume = pt.Volume.Add(t.Net().Abs())
			}
		case model.ClassInterBank:
			s.InterBankCount++
			s.InterBankVolume = s.InterBankVolume.Add(t.Net().Abs())
		case model.ClassReversed:
			s.ReversedCount++
			s.ReversedVolume = s.ReversedVolume.Add(t.Net().Abs())
		}
	}

	// Each transfer and reversal has two legs; volume counts it once.
	two := decimal.NewFromInt(2)
	s.InterBankVolume = s.InterBankVolume.Div(two)
	s.ReversedVolume = s.ReversedVolume.Div(two)

	s.NetProfit = s.ExternalIncome.Sub(s.ExternalExpense)

	// Opening/closing balances: statement metadata when present, else the
	// first and last balance seen per account in chronological order.
	for _, info := range statements {
		a, ok := aggs[info.AccountNumber]
		if !ok {
			continue
		}
		if info.HasOpening && !a.hasMetaOpening {
			a.OpeningBalance = info.OpeningBalance
			a.hasMetaOpening = true
		}
		if info.HasClosing {
			a.ClosingBalance = info.ClosingBalance
			a.hasMetaClosing = true
		}
	}

	for _, number := range acctOrder {
		a := aggs[number]
		if !a.hasMetaOpening {
			a.OpeningBalance = a.firstBalance
		}
		if !a.hasMetaClosing {
			a.ClosingBalance = a.lastBalance
		}
		a.NetChange = a.ClosingBalance.Sub(a.OpeningBalance)
		a.ExternalNet = a.ExternalIncome.Sub(a.ExternalExpense)
		s.Accounts = append(s.Accounts, a.AccountSummary)
	}
	sort.Slice(s.Accounts, func(i, j int) bool {
		if s.Accounts[i].Transactions != s.Accounts[j].Transactions {
			return s.Accounts[i].Transactions > s.Accounts[j].Transactions
		}
		return s.Accounts[i].Number < s.Accounts[j].Number
	})

	if len(s.Accounts) > 0 {
		s.MostActiveAccount = s.Accounts[0].Name
		var maxIncome, maxExpense decimal.Decimal
		for _, a := range s.Accounts {
			if a.ExternalIncome.GreaterThan(maxIncome) {
				maxIncome = a.ExternalIncome
				s.HighestIncomeAccount = a.Name
			}
			if a.ExternalExpense.GreaterThan(maxExpense) {
				maxExpense = a.ExternalExpense
				s.HighestExpenseAccount = a.Name
			}
		}
	}

	for _, pt := range parties {
		s.TopCounterparties = append(s.TopCounterparties, *pt)
	}
	sort.Slice(s.TopCounterparties, func(i, j int) bool {
		if !s.TopCounterparties[i].Volume.Equal(s.TopCounterparties[j].Volume) {
			return s.TopCounterparties[i].Volume.GreaterThan(s.TopCounterparties[j].Volume)
		}
		return s.TopCounterparties[i].Name < s.TopCounterparties[j].Name
	})
	if len(s.TopCounterparties) > topPartyLimit {
		s.TopCounterparties = s.TopCounterparties[:topPartyLimit]
	}

	return s
}

const accountsUnknown = "Unknown"

// PeriodDays returns the whole days spanned by the date range.
func (s Summary) PeriodDays() int {
	if s.FirstDate.IsZero() || s.LastDate.IsZero() {
		return 0
	}
	return int(s.LastDate.Sub(s.FirstDate).Hours() / 24)
}
