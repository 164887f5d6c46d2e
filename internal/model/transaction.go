package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction by money direction.
type TransactionType string

const (
	TypeIncome  TransactionType = "Income"
	TypeExpense TransactionType = "Expense"
	TypeUnknown TransactionType = "Unknown"
)

// Classification labels a transaction after cross-account matching.
type Classification string

const (
	ClassUnique    Classification = "Unique"
	ClassInterBank Classification = "Inter-bank"
	ClassReversed  Classification = "Reversed"
)

// DebitCredit is the DR/CR flag as reported by the source statement.
type DebitCredit string

const (
	Debit  DebitCredit = "DR"
	Credit DebitCredit = "CR"
)

// Transaction is one normalized bank statement row.
// Exactly one of Withdrawal/Deposit is nonzero; both are non-negative.
type Transaction struct {
	SerialNo        int
	AccountName     string
	AccountNumber   string
	Date            time.Time
	ValueDate       time.Time
	Narration       string
	ReferenceNumber string
	Type            TransactionType
	Withdrawal      decimal.Decimal
	Deposit         decimal.Decimal
	Balance         decimal.Decimal // running balance after this transaction
	DebitCredit     DebitCredit
	ChequeNumber    string
	BranchName      string
	SourceFile      string
	Classification  Classification
}

// Net returns deposit minus withdrawal.
func (t Transaction) Net() decimal.Decimal {
	return t.Deposit.Sub(t.Withdrawal)
}

// TypeFromAmounts derives the transaction type from the two amount columns.
func TypeFromAmounts(withdrawal, deposit decimal.Decimal) TransactionType {
	switch {
	case withdrawal.IsPositive():
		return TypeExpense
	case deposit.IsPositive():
		return TypeIncome
	default:
		return TypeUnknown
	}
}
