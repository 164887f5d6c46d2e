package report

import (
	"fmt"
	"io"
	"strings"
)

const (
	ruleHeavy = "================================================================================"
	ruleLight = "----------------------------------------"
)

// Render writes the human-readable summary text.
func Render(w io.Writer, s Summary) error {
	var b strings.Builder

	b.WriteString(ruleHeavy + "\n")
	b.WriteString("BANK STATEMENT CONSOLIDATION SUMMARY\n")
	b.WriteString(ruleHeavy + "\n")
	fmt.Fprintf(&b, "Generated on: %s\n", s.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Run ID: %s\n\n", s.RunID)

	b.WriteString("PROCESSING SUMMARY\n" + ruleLight + "\n")
	fmt.Fprintf(&b, "Files processed: %d\n", s.FilesProcessed)
	if s.FilesFailed > 0 {
		fmt.Fprintf(&b, "Files failed: %d\n", s.FilesFailed)
	}
	fmt.Fprintf(&b, "Total transactions extracted: %d\n", s.Transactions)
	fmt.Fprintf(&b, "Duplicate rows dropped: %d\n\n", s.DuplicatesDropped)

	b.WriteString("DATE RANGE\n" + ruleLight + "\n")
	if !s.FirstDate.IsZero() {
		fmt.Fprintf(&b, "Period: %s to %s\n", s.FirstDate.Format("2006-01-02"), s.LastDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "Duration: %d days\n\n", s.PeriodDays())
	} else {
		b.WriteString("No dated transactions.\n\n")
	}

	b.WriteString("ACCOUNT SUMMARY\n" + ruleLight + "\n")
	fmt.Fprintf(&b, "Total unique accounts: %d\n", len(s.Accounts))
	for _, a := range s.Accounts {
		fmt.Fprintf(&b, "  %s (%s): %d transactions\n", a.Name, a.Number, a.Transactions)
	}
	b.WriteString("\n")

	b.WriteString("TRANSACTION TYPE BREAKDOWN\n" + ruleLight + "\n")
	fmt.Fprintf(&b, "Total income transactions: %d (%s)\n", s.IncomeCount, s.TotalIncome.StringFixed(2))
	fmt.Fprintf(&b, "Total expense transactions: %d (%s)\n", s.ExpenseCount, s.TotalExpense.StringFixed(2))
	fmt.Fprintf(&b, "External income transactions: %d (%s)\n", s.ExternalIncomeCount, s.ExternalIncome.StringFixed(2))
	fmt.Fprintf(&b, "External expense transactions: %d (%s)\n", s.ExternalExpenseCount, s.ExternalExpense.StringFixed(2))
	fmt.Fprintf(&b, "True business profit/loss: %s\n\n", s.NetProfit.StringFixed(2))

	b.WriteString("TRANSACTION CLASSIFICATION\n" + ruleLight + "\n")
	fmt.Fprintf(&b, "Unique transactions: %d (external business transactions)\n", s.UniqueCount)
	fmt.Fprintf(&b, "Inter-bank transfers: %d (transfers between accounts)\n", s.InterBankCount)
	fmt.Fprintf(&b, "Reversed transactions: %d (failed/cancelled payments)\n", s.ReversedCount)
	fmt.Fprintf(&b, "Inter-bank transfer volume: %s\n", s.InterBankVolume.StringFixed(2))
	fmt.Fprintf(&b, "Reversed transaction volume: %s\n\n", s.ReversedVolume.StringFixed(2))

	b.WriteString("FINANCIAL SUMMARY BY ACCOUNT (external transactions only)\n" + ruleLight + "\n")
	fmt.Fprintf(&b, "%-15s | %-15s | %-15s | %-15s | %-15s\n", "Account", "Income", "Expenses", "Net", "Balance change")
	for _, a := range s.Accounts {
		fmt.Fprintf(&b, "%-15s | %15s | %15s | %15s | %15s\n",
			a.Name,
			a.ExternalIncome.StringFixed(2),
			a.ExternalExpense.StringFixed(2),
			a.ExternalNet.StringFixed(2),
			a.NetChange.StringFixed(2))
	}
	b.WriteString("\n")

	if len(s.TopCounterparties) > 0 {
		b.WriteString("TOP COUNTERPARTIES (external volume)\n" + ruleLight + "\n")
		for _, p := range s.TopCounterparties {
			fmt.Fprintf(&b, "  %-40s %4d txns  %15s\n", p.Name, p.Transactions, p.Volume.StringFixed(2))
		}
		b.WriteString("\n")
	}

	b.WriteString("KEY INSIGHTS\n" + ruleLight + "\n")
	if s.MostActiveAccount != "" {
		fmt.Fprintf(&b, "Most active account: %s\n", s.MostActiveAccount)
	}
	if s.HighestIncomeAccount != "" {
		fmt.Fprintf(&b, "Highest external income account: %s\n", s.HighestIncomeAccount)
	}
	if s.HighestExpenseAccount != "" {
		fmt.Fprintf(&b, "Highest external expense account: %s\n", s.HighestExpenseAccount)
	}
	switch {
	case s.NetProfit.IsPositive():
		fmt.Fprintf(&b, "True business profit (external only): %s\n", s.NetProfit.StringFixed(2))
	case s.NetProfit.IsNegative():
		fmt.Fprintf(&b, "True business loss (external only): %s\n", s.NetProfit.Abs().StringFixed(2))
	default:
		b.WriteString("True business performance: break-even\n")
	}

	b.WriteString("\n" + ruleHeavy + "\n")
	b.WriteString("END OF SUMMARY\n")
	b.WriteString(ruleHeavy + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
