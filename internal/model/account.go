package model

import "github.com/shopspring/decimal"

// AccountInfo holds statement-level metadata extracted from a file's header
// and summary sections. Fields a bank does not report are left zero.
type AccountInfo struct {
	AccountNumber   string
	CustomerName    string
	Branch          string
	StatementPeriod string
	IFSCCode        string
	MICRCode        string

	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	HasOpening     bool
	HasClosing     bool

	SourceFile string
}
