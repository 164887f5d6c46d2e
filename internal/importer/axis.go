package importer

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankmerge-dev/bankmerge/internal/model"
	"github.com/bankmerge-dev/bankmerge/internal/normalize"
	"github.com/bankmerge-dev/bankmerge/internal/reference"
)

// AXISParser parses AXIS bank delimited-text statement exports. Narration
// fields may contain embedded newlines inside quotes, so rows are produced
// by a quote-aware tokenizer rather than a line split.
type AXISParser struct{}

const (
	axisMinFields = 9

	axisColSerial    = 0
	axisColDate      = 1
	axisColValueDate = 2
	axisColNarration = 3
	axisColAmount    = 4
	axisColDRCR      = 5
	axisColBalance   = 6
	axisColCheque    = 7
	axisColBranch    = 8
)

var (
	axisAccountRe = regexp.MustCompile(`Statement of Account No - (\d+)`)
	axisPeriodRe  = regexp.MustCompile(`for the period \(From : (\d{2}/\d{2}/\d{4}) To : (\d{2}/\d{2}/\d{4})\)`)
	axisIFSCRe    = regexp.MustCompile(`IFSC Code :- (\w+)`)
	axisMICRRe    = regexp.MustCompile(`MICR Code :- (\d+)`)
)

// Format returns the parser name.
func (p *AXISParser) Format() string { return "axis" }

// Parse reads an AXIS delimited-text statement.
func (p *AXISParser) Parse(r io.Reader, fileName string) (*Statement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}

	rows := tokenizeDelimited(string(data))

	headerIdx := -1
	for i, row := range rows {
		joined := strings.Join(row, ",")
		if strings.Contains(joined, "S.No") && strings.Contains(joined, "Transaction Date") {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("%s: %w", fileName, ErrStructureNotRecognized)
	}

	stmt := &Statement{Account: model.AccountInfo{SourceFile: fileName}}
	axisAccountInfo(rows[:headerIdx], &stmt.Account)

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if rowBlank(row) {
			continue
		}
		if len(row) < axisMinFields {
			stmt.Skipped = append(stmt.Skipped, SkippedRow{Index: i, Reason: "short row"})
			continue
		}

		narration := strings.TrimSpace(row[axisColNarration])

		// Footer totals carry no date; the opening balance row carries only
		// a balance and seeds the running balance.
		switch {
		case strings.Contains(narration, "OPENING BALANCE"):
			if opening, err := normalize.Balance(row[axisColBalance]); err == nil {
				stmt.Account.OpeningBalance = opening
				stmt.Account.HasOpening = true
			}
			continue
		case strings.Contains(narration, "TRANSACTION TOTAL"):
			continue
		case strings.Contains(narration, "CLOSING BALANCE"):
			if closing, err := normalize.Balance(row[axisColBalance]); err == nil {
				stmt.Account.ClosingBalance = closing
				stmt.Account.HasClosing = true
			}
			continue
		}

		date, err := normalize.Date(row[axisColDate], normalize.DayMonthYear4)
		if err != nil {
			stmt.Skipped = append(stmt.Skipped, SkippedRow{Index: i, Reason: err.Error()})
			continue
		}

		txn, err := axisRow(row, date, stmt.Account, fileName)
		if err != nil {
			stmt.Skipped = append(stmt.Skipped, SkippedRow{Index: i, Reason: err.Error()})
			continue
		}
		stmt.Transactions = append(stmt.Transactions, txn)
	}

	if !stmt.Account.HasClosing && len(stmt.Transactions) > 0 {
		stmt.Account.ClosingBalance = stmt.Transactions[len(stmt.Transactions)-1].Balance
		stmt.Account.HasClosing = true
	}
	return stmt, nil
}

func axisRow(row []string, date time.Time, account model.AccountInfo, fileName string) (model.Transaction, error) {
	amount, err := normalize.Amount(row[axisColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("amount: %w", err)
	}
	balance, err := normalize.Balance(row[axisColBalance])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("balance: %w", err)
	}
	valueDate, _ := normalize.Date(row[axisColValueDate], normalize.DayMonthYear4)

	narration := strings.TrimSpace(row[axisColNarration])
	drcr := model.DebitCredit(strings.TrimSpace(row[axisColDRCR]))

	var withdrawal, deposit decimal.Decimal
	switch drcr {
	case model.Debit:
		withdrawal = amount
	case model.Credit:
		deposit = amount
	}

	return model.Transaction{
		AccountNumber:   account.AccountNumber,
		Date:            date,
		ValueDate:       valueDate,
		Narration:       narration,
		ReferenceNumber: reference.Extract(narration).Number,
		Type:            model.TypeFromAmounts(withdrawal, deposit),
		Withdrawal:      withdrawal,
		Deposit:         deposit,
		Balance:         balance,
		DebitCredit:     drcr,
		ChequeNumber:    strings.TrimSpace(row[axisColCheque]),
		BranchName:      strings.TrimSpace(row[axisColBranch]),
		SourceFile:      fileName,
	}, nil
}

// axisAccountInfo mines the free-text lines above the header.
func axisAccountInfo(rows [][]string, info *model.AccountInfo) {
	for _, row := range rows {
		line := strings.Join(row, ",")

		if strings.HasPrefix(line, "Name :-") && info.CustomerName == "" {
			info.CustomerName = strings.TrimRight(strings.TrimSpace(strings.TrimPrefix(line, "Name :-")), ".")
		}
		if m := axisAccountRe.FindStringSubmatch(line); m != nil {
			info.AccountNumber = m[1]
		}
		if m := axisPeriodRe.FindStringSubmatch(line); m != nil {
			info.StatementPeriod = m[1] + " to " + m[2]
		}
		if m := axisIFSCRe.FindStringSubmatch(line); m != nil {
			info.IFSCCode = m[1]
		}
		if m := axisMICRRe.FindStringSubmatch(line); m != nil {
			info.MICRCode = m[1]
		}
	}
}

// tokenizeDelimited splits raw statement text into logical rows of fields.
// A quote toggles the in-quotes state; commas and newlines inside quotes
// are field data, so one logical row may span several physical lines.
func tokenizeDelimited(data string) [][]string {
	var (
		rows     [][]string
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	flushField := func() {
		fields = append(fields, strings.TrimSpace(field.String()))
		field.Reset()
	}
	flushRow := func() {
		flushField()
		// A lone empty field is a blank physical line, not a row.
		if len(fields) == 1 && fields[0] == "" {
			fields = nil
			return
		}
		rows = append(rows, fields)
		fields = nil
	}

	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			flushField()
		case c == '\n' && !inQuotes:
			flushRow()
		case c == '\r' && !inQuotes:
			// swallow; the \n that follows terminates the row
		default:
			field.WriteByte(c)
		}
	}
	if field.Len() > 0 || len(fields) > 0 {
		flushRow()
	}
	return rows
}
